package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdaudit/redflag/internal/types"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCheckExcessExpenditure(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("triggers above threshold", func(t *testing.T) {
		r := &types.WorkRecord{RecordIndex: 2, ApprovalCost: 100, TotalExpenditure: 125}
		f := checkExcessExpenditure(r, now)
		require.NotNil(t, f)
		assert.Equal(t, FlagExcessExpenditure, f.FlagID)
		assert.Equal(t, types.SeverityHigh, f.Severity)
		assert.InDelta(t, 25.0, f.Details["excess_percent"], 0.001)
	})

	t.Run("exactly ten percent does not trigger", func(t *testing.T) {
		r := &types.WorkRecord{ApprovalCost: 100, TotalExpenditure: 110}
		assert.Nil(t, checkExcessExpenditure(r, now))
	})

	t.Run("just over ten percent triggers", func(t *testing.T) {
		r := &types.WorkRecord{ApprovalCost: 100, TotalExpenditure: 110.01}
		assert.NotNil(t, checkExcessExpenditure(r, now))
	})

	t.Run("zero approval cost disables the rule", func(t *testing.T) {
		r := &types.WorkRecord{ApprovalCost: 0, TotalExpenditure: 500}
		assert.Nil(t, checkExcessExpenditure(r, now))
	})

	t.Run("under-spend does not trigger", func(t *testing.T) {
		r := &types.WorkRecord{ApprovalCost: 1983.02, TotalExpenditure: 1883.10}
		assert.Nil(t, checkExcessExpenditure(r, now))
	})
}

func TestCheckDelayInCompletion(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("overdue incomplete work triggers", func(t *testing.T) {
		r := &types.WorkRecord{
			WorkOrderDate:    date(2024, 1, 15),
			TimeLimitDays:    180,
			PhysicalProgress: 75,
		}
		f := checkDelayInCompletion(r, now)
		require.NotNil(t, f)
		assert.Equal(t, FlagDelayInCompletion, f.FlagID)
		assert.Equal(t, types.SeverityMedium, f.Severity)
	})

	t.Run("complete work never triggers", func(t *testing.T) {
		r := &types.WorkRecord{
			WorkOrderDate:    date(2024, 1, 15),
			TimeLimitDays:    180,
			PhysicalProgress: 100,
		}
		assert.Nil(t, checkDelayInCompletion(r, now))
	})

	t.Run("deadline not yet passed", func(t *testing.T) {
		r := &types.WorkRecord{
			WorkOrderDate:    date(2025, 3, 1),
			TimeLimitDays:    365,
			PhysicalProgress: 10,
		}
		assert.Nil(t, checkDelayInCompletion(r, now))
	})

	t.Run("missing work order date is skipped", func(t *testing.T) {
		r := &types.WorkRecord{TimeLimitDays: 30, PhysicalProgress: 0}
		assert.Nil(t, checkDelayInCompletion(r, now))
	})

	t.Run("missing time limit is skipped", func(t *testing.T) {
		r := &types.WorkRecord{WorkOrderDate: date(2020, 1, 1), PhysicalProgress: 0}
		assert.Nil(t, checkDelayInCompletion(r, now))
	})
}

func TestEvaluateRecordOrdering(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := &types.WorkRecord{
		ApprovalCost:     100,
		TotalExpenditure: 150,
		WorkOrderDate:    date(2024, 1, 1),
		TimeLimitDays:    90,
		PhysicalProgress: 40,
	}
	findings := EvaluateRecord(r, now)
	require.Len(t, findings, 2)
	assert.Equal(t, FlagExcessExpenditure, findings[0].FlagID)
	assert.Equal(t, FlagDelayInCompletion, findings[1].FlagID)
}
