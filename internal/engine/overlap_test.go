package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdaudit/redflag/internal/types"
)

func roadRecord(idx int, tag, name string, from, to float64) *types.WorkRecord {
	return &types.WorkRecord{
		RecordIndex:  idx,
		BudgetItemNo: "BI-" + name,
		NameOfWork:   name,
		RoadCategory: tag,
		ChainageFrom: from,
		ChainageTo:   to,
	}
}

func TestDetectOverlaps(t *testing.T) {
	t.Run("intersecting intervals on the same road", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH-56", "Improvement of SH-56", 10, 15),
			roadRecord(3, "SH-56", "Resurfacing of SH-56", 12, 18),
		}
		findings := DetectOverlaps(recs)
		require.Len(t, findings, 1)
		assert.Equal(t, FlagOverlappingWork, findings[0].FlagID)
		assert.Equal(t, []int{2, 3}, findings[0].Details["record_indices"])
		require.Len(t, findings[0].AffectedRecords, 2)
		assert.Equal(t, 2, findings[0].AffectedRecords[0].RecordIndex)
	})

	t.Run("shared endpoint counts as overlap", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH-56", "SH-56 section A", 10, 15),
			roadRecord(3, "SH-56", "SH-56 section B", 15, 20),
		}
		assert.Len(t, DetectOverlaps(recs), 1)
	})

	t.Run("disjoint intervals do not overlap", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH-56", "SH-56 section A", 10, 15),
			roadRecord(3, "SH-56", "SH-56 section B", 15.001, 20),
		}
		assert.Empty(t, DetectOverlaps(recs))
	})

	t.Run("same tag different road number", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH", "Work on SH-56", 10, 15),
			roadRecord(3, "SH", "Work on SH-240", 12, 18),
		}
		assert.Empty(t, DetectOverlaps(recs))
	})

	t.Run("zero chainage pair is skipped", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH-56", "SH-56 section A", 0, 0),
			roadRecord(3, "SH-56", "SH-56 section B", 0, 0),
		}
		assert.Empty(t, DetectOverlaps(recs))
	})

	t.Run("order independent output", func(t *testing.T) {
		a := roadRecord(2, "SH-56", "SH-56 section A", 10, 15)
		b := roadRecord(3, "SH-56", "SH-56 section B", 12, 18)

		f1 := DetectOverlaps([]*types.WorkRecord{a, b})
		f2 := DetectOverlaps([]*types.WorkRecord{b, a})
		require.Len(t, f1, 1)
		require.Len(t, f2, 1)
		assert.Equal(t, f1[0].Details["record_indices"], f2[0].Details["record_indices"])
	})

	t.Run("records without a road tag are excluded", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "", "SH-56 section A", 10, 15),
			roadRecord(3, "", "SH-56 section B", 12, 18),
			roadRecord(4, "   ", "SH-56 section C", 11, 16),
		}
		assert.Empty(t, DetectOverlaps(recs))
	})

	t.Run("different tags are never compared", func(t *testing.T) {
		recs := []*types.WorkRecord{
			roadRecord(2, "SH-56", "SH-56 section A", 10, 15),
			roadRecord(3, "MDR-43", "SH-56 section B", 12, 18),
		}
		assert.Empty(t, DetectOverlaps(recs))
	})
}

func TestChainageOverlaps(t *testing.T) {
	assert.True(t, chainageOverlaps(10, 15, 12, 18))
	assert.True(t, chainageOverlaps(12, 18, 10, 15))
	assert.True(t, chainageOverlaps(10, 15, 15, 20))
	assert.True(t, chainageOverlaps(10, 20, 12, 14))
	assert.False(t, chainageOverlaps(10, 15, 16, 20))
	assert.False(t, chainageOverlaps(16, 20, 10, 15))
}
