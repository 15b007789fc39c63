package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdaudit/redflag/internal/types"
)

func goodRecord(idx int) *types.WorkRecord {
	return &types.WorkRecord{
		RecordIndex:      idx,
		BudgetItemNo:     "2059-001",
		NameOfWork:       "Improvement of SH-56",
		ApprovalCost:     100,
		ContractCost:     90,
		TotalExpenditure: 80,
		PhysicalProgress: 50,
		ChainageFrom:     10,
		ChainageTo:       15,
	}
}

func TestValidateCleanRecords(t *testing.T) {
	report := Validate([]*types.WorkRecord{goodRecord(2)})
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.TotalRecords)
}

func TestValidateErrors(t *testing.T) {
	r := goodRecord(2)
	r.NameOfWork = "  "
	r.ApprovalCost = -5

	report := Validate([]*types.WorkRecord{r})
	errs := report.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "name_of_work", errs[0].Field)
	assert.Equal(t, "approval_cost", errs[1].Field)
}

func TestValidateWarnings(t *testing.T) {
	r := goodRecord(2)
	r.PhysicalProgress = 130
	r.ChainageFrom = 15
	r.ChainageTo = 10

	report := Validate([]*types.WorkRecord{r})
	assert.Empty(t, report.Errors())
	require.Len(t, report.Warnings(), 2)
}

func TestValidateDuplicateBudgetItems(t *testing.T) {
	a := goodRecord(2)
	b := goodRecord(3)
	c := goodRecord(4)
	c.BudgetItemNo = "2059-002"

	report := Validate([]*types.WorkRecord{a, b, c})
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].RecordIndex)
	assert.Contains(t, warnings[0].Message, "first seen at row 2")
}

func TestValidateMissingApprovalWithExpenditure(t *testing.T) {
	r := goodRecord(2)
	r.ApprovalCost = 0

	report := Validate([]*types.WorkRecord{r})
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "approval_cost", report.Warnings()[0].Field)
}

func TestValidateIssuesOrderedByRow(t *testing.T) {
	a := goodRecord(5)
	a.PhysicalProgress = -1
	b := goodRecord(2)
	b.PhysicalProgress = 101

	report := Validate([]*types.WorkRecord{a, b})
	require.Len(t, report.Issues, 2)
	assert.Equal(t, 2, report.Issues[0].RecordIndex)
	assert.Equal(t, 5, report.Issues[1].RecordIndex)
}
