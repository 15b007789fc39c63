package xlsxreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "budgetitemno", normalizeHeader("Budget Item No."))
	assert.Equal(t, "nameofthework", normalizeHeader("Name_of the_Work"))
	assert.Equal(t, "", normalizeHeader("  . _ "))
}

func TestResolveColumnsExact(t *testing.T) {
	headers := []string{
		"Sr No", "Budget Item No.", "Name of the work",
		"Administrative Approval Cost (Lakh)", "Total Expenditure (Lakhs)",
	}
	cm := resolveColumns(headers)
	assert.Equal(t, 0, cm[FieldSrNo])
	assert.Equal(t, 1, cm[FieldBudgetItemNo])
	assert.Equal(t, 2, cm[FieldNameOfWork])
	assert.Equal(t, 3, cm[FieldApprovalCost])
	assert.Equal(t, 4, cm[FieldTotalExpenditure])
	assert.Equal(t, -1, cm[FieldChainageFrom])
}

func TestResolveColumnsVariantSpellings(t *testing.T) {
	headers := []string{
		"S No", "Budget Item Number", "Work Name",
		"AA Cost", "Expenditure (Lakh)", "WO Date", "Progress",
	}
	cm := resolveColumns(headers)
	assert.Equal(t, 0, cm[FieldSrNo])
	assert.Equal(t, 1, cm[FieldBudgetItemNo])
	assert.Equal(t, 2, cm[FieldNameOfWork])
	assert.Equal(t, 3, cm[FieldApprovalCost])
	assert.Equal(t, 4, cm[FieldTotalExpenditure])
	assert.Equal(t, 5, cm[FieldWorkOrderDate])
	assert.Equal(t, 6, cm[FieldPhysicalProgress])
}

func TestResolveColumnsClaimsEachColumnOnce(t *testing.T) {
	headers := []string{"Chainage From", "Chainage To"}
	cm := resolveColumns(headers)
	assert.Equal(t, 0, cm[FieldChainageFrom])
	assert.Equal(t, 1, cm[FieldChainageTo])
	assert.NotEqual(t, cm[FieldChainageFrom], cm[FieldChainageTo])
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.InDelta(t, 0.8, similarity("abcde", "abcdx"), 0.001)
	assert.Equal(t, 0.0, similarity("", "abc"))
}
