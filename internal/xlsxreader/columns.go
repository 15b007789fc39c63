// =============================================================================
// PWD Works Red Flag Analyzer - Column Matching
// =============================================================================
//
// Works registers come from many divisions and no two format their headers
// the same way. Column resolution is therefore fuzzy: headers are
// normalized, then matched by exact name, known alias, substring, and
// finally string similarity.
//
// =============================================================================

package xlsxreader

import "strings"

// Field identifies one canonical record field the reader extracts.
type Field string

const (
	FieldSrNo             Field = "sr_no"
	FieldBudgetItemNo     Field = "budget_item_no"
	FieldNameOfWork       Field = "name_of_work"
	FieldWorkCategory     Field = "work_category"
	FieldRoadCategory     Field = "road_category"
	FieldApprovalCost     Field = "approval_cost"
	FieldContractCost     Field = "contract_cost"
	FieldTotalExpenditure Field = "total_expenditure"
	FieldWorkOrderDate    Field = "work_order_date"
	FieldTimeLimitDays    Field = "time_limit_days"
	FieldPhysicalProgress Field = "physical_progress"
	FieldChainageFrom     Field = "chainage_from"
	FieldChainageTo       Field = "chainage_to"
)

// criticalFields must resolve for the file to be usable at all. The rest
// degrade to zero values and a quality issue.
var criticalFields = []Field{
	FieldBudgetItemNo,
	FieldNameOfWork,
	FieldApprovalCost,
	FieldTotalExpenditure,
}

// fieldAliases lists the header spellings seen across division registers,
// in the order they should be tried.
var fieldAliases = map[Field][]string{
	FieldSrNo:             {"Sr No", "Sr. No.", "S No", "Serial No"},
	FieldBudgetItemNo:     {"Budget Item No.", "Budget Item No", "Budget Item Number", "Budget No"},
	FieldNameOfWork:       {"Name of the work", "Name of Work", "Work Name", "Particulars of Work"},
	FieldWorkCategory:     {"Type of Work", "Category of Work", "Work Type", "Work Category"},
	FieldRoadCategory:     {"Road Category", "Road No", "Road", "Category of Road"},
	FieldApprovalCost:     {"Administrative Approval Cost (Lakh)", "AA Cost (Lakh)", "AA Cost", "Administrative Approval", "Sanctioned Cost (Lakh)"},
	FieldContractCost:     {"Contract Cost (Lakh)", "Agreement Cost (Lakh)", "Contract Cost", "Tender Cost (Lakh)"},
	FieldTotalExpenditure: {"Total Expenditure (Lakhs)", "Total Expenditure (Lakh)", "Total Expenditure", "Expenditure (Lakh)"},
	FieldWorkOrderDate:    {"Work Order Date", "Date of Work Order", "WO Date"},
	FieldTimeLimitDays:    {"Time Limit (Days)", "Time Limit", "Completion Period (Days)"},
	FieldPhysicalProgress: {"Physical Progress (%)", "Physical Progress", "Progress (%)", "Progress"},
	FieldChainageFrom:     {"Chainage From", "From Chainage", "Chainage From (Km)", "From (Km)"},
	FieldChainageTo:       {"Chainage To", "To Chainage", "Chainage To (Km)", "To (Km)"},
}

// normalizeHeader collapses a header cell to a comparable form: lowercase
// with spaces, underscores, dots and parenthesized units stripped.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		switch r {
		case ' ', '_', '.', '\n', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// columnMap resolves each canonical field to a column position in the
// header row, or -1 when no header matches.
type columnMap map[Field]int

// resolveColumns maps the header row to canonical fields. Each column is
// claimed at most once, in field declaration order, so a header cannot
// satisfy two fields.
func resolveColumns(headers []string) columnMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}
	claimed := make([]bool, len(headers))

	cm := make(columnMap, len(fieldAliases))
	order := []Field{
		FieldSrNo, FieldBudgetItemNo, FieldNameOfWork, FieldWorkCategory,
		FieldRoadCategory, FieldApprovalCost, FieldContractCost,
		FieldTotalExpenditure, FieldWorkOrderDate, FieldTimeLimitDays,
		FieldPhysicalProgress, FieldChainageFrom, FieldChainageTo,
	}
	for _, f := range order {
		cm[f] = matchField(f, normalized, claimed)
	}
	return cm
}

// matchField finds the best unclaimed column for one field, trying exact
// alias match, substring containment, then similarity.
func matchField(f Field, normalized []string, claimed []bool) int {
	aliases := make([]string, 0, len(fieldAliases[f]))
	for _, a := range fieldAliases[f] {
		aliases = append(aliases, normalizeHeader(a))
	}

	for _, a := range aliases {
		for i, h := range normalized {
			if !claimed[i] && h != "" && h == a {
				claimed[i] = true
				return i
			}
		}
	}
	for _, a := range aliases {
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if strings.Contains(h, a) || strings.Contains(a, h) {
				claimed[i] = true
				return i
			}
		}
	}

	best, bestScore := -1, 0.0
	for _, a := range aliases {
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if s := similarity(h, a); s >= 0.8 && s > bestScore {
				best, bestScore = i, s
			}
		}
	}
	if best >= 0 {
		claimed[best] = true
	}
	return best
}

// similarity is a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein(a, b)
	max := la
	if lb > max {
		max = lb
	}
	return 1 - float64(d)/float64(max)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
