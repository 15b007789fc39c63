// =============================================================================
// PWD Works Red Flag Analyzer - Shared Types
// =============================================================================
//
// This package contains the domain types shared across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - xlsxreader (produces WorkRecords)
//   - engine     (produces Findings and the AnalysisResult)
//   - report     (consumes the AnalysisResult)
//
// =============================================================================

package types

import "time"

// =============================================================================
// SEVERITY
// =============================================================================

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Severities lists all severity levels in descending order. Summary maps
// carry an entry for each of these even when the count is zero.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// =============================================================================
// WORK RECORD
// =============================================================================

// WorkRecord is one audited contract/work item, as produced by the
// xlsxreader. All monetary figures are in lakh; chainage is in km.
//
// Absent source cells coerce to the zero value (numeric fields) or nil
// (WorkOrderDate). The engine treats those as "rule not applicable" or
// zero, per rule, and never fails on them.
type WorkRecord struct {
	// RecordIndex is the 1-based row number in the source spreadsheet,
	// offset by one for the header row (first data row = 2).
	RecordIndex int

	// SrNo is the serial number column, kept as text since registers are
	// inconsistent about its formatting.
	SrNo string

	// BudgetItemNo identifies the budget line funding the work.
	BudgetItemNo string

	// NameOfWork is the free-text work description. Road keys (SH-56,
	// MDR-43, ...) are extracted from this field.
	NameOfWork string

	// WorkCategory is the declared type of work (WIDENING, BRIDGE, ...).
	WorkCategory string

	// RoadCategory is the declared road tag used as a cheap grouping
	// partition by the batch detectors.
	RoadCategory string

	// ApprovalCost is the Administrative Approval cost. Zero means the
	// value was missing or unparsable, which disables the excess
	// expenditure rule.
	ApprovalCost float64

	// ContractCost is the contract agreement cost.
	ContractCost float64

	// TotalExpenditure is the total booked expenditure.
	TotalExpenditure float64

	// WorkOrderDate is the date the work order was issued; nil when the
	// cell was empty or unparsable.
	WorkOrderDate *time.Time

	// TimeLimitDays is the original completion time limit in days.
	TimeLimitDays int

	// PhysicalProgress is the physical progress percentage (0-100).
	PhysicalProgress float64

	// ChainageFrom and ChainageTo locate the work along its route.
	// The pair (0, 0) means "no chainage given".
	ChainageFrom float64
	ChainageTo   float64
}

// HasChainage reports whether the record carries a usable chainage
// interval. A (0, 0) pair is treated as absent.
func (r *WorkRecord) HasChainage() bool {
	return r.ChainageFrom != 0 || r.ChainageTo != 0
}

// =============================================================================
// FINDINGS
// =============================================================================

// Finding is one detected anomaly on one or more records. Findings are
// immutable once created.
type Finding struct {
	FlagID      int            `json:"flag_id"`
	FlagName    string         `json:"flag_name"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}

// AffectedRecord identifies one record implicated by a batch finding,
// together with the fields that justified its inclusion.
type AffectedRecord struct {
	RecordIndex  int     `json:"record_index"`
	BudgetItemNo string  `json:"budget_item_no"`
	Chainage     string  `json:"chainage"`
	ContractCost float64 `json:"contract_cost_lakh,omitempty"`
}

// BatchFinding is a Finding plus the ordered list of records it implicates.
// The detectors here always implicate at least two records.
type BatchFinding struct {
	Finding
	AffectedRecords []AffectedRecord `json:"affected_records"`
	TotalCost       float64          `json:"total_cost,omitempty"`
}

// =============================================================================
// ANALYSIS RESULT
// =============================================================================

// RecordSummary is one entry of the red/green partition. Red entries carry
// the findings that put them there; green entries carry none.
type RecordSummary struct {
	RecordIndex  int       `json:"record_index"`
	SrNo         string    `json:"sr_no"`
	BudgetItemNo string    `json:"budget_item_no"`
	NameOfWork   string    `json:"name_of_work"`
	Flags        []Finding `json:"flags,omitempty"`
}

// FlagSummary aggregates the final red partition.
//
// TotalRedFlags counts red-flagged records; ByFlagType and BySeverity count
// individual findings, so a record with two findings contributes one unit to
// the former and two to the latter.
type FlagSummary struct {
	TotalRedFlags int              `json:"total_red_flags"`
	ByFlagType    map[string]int   `json:"by_flag_type"`
	BySeverity    map[Severity]int `json:"by_severity"`
}

// AnalysisResult is the complete outcome of one analysis run. Every record
// index appears in exactly one of the two partitions.
type AnalysisResult struct {
	TotalRecords int             `json:"total_records"`
	RedFlagged   []RecordSummary `json:"red_flagged"`
	GreenFlagged []RecordSummary `json:"green_flagged"`
	FlagSummary  FlagSummary     `json:"flag_summary"`
	Timestamp    string          `json:"timestamp"`
}
