// =============================================================================
// PWD Works Red Flag Analyzer - Record Validation
// =============================================================================
//
// Validation checks parsed records for internal consistency before they
// reach the analysis engine. Problems are collected, not thrown: a
// register full of sloppy data should still analyze, with the problems
// surfaced alongside the results. Only the severity ERROR marks a record
// the engine cannot meaningfully evaluate.
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pwdaudit/redflag/internal/types"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Level grades a validation issue.
type Level string

const (
	LevelError   Level = "ERROR"
	LevelWarning Level = "WARNING"
)

// Issue is one problem found on one record.
type Issue struct {
	RecordIndex int
	Field       string
	Level       Level
	Message     string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] row %d %s: %s", i.Level, i.RecordIndex, i.Field, i.Message)
}

// Report collects every issue found in one validation pass.
type Report struct {
	TotalRecords int
	Issues       []Issue
}

// Errors returns only the ERROR-level issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Level == LevelError {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns only the WARNING-level issues.
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Level == LevelWarning {
			out = append(out, i)
		}
	}
	return out
}

// Clean reports whether the pass found no issues at all.
func (r *Report) Clean() bool { return len(r.Issues) == 0 }

func (r *Report) add(idx int, field string, level Level, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		RecordIndex: idx,
		Field:       field,
		Level:       level,
		Message:     fmt.Sprintf(format, args...),
	})
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validate runs every record check and returns the collected report.
// Issues come out ordered by record index, then by discovery order.
func Validate(records []*types.WorkRecord) *Report {
	report := &Report{TotalRecords: len(records)}

	seen := make(map[string][]int)
	for _, r := range records {
		validateRecord(r, report)
		if key := strings.TrimSpace(r.BudgetItemNo); key != "" {
			seen[key] = append(seen[key], r.RecordIndex)
		}
	}

	dupKeys := make([]string, 0)
	for key, indices := range seen {
		if len(indices) > 1 {
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Strings(dupKeys)
	for _, key := range dupKeys {
		indices := seen[key]
		sort.Ints(indices)
		for _, idx := range indices[1:] {
			report.add(idx, "budget_item_no", LevelWarning,
				"duplicate budget item %q, first seen at row %d", key, indices[0])
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		return report.Issues[i].RecordIndex < report.Issues[j].RecordIndex
	})
	return report
}

func validateRecord(r *types.WorkRecord, report *Report) {
	if strings.TrimSpace(r.NameOfWork) == "" {
		report.add(r.RecordIndex, "name_of_work", LevelError, "work name is empty")
	}
	if strings.TrimSpace(r.BudgetItemNo) == "" {
		report.add(r.RecordIndex, "budget_item_no", LevelError, "budget item number is empty")
	}
	if r.ApprovalCost < 0 {
		report.add(r.RecordIndex, "approval_cost", LevelError,
			"administrative approval cost is negative: %.2f", r.ApprovalCost)
	}
	if r.TotalExpenditure < 0 {
		report.add(r.RecordIndex, "total_expenditure", LevelError,
			"total expenditure is negative: %.2f", r.TotalExpenditure)
	}
	if r.ContractCost < 0 {
		report.add(r.RecordIndex, "contract_cost", LevelWarning,
			"contract cost is negative: %.2f", r.ContractCost)
	}
	if r.PhysicalProgress < 0 || r.PhysicalProgress > 100 {
		report.add(r.RecordIndex, "physical_progress", LevelWarning,
			"physical progress %.1f%% is outside 0-100", r.PhysicalProgress)
	}
	if r.HasChainage() && r.ChainageTo < r.ChainageFrom {
		report.add(r.RecordIndex, "chainage", LevelWarning,
			"chainage runs backwards: %.3f to %.3f", r.ChainageFrom, r.ChainageTo)
	}
	if r.ApprovalCost == 0 && r.TotalExpenditure > 0 {
		report.add(r.RecordIndex, "approval_cost", LevelWarning,
			"expenditure booked with no administrative approval cost on record")
	}
	if r.WorkOrderDate == nil && r.TimeLimitDays > 0 {
		report.add(r.RecordIndex, "work_order_date", LevelWarning,
			"time limit given without a work order date")
	}
}
