// =============================================================================
// PWD Works Red Flag Analyzer - Single-Record Rules
// =============================================================================
//
// Each rule inspects exactly one WorkRecord and emits at most one Finding.
// Rules never return errors: records with missing or zeroed fields simply
// do not trigger.
//
// The flag catalogue mirrors the audit checklist the engine implements.
// Flags 1 and 2 need information (fund diversion ledgers, survey
// expenditure breakdowns) that the works register does not carry, so their
// evaluators never fire; they stay in the catalogue so summary output keeps
// a stable flag-type vocabulary.
//
// =============================================================================

package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/pwdaudit/redflag/internal/types"
)

// =============================================================================
// FLAG CATALOGUE
// =============================================================================

const (
	FlagDiversionOfFunds  = 1
	FlagWastefulSurvey    = 2
	FlagExcessExpenditure = 3
	FlagOverlappingWork   = 4
	FlagDelayInCompletion = 5
	FlagSplittingOfWork   = 6
)

// FlagNames maps flag IDs to their display names, used in findings and in
// the by-flag-type summary.
var FlagNames = map[int]string{
	FlagDiversionOfFunds:  "Diversion of Funds",
	FlagWastefulSurvey:    "Wasteful Expenditure on Survey Works",
	FlagExcessExpenditure: "Excess Expenditure Without Approval",
	FlagOverlappingWork:   "Overlapping of Work",
	FlagDelayInCompletion: "Delay in Completion",
	FlagSplittingOfWork:   "Splitting of Work",
}

// Rule thresholds. These are part of the flag definitions, not tunables.
const (
	// excessPercentThreshold is the overrun percentage above which
	// expenditure beyond administrative approval is flagged. The
	// comparison is strict: exactly 10% does not trigger.
	excessPercentThreshold = 10.0

	// splittingCostCapLakh is the contract cost below which a work is a
	// candidate for the splitting detector (exclusive on both ends).
	splittingCostCapLakh = 10.0

	// splittingMaxGapKm is the largest chainage gap allowed between
	// consecutive works in a suspected split chain.
	splittingMaxGapKm = 5.0

	// splittingMinGroup is the smallest chain the splitting detector
	// reports.
	splittingMinGroup = 3
)

// =============================================================================
// SINGLE-RECORD RULES
// =============================================================================

// RecordRule evaluates one record against one flag definition. A nil
// result means the rule did not trigger.
type RecordRule func(r *types.WorkRecord, now time.Time) *types.Finding

// recordRules lists the per-record evaluators in flag-ID order.
var recordRules = []RecordRule{
	checkDiversionOfFunds,
	checkWastefulSurvey,
	checkExcessExpenditure,
	checkDelayInCompletion,
}

// EvaluateRecord runs every single-record rule against r and returns the
// findings that triggered, in flag-ID order.
func EvaluateRecord(r *types.WorkRecord, now time.Time) []types.Finding {
	var out []types.Finding
	for _, rule := range recordRules {
		if f := rule(r, now); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// checkDiversionOfFunds needs fund-movement ledgers the works register
// does not include, so it never triggers.
func checkDiversionOfFunds(r *types.WorkRecord, now time.Time) *types.Finding {
	return nil
}

// checkWastefulSurvey needs a survey-expenditure breakdown the works
// register does not include, so it never triggers.
func checkWastefulSurvey(r *types.WorkRecord, now time.Time) *types.Finding {
	return nil
}

// checkExcessExpenditure flags records whose total expenditure exceeds the
// administrative approval cost by strictly more than 10%. A missing or
// non-positive approval cost disables the check for that record.
func checkExcessExpenditure(r *types.WorkRecord, _ time.Time) *types.Finding {
	if r.ApprovalCost <= 0 {
		return nil
	}
	excess := r.TotalExpenditure - r.ApprovalCost
	excessPct := excess / r.ApprovalCost * 100
	if excessPct <= excessPercentThreshold {
		return nil
	}
	excessPct = math.Round(excessPct*100) / 100
	return &types.Finding{
		FlagID:   FlagExcessExpenditure,
		FlagName: FlagNames[FlagExcessExpenditure],
		Severity: types.SeverityHigh,
		Description: fmt.Sprintf(
			"Expenditure %.2f lakh exceeds administrative approval %.2f lakh by %.2f%%",
			r.TotalExpenditure, r.ApprovalCost, excessPct),
		Details: map[string]any{
			"aa_cost_lakh":      r.ApprovalCost,
			"expenditure_lakh":  r.TotalExpenditure,
			"excess_lakh":       excess,
			"excess_percent":    excessPct,
			"threshold_percent": excessPercentThreshold,
		},
	}
}

// checkDelayInCompletion flags records whose completion deadline (work
// order date plus time limit) has passed while physical progress is still
// below 100%. Records without a work order date or time limit are skipped.
func checkDelayInCompletion(r *types.WorkRecord, now time.Time) *types.Finding {
	if r.WorkOrderDate == nil || r.TimeLimitDays <= 0 {
		return nil
	}
	expected := r.WorkOrderDate.AddDate(0, 0, r.TimeLimitDays)
	if !now.After(expected) || r.PhysicalProgress >= 100 {
		return nil
	}
	overdueDays := int(now.Sub(expected).Hours() / 24)
	return &types.Finding{
		FlagID:   FlagDelayInCompletion,
		FlagName: FlagNames[FlagDelayInCompletion],
		Severity: types.SeverityMedium,
		Description: fmt.Sprintf(
			"Work is %d days past its completion deadline at %.1f%% progress",
			overdueDays, r.PhysicalProgress),
		Details: map[string]any{
			"work_order_date":   r.WorkOrderDate.Format("2006-01-02"),
			"time_limit_days":   r.TimeLimitDays,
			"expected_by":       expected.Format("2006-01-02"),
			"overdue_days":      overdueDays,
			"physical_progress": r.PhysicalProgress,
		},
	}
}
