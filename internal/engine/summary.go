// =============================================================================
// PWD Works Red Flag Analyzer - Summary Aggregation
// =============================================================================

package engine

import "github.com/pwdaudit/redflag/internal/types"

// Summarize aggregates the red partition into the flag summary.
//
// TotalRedFlags counts records; the by-flag-type and by-severity maps count
// individual findings. The severity map always carries all three levels so
// downstream consumers never need to probe for missing keys.
func Summarize(red []types.RecordSummary) types.FlagSummary {
	s := types.FlagSummary{
		TotalRedFlags: len(red),
		ByFlagType:    make(map[string]int),
		BySeverity:    make(map[types.Severity]int),
	}
	for _, sev := range types.Severities {
		s.BySeverity[sev] = 0
	}
	for _, entry := range red {
		for _, f := range entry.Flags {
			s.ByFlagType[f.FlagName]++
			s.BySeverity[f.Severity]++
		}
	}
	return s
}
