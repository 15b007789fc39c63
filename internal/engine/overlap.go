// =============================================================================
// PWD Works Red Flag Analyzer - Overlapping Work Detector
// =============================================================================
//
// Two records overlap when they target the same structural road (same
// parsed RoadKey) and their chainage intervals intersect. Records are
// first partitioned by the declared road-category tag, which keeps the
// pairwise comparison confined to plausibly related works; only a RoadKey
// match inside a partition confirms identity.
//
// =============================================================================

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pwdaudit/redflag/internal/types"
)

// chainageOverlaps reports whether two closed chainage intervals intersect.
// Shared endpoints count as overlap.
func chainageOverlaps(from1, to1, from2, to2 float64) bool {
	return !(to1 < from2 || to2 < from1)
}

// DetectOverlaps finds every pair of records that claim work on the same
// road over intersecting chainage. Findings come out in ascending
// (record_index, record_index) pair order regardless of input order.
func DetectOverlaps(records []*types.WorkRecord) []types.BatchFinding {
	groups := groupByRoadCategory(records)

	var findings []types.BatchFinding
	for _, tag := range sortedKeys(groups) {
		group := groups[tag]
		sort.Slice(group, func(i, j int) bool {
			return group[i].RecordIndex < group[j].RecordIndex
		})
		for i := 0; i < len(group); i++ {
			a := group[i]
			if !a.HasChainage() {
				continue
			}
			keyA, okA := ParseRoadKey(a.NameOfWork)
			if !okA {
				continue
			}
			for j := i + 1; j < len(group); j++ {
				b := group[j]
				if !b.HasChainage() {
					continue
				}
				keyB, okB := ParseRoadKey(b.NameOfWork)
				if !okB || keyA != keyB {
					continue
				}
				if !chainageOverlaps(a.ChainageFrom, a.ChainageTo, b.ChainageFrom, b.ChainageTo) {
					continue
				}
				findings = append(findings, overlapFinding(keyA, a, b))
			}
		}
	}
	return findings
}

func overlapFinding(key RoadKey, a, b *types.WorkRecord) types.BatchFinding {
	return types.BatchFinding{
		Finding: types.Finding{
			FlagID:   FlagOverlappingWork,
			FlagName: FlagNames[FlagOverlappingWork],
			Severity: types.SeverityHigh,
			Description: fmt.Sprintf(
				"Works at rows %d and %d overlap on %s (km %.3f-%.3f vs km %.3f-%.3f)",
				a.RecordIndex, b.RecordIndex, key,
				a.ChainageFrom, a.ChainageTo, b.ChainageFrom, b.ChainageTo),
			Details: map[string]any{
				"road":           key.String(),
				"record_indices": []int{a.RecordIndex, b.RecordIndex},
			},
		},
		AffectedRecords: []types.AffectedRecord{
			affectedRecord(a),
			affectedRecord(b),
		},
	}
}

func affectedRecord(r *types.WorkRecord) types.AffectedRecord {
	return types.AffectedRecord{
		RecordIndex:  r.RecordIndex,
		BudgetItemNo: r.BudgetItemNo,
		Chainage:     fmt.Sprintf("%.3f-%.3f", r.ChainageFrom, r.ChainageTo),
		ContractCost: r.ContractCost,
	}
}

// groupByRoadCategory buckets records by their declared road tag. Records
// with no tag are excluded, they cannot be confidently related to any
// other record.
func groupByRoadCategory(records []*types.WorkRecord) map[string][]*types.WorkRecord {
	groups := make(map[string][]*types.WorkRecord)
	for _, r := range records {
		tag := strings.TrimSpace(r.RoadCategory)
		if tag == "" {
			continue
		}
		groups[tag] = append(groups[tag], r)
	}
	return groups
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
