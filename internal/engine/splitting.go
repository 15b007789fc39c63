// =============================================================================
// PWD Works Red Flag Analyzer - Work Splitting Detector
// =============================================================================
//
// Splitting is the practice of carving one large work into several small
// contracts to stay under sanction thresholds. The detector looks for
// chains of three or more low-cost works awarded in the same year on the
// same road, sitting close together along the chainage.
//
// =============================================================================

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pwdaudit/redflag/internal/types"
)

// splitPartition groups candidates that could belong to one split chain:
// same work-order year and same declared road tag.
type splitPartition struct {
	Year int
	Tag  string
}

// DetectSplitting finds groups of small works that together look like one
// deliberately split contract. A group is reported only when every
// consecutive chainage gap within it stays at or below the limit; one
// outsized gap disqualifies the whole group.
func DetectSplitting(records []*types.WorkRecord) []types.BatchFinding {
	partitions := make(map[splitPartition][]*types.WorkRecord)
	for _, r := range records {
		tag := strings.TrimSpace(r.RoadCategory)
		if tag == "" || r.WorkOrderDate == nil {
			continue
		}
		if r.ContractCost <= 0 || r.ContractCost >= splittingCostCapLakh {
			continue
		}
		if !r.HasChainage() {
			continue
		}
		p := splitPartition{Year: r.WorkOrderDate.Year(), Tag: tag}
		partitions[p] = append(partitions[p], r)
	}

	keys := make([]splitPartition, 0, len(partitions))
	for k := range partitions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Tag < keys[j].Tag
	})

	var findings []types.BatchFinding
	for _, p := range keys {
		byRoad := make(map[RoadKey][]*types.WorkRecord)
		var roads []RoadKey
		for _, r := range partitions[p] {
			key, ok := ParseRoadKey(r.NameOfWork)
			if !ok {
				continue
			}
			if _, seen := byRoad[key]; !seen {
				roads = append(roads, key)
			}
			byRoad[key] = append(byRoad[key], r)
		}
		sort.Slice(roads, func(i, j int) bool {
			if roads[i].Class != roads[j].Class {
				return roads[i].Class < roads[j].Class
			}
			return roads[i].Number < roads[j].Number
		})

		for _, road := range roads {
			group := byRoad[road]
			if len(group) < splittingMinGroup {
				continue
			}
			sort.Slice(group, func(i, j int) bool {
				if group[i].ChainageFrom != group[j].ChainageFrom {
					return group[i].ChainageFrom < group[j].ChainageFrom
				}
				return group[i].RecordIndex < group[j].RecordIndex
			})
			if f, ok := splittingFinding(p, road, group); ok {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func splittingFinding(p splitPartition, road RoadKey, group []*types.WorkRecord) (types.BatchFinding, bool) {
	var total float64
	for i, r := range group {
		total += r.ContractCost
		if i == 0 {
			continue
		}
		if gap := r.ChainageFrom - group[i-1].ChainageTo; gap > splittingMaxGapKm {
			return types.BatchFinding{}, false
		}
	}

	affected := make([]types.AffectedRecord, 0, len(group))
	indices := make([]int, 0, len(group))
	for _, r := range group {
		affected = append(affected, affectedRecord(r))
		indices = append(indices, r.RecordIndex)
	}
	sort.Ints(indices)

	return types.BatchFinding{
		Finding: types.Finding{
			FlagID:   FlagSplittingOfWork,
			FlagName: FlagNames[FlagSplittingOfWork],
			Severity: types.SeverityHigh,
			Description: fmt.Sprintf(
				"%d small works on %s awarded in %d total %.2f lakh and sit within %.0f km of each other",
				len(group), road, p.Year, total, splittingMaxGapKm),
			Details: map[string]any{
				"road":            road.String(),
				"year":            p.Year,
				"record_indices":  indices,
				"group_size":      len(group),
				"total_cost_lakh": total,
				"cost_cap_lakh":   splittingCostCapLakh,
				"max_gap_km":      splittingMaxGapKm,
			},
		},
		AffectedRecords: affected,
		TotalCost:       total,
	}, true
}
