// =============================================================================
// PWD Works Red Flag Analyzer - Road Key Extraction
// =============================================================================

package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RoadKey is a structural road identity extracted from free text. Two
// records describe work on the same road only when both parse to the same
// key. A declared road-category tag alone is not enough: the batch
// detectors use the tag to cheaply partition records and the RoadKey to
// confirm identity inside a partition.
type RoadKey struct {
	Class  string // SH, MDR or NH
	Number int
}

// String renders the key in canonical CLASS-NUMBER form.
func (k RoadKey) String() string {
	return fmt.Sprintf("%s-%d", k.Class, k.Number)
}

// roadKeyPattern matches a road class followed by an optional separator and
// the road number. Matching is case-insensitive; "sh 56", "SH-56" and
// "Sh56" all parse to SH-56.
var roadKeyPattern = regexp.MustCompile(`(?i)\b(SH|MDR|NH)[-\s]*([0-9]+)`)

// ParseRoadKey extracts the first road key from the given text. It returns
// false when the text carries no recognizable road reference.
func ParseRoadKey(text string) (RoadKey, bool) {
	m := roadKeyPattern.FindStringSubmatch(text)
	if m == nil {
		return RoadKey{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return RoadKey{}, false
	}
	return RoadKey{Class: strings.ToUpper(m[1]), Number: n}, true
}
