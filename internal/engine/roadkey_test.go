package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoadKey(t *testing.T) {
	cases := []struct {
		in    string
		want  RoadKey
		found bool
	}{
		{"Improvement of SH-56 from km 10 to 15", RoadKey{"SH", 56}, true},
		{"Widening of MDR 43 near village road", RoadKey{"MDR", 43}, true},
		{"nh-752 bridge approach", RoadKey{"NH", 752}, true},
		{"SH56 resurfacing", RoadKey{"SH", 56}, true},
		{"Sh - 240 repairs", RoadKey{"SH", 240}, true},
		{"Construction of community hall", RoadKey{}, false},
		{"", RoadKey{}, false},
		{"FLUSH-99 storm drain", RoadKey{}, false},
	}
	for _, c := range cases {
		got, ok := ParseRoadKey(c.in)
		assert.Equal(t, c.found, ok, "input %q", c.in)
		if c.found {
			assert.Equal(t, c.want, got, "input %q", c.in)
		}
	}
}

func TestRoadKeyString(t *testing.T) {
	assert.Equal(t, "SH-56", RoadKey{"SH", 56}.String())
	assert.Equal(t, "NH-752", RoadKey{"NH", 752}.String())
}
