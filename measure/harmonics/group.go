package harmonics

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-spectra/measure/peaks"
)

const (
	// MaxCandidates bounds the number of peaks considered for grouping.
	MaxCandidates = 50
	// Tolerance is the maximum relative frequency error of a matched harmonic.
	Tolerance = 0.02
	// MaxOrder is the highest harmonic number searched.
	MaxOrder = 20
	// MinMembers is the smallest retained series, fundamental included.
	MinMembers = 3
)

// Series is a fundamental and the overtones matched to it.
type Series struct {
	Fundamental float64 `json:"fundamental" yaml:"fundamental"`
	// Overtones holds every member; index 0 is the fundamental's own peak.
	Overtones     []peaks.Feature `json:"overtones" yaml:"overtones"`
	Strength      float64         `json:"strength" yaml:"strength"`
	Inharmonicity float64         `json:"inharmonicity" yaml:"inharmonicity"`
}

// Group partitions features into harmonic series. features must be sorted
// by descending magnitude, as returned by [peaks.Detect]. Only the first
// [MaxCandidates] features are tried as fundamentals; overtones are matched
// among every weaker feature. Claims are greedy and final: a peak matched
// by a fundamental stays claimed even when that series is rejected. The
// result is sorted by descending strength.
func Group(features []peaks.Feature) []Series {
	claimed := make([]bool, len(features))

	out := make([]Series, 0, 4)
	members := make([]int, 0, MaxOrder)

	for i := range min(len(features), MaxCandidates) {
		root := features[i]
		if claimed[i] || !(root.Frequency > 0) {
			continue
		}

		members = append(members[:0], i)
		claimed[i] = true

		for k := 2; k <= MaxOrder; k++ {
			if j := closestUnclaimed(features, claimed, i+1, root.Frequency*float64(k)); j >= 0 {
				claimed[j] = true
				members = append(members, j)
			}
		}

		if len(members) < MinMembers {
			continue
		}

		out = append(out, newSeries(features, members))
	}

	slices.SortStableFunc(out, func(a, b Series) int {
		switch {
		case a.Strength > b.Strength:
			return -1
		case a.Strength < b.Strength:
			return 1
		default:
			return 0
		}
	})

	return out
}

// closestUnclaimed returns the index >= from of the unclaimed peak nearest
// target within Tolerance, or -1.
func closestUnclaimed(features []peaks.Feature, claimed []bool, from int, target float64) int {
	best := -1
	bestErr := Tolerance

	for j := from; j < len(features); j++ {
		if claimed[j] {
			continue
		}

		if e := math.Abs(features[j].Frequency-target) / target; e < bestErr {
			best, bestErr = j, e
		}
	}

	return best
}

func newSeries(features []peaks.Feature, members []int) Series {
	f0 := features[members[0]].Frequency

	s := Series{
		Fundamental: f0,
		Overtones:   make([]peaks.Feature, len(members)),
	}

	deviation := 0.0

	for pos, j := range members {
		p := features[j]
		s.Overtones[pos] = p
		s.Strength += p.Magnitude

		if pos > 0 {
			expected := f0 * float64(pos+1)
			deviation += math.Abs(p.Frequency-expected) / expected
		}
	}

	s.Inharmonicity = deviation / float64(len(members)-1)

	return s
}
