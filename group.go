package factor

import (
	"fmt"
	"math"
)

// ============================================================================
// Per-level grouping
// ============================================================================

// GroupSummary applies fun to the x values of each level and returns one
// sort key per level, in level rank order. Levels with no observations get
// a NaN key. Missing observations contribute to no group.
func GroupSummary(f *Factor, x []float64, fun SummaryFunc) ([]float64, error) {
	if f.Len() != len(x) {
		return nil, fmt.Errorf("factor has %d observations, x has %d: %w", f.Len(), len(x), ErrLengthMismatch)
	}

	groups := groupByLevel(f, x)
	keys := make([]float64, f.NumLevels())
	for i, g := range groups {
		if len(g) == 0 {
			keys[i] = math.NaN()
		} else {
			keys[i] = fun(g)
		}
	}
	return keys, nil
}

// groupSummary2 is the two-vector variant used by Reorder2. Lengths are
// validated by the caller.
func groupSummary2(f *Factor, x, y []float64, fun Summary2Func) []float64 {
	gx := groupByLevel(f, x)
	gy := groupByLevel(f, y)

	keys := make([]float64, f.NumLevels())
	for i := range keys {
		if len(gx[i]) == 0 {
			keys[i] = math.NaN()
		} else {
			keys[i] = fun(gx[i], gy[i])
		}
	}
	return keys
}

// groupByLevel buckets vals by the level of the aligned observation,
// preserving observation order within each bucket.
func groupByLevel(f *Factor, vals []float64) [][]float64 {
	groups := make([][]float64, f.NumLevels())
	for i, c := range f.codes {
		if c == missingCode {
			continue
		}
		groups[c] = append(groups[c], vals[i])
	}
	return groups
}

// LevelCounts returns the observation count per level, in level rank order.
// Missing observations are not counted.
func LevelCounts(f *Factor) []int {
	return f.Counts()
}
