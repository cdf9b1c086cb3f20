package factor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ============================================================================
// Options
// ============================================================================

// ReorderOptions configures Reorder.
type ReorderOptions struct {
	Fun      SummaryFunc // Per-level summary (default Median)
	Desc     bool        // Sort levels by descending key
	Ordering Ordering    // Ordered flag of the result (default InheritOrder)
}

// DefaultReorderOptions returns default Reorder options.
func DefaultReorderOptions() ReorderOptions {
	return ReorderOptions{Fun: Median}
}

// Reorder2Options configures Reorder2.
type Reorder2Options struct {
	Fun      Summary2Func // Per-level summary (default Last2)
	Desc     bool         // Sort levels by descending key
	Ordering Ordering
}

// DefaultReorder2Options returns default Reorder2 options. Unlike Reorder,
// the default sort is descending, matching legend order to line endpoints
// in a plot.
func DefaultReorder2Options() Reorder2Options {
	return Reorder2Options{Fun: Last2, Desc: true}
}

// InOrderOptions configures InOrder, InFreq and InSeq.
type InOrderOptions struct {
	Ordering Ordering
}

// ============================================================================
// Reordering entry points
// ============================================================================

// Reorder returns a new Factor whose levels are sorted by a per-level
// summary of the aligned vector x, ascending by default. Levels with no
// observations (or whose summary is NaN) sort after every level with a real
// key, keeping their original relative order; this holds for descending
// sorts too. Ties keep the original level order.
func Reorder(f *Factor, x []float64, opts ...ReorderOptions) (*Factor, error) {
	opt := DefaultReorderOptions()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.Fun == nil {
			opt.Fun = Median
		}
	}

	keys, err := GroupSummary(f, x, opt.Fun)
	if err != nil {
		return nil, fmt.Errorf("reorder: %w", err)
	}

	return f.ReorderLevels(rankByKeys(keys, opt.Desc), opt.Ordering)
}

// Reorder2 returns a new Factor whose levels are sorted by a per-level
// summary of two aligned vectors x and y, descending by default. The
// default summary Last2 picks the y value where x is largest, so the first
// level is the one whose line ends highest in an x/y plot.
func Reorder2(f *Factor, x, y []float64, opts ...Reorder2Options) (*Factor, error) {
	opt := DefaultReorder2Options()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.Fun == nil {
			opt.Fun = Last2
		}
	}

	if f.Len() != len(x) || f.Len() != len(y) {
		return nil, fmt.Errorf("reorder2: factor has %d observations, x has %d, y has %d: %w",
			f.Len(), len(x), len(y), ErrLengthMismatch)
	}

	keys := groupSummary2(f, x, y, opt.Fun)
	return f.ReorderLevels(rankByKeys(keys, opt.Desc), opt.Ordering)
}

// InOrder returns a new Factor whose levels are sorted by the position of
// each level's first non-missing observation. Levels that never appear keep
// their original relative order after the appearing ones. An all-missing
// factor is returned with its level order unchanged.
func InOrder(f *Factor, opts ...InOrderOptions) (*Factor, error) {
	var opt InOrderOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	rank := make([]int, 0, f.NumLevels())
	seen := make([]bool, f.NumLevels())
	for _, c := range f.codes {
		if c == missingCode || seen[c] {
			continue
		}
		seen[c] = true
		rank = append(rank, int(c))
	}
	for i := range seen {
		if !seen[i] {
			rank = append(rank, i)
		}
	}

	return f.ReorderLevels(rank, opt.Ordering)
}

// InFreq returns a new Factor whose levels are sorted by descending
// observation count. Equal counts keep the original level order.
func InFreq(f *Factor, opts ...InOrderOptions) (*Factor, error) {
	var opt InOrderOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	counts := LevelCounts(f)
	rank := identityPerm(len(counts))
	sort.SliceStable(rank, func(i, j int) bool {
		return counts[rank[i]] > counts[rank[j]]
	})

	return f.ReorderLevels(rank, opt.Ordering)
}

// InSeq returns a new Factor whose levels are sorted by the numeric value
// of their labels, ascending. Labels that do not parse as numbers sort
// after all numeric labels, keeping their original relative order. If no
// label is numeric the call fails. The result is rebuilt through Refactor,
// so the full level set is carried over and no observation is dropped.
func InSeq(f *Factor, opts ...InOrderOptions) (*Factor, error) {
	var opt InOrderOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	levels := f.levels
	nums := make([]float64, len(levels))
	anyNumeric := false
	for i, lvl := range levels {
		v, err := strconv.ParseFloat(lvl, 64)
		if err != nil || math.IsNaN(v) {
			nums[i] = math.NaN()
		} else {
			nums[i] = v
			anyNumeric = true
		}
	}
	if !anyNumeric && len(levels) > 0 {
		return nil, fmt.Errorf("inseq: %w", ErrNoNumericLevels)
	}

	rank := rankByKeys(nums, false)
	newLevels := make([]string, len(levels))
	for i, old := range rank {
		newLevels[i] = levels[old]
	}

	return f.Refactor(newLevels, opt.Ordering)
}

// ============================================================================
// Rank derivation
// ============================================================================

// rankByKeys returns a stable permutation of level indices sorted by key.
// NaN keys sort last regardless of direction, so unseen levels stay at the
// end in their original relative order.
func rankByKeys(keys []float64, desc bool) []int {
	rank := identityPerm(len(keys))
	sort.SliceStable(rank, func(i, j int) bool {
		ki, kj := keys[rank[i]], keys[rank[j]]
		if math.IsNaN(ki) {
			return false
		}
		if math.IsNaN(kj) {
			return true
		}
		if desc {
			return ki > kj
		}
		return ki < kj
	})
	return rank
}

func identityPerm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
