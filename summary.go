package factor

import (
	"math"
	"sort"
)

// SummaryFunc reduces the auxiliary values of one level to a single sort
// key. Returning NaN marks the level as having no usable key; such levels
// sort after every level with a real key.
type SummaryFunc func(xs []float64) float64

// Summary2Func reduces two aligned auxiliary vectors for one level to a
// single sort key. NaN has the same meaning as for SummaryFunc.
type Summary2Func func(x, y []float64) float64

// Median returns the median of the non-NaN values in xs, or NaN if there
// are none.
func Median(xs []float64) float64 {
	vals := dropNaN(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}

// Mean returns the arithmetic mean of the non-NaN values in xs, or NaN if
// there are none.
func Mean(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range xs {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Min returns the smallest non-NaN value in xs, or NaN if there are none.
func Min(xs []float64) float64 {
	best := math.NaN()
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v < best {
			best = v
		}
	}
	return best
}

// Max returns the largest non-NaN value in xs, or NaN if there are none.
func Max(xs []float64) float64 {
	best := math.NaN()
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v > best {
			best = v
		}
	}
	return best
}

// Last2 returns the y value at the observation where x is largest, treating
// NaN x values as smaller than every number. Ties on x resolve to the later
// observation. If every x is NaN the y of the last observation is returned.
// Mismatched lengths or empty input yield NaN (the "no value" summary).
func Last2(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}

	best := -1
	for i, xv := range x {
		if math.IsNaN(xv) {
			continue
		}
		if best == -1 || xv >= x[best] {
			best = i
		}
	}
	if best == -1 {
		return y[len(y)-1]
	}
	return y[best]
}

// First2 returns the y value at the observation where x is smallest,
// treating NaN x values as larger than every number. Ties on x resolve to
// the earlier observation. If every x is NaN the y of the first observation
// is returned. Mismatched lengths or empty input yield NaN.
func First2(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}

	best := -1
	for i, xv := range x {
		if math.IsNaN(xv) {
			continue
		}
		if best == -1 || xv < x[best] {
			best = i
		}
	}
	if best == -1 {
		return y[0]
	}
	return y[best]
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
