// Package factor provides a dictionary-encoded categorical vector type and
// utilities for reordering its levels.
//
// A Factor stores each observation as an int32 code into an ordered slice of
// unique string labels (the "levels"). Reordering functions permute the level
// order based on a criterion (a per-level summary of an auxiliary numeric
// vector, first appearance, frequency, or the numeric value of the labels)
// without changing which label each observation carries.
package factor

import (
	"fmt"
	"sort"
	"strings"
)

// missingCode marks an observation with no level.
const missingCode int32 = -1

// Ordering controls whether the result of a reordering operation is marked
// as ordered (levels carry a total order for comparison purposes).
type Ordering uint8

const (
	// InheritOrder keeps the ordered flag of the input factor.
	InheritOrder Ordering = iota
	// Unordered clears the ordered flag on the result.
	Unordered
	// OrderedLevels sets the ordered flag on the result.
	OrderedLevels
)

// Factor is a categorical vector: a sequence of observations, each encoded
// as an index into an ordered set of unique levels. A code of -1 marks a
// missing observation. Factors are immutable; every operation returns a new
// Factor and leaves its inputs untouched.
type Factor struct {
	codes   []int32
	levels  []string
	ordered bool
}

// ============================================================================
// Construction
// ============================================================================

// New creates a Factor from raw string values. The level set is the sorted
// unique set of non-empty values; empty strings become missing observations.
func New(values []string) *Factor {
	uniq := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			uniq[v] = struct{}{}
		}
	}

	levels := make([]string, 0, len(uniq))
	for v := range uniq {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	f, _ := NewWithLevels(values, levels)
	return f
}

// NewWithLevels creates a Factor from raw string values against an explicit
// level list. Values absent from the list (and empty strings) become missing
// observations. The level list must not contain duplicates.
func NewWithLevels(values, levels []string) (*Factor, error) {
	index := make(map[string]int32, len(levels))
	for i, lvl := range levels {
		if _, dup := index[lvl]; dup {
			return nil, fmt.Errorf("level %q: %w", lvl, ErrDuplicateLevels)
		}
		index[lvl] = int32(i)
	}

	codes := make([]int32, len(values))
	for i, v := range values {
		if code, ok := index[v]; ok && v != "" {
			codes[i] = code
		} else {
			codes[i] = missingCode
		}
	}

	return &Factor{
		codes:  codes,
		levels: append([]string(nil), levels...),
	}, nil
}

// FromCodes creates a Factor directly from codes and levels. Each code must
// be -1 (missing) or a valid index into levels.
func FromCodes(codes []int32, levels []string) (*Factor, error) {
	seen := make(map[string]struct{}, len(levels))
	for _, lvl := range levels {
		if _, dup := seen[lvl]; dup {
			return nil, fmt.Errorf("level %q: %w", lvl, ErrDuplicateLevels)
		}
		seen[lvl] = struct{}{}
	}

	for i, c := range codes {
		if c != missingCode && (c < 0 || int(c) >= len(levels)) {
			return nil, fmt.Errorf("observation %d: code %d out of range for %d levels", i, c, len(levels))
		}
	}

	return &Factor{
		codes:  append([]int32(nil), codes...),
		levels: append([]string(nil), levels...),
	}, nil
}

// Coerce converts a supported input into a Factor. A *Factor passes through
// unchanged; a []string is converted with New. Any other type fails.
func Coerce(v any) (*Factor, error) {
	switch x := v.(type) {
	case *Factor:
		if x == nil {
			return nil, fmt.Errorf("nil factor: %w", ErrUnsupportedInput)
		}
		return x, nil
	case []string:
		return New(x), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to factor: %w", v, ErrUnsupportedInput)
	}
}

// ============================================================================
// Accessors
// ============================================================================

// Len returns the number of observations.
func (f *Factor) Len() int {
	return len(f.codes)
}

// NumLevels returns the number of levels.
func (f *Factor) NumLevels() int {
	return len(f.levels)
}

// Levels returns a copy of the level labels in rank order.
func (f *Factor) Levels() []string {
	return append([]string(nil), f.levels...)
}

// Codes returns a copy of the per-observation level codes (-1 = missing).
func (f *Factor) Codes() []int32 {
	return append([]int32(nil), f.codes...)
}

// IsOrdered reports whether the factor's levels carry a total order.
func (f *Factor) IsOrdered() bool {
	return f.ordered
}

// Value returns the label of observation i and whether it is present.
func (f *Factor) Value(i int) (string, bool) {
	c := f.codes[i]
	if c == missingCode {
		return "", false
	}
	return f.levels[c], true
}

// IsNA reports whether observation i is missing.
func (f *Factor) IsNA(i int) bool {
	return f.codes[i] == missingCode
}

// Strings returns the label of every observation, with "" for missing.
func (f *Factor) Strings() []string {
	out := make([]string, len(f.codes))
	for i, c := range f.codes {
		if c != missingCode {
			out[i] = f.levels[c]
		}
	}
	return out
}

// Counts returns the number of observations per level, in level rank order.
func (f *Factor) Counts() []int {
	counts := make([]int, len(f.levels))
	for _, c := range f.codes {
		if c != missingCode {
			counts[c]++
		}
	}
	return counts
}

// Unique returns the distinct labels present in the data, in order of first
// appearance. Missing observations are skipped.
func (f *Factor) Unique() []string {
	seen := make(map[int32]struct{}, len(f.levels))
	out := make([]string, 0, len(f.levels))
	for _, c := range f.codes {
		if c == missingCode {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, f.levels[c])
		}
	}
	return out
}

// Equal reports whether two factors have identical observations, levels and
// ordered flag.
func (f *Factor) Equal(other *Factor) bool {
	if other == nil || len(f.codes) != len(other.codes) || len(f.levels) != len(other.levels) {
		return false
	}
	if f.ordered != other.ordered {
		return false
	}
	for i := range f.levels {
		if f.levels[i] != other.levels[i] {
			return false
		}
	}
	for i := range f.codes {
		if f.codes[i] != other.codes[i] {
			return false
		}
	}
	return true
}

// String returns a compact description of the factor for debugging.
func (f *Factor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Factor[%d]", len(f.codes))
	if f.ordered {
		sb.WriteString(" ordered")
	}
	sb.WriteString(" levels=[")
	sb.WriteString(strings.Join(f.levels, " "))
	sb.WriteString("]")
	return sb.String()
}

// ============================================================================
// Level permutation primitives
// ============================================================================

// ReorderLevels returns a new Factor whose level at position i is the input
// factor's level rank[i]. The rank slice must be a permutation of
// [0, NumLevels). Every observation keeps its label; only the label's rank
// changes.
func (f *Factor) ReorderLevels(rank []int, ord Ordering) (*Factor, error) {
	k := len(f.levels)
	if len(rank) != k {
		return nil, fmt.Errorf("rank has %d entries for %d levels: %w", len(rank), k, ErrBadPermutation)
	}

	// inverse[old] = new rank of the old level
	inverse := make([]int32, k)
	for i := range inverse {
		inverse[i] = -1
	}
	for newRank, old := range rank {
		if old < 0 || old >= k {
			return nil, fmt.Errorf("rank entry %d out of range: %w", old, ErrBadPermutation)
		}
		if inverse[old] != -1 {
			return nil, fmt.Errorf("rank entry %d repeated: %w", old, ErrBadPermutation)
		}
		inverse[old] = int32(newRank)
	}

	levels := make([]string, k)
	for newRank, old := range rank {
		levels[newRank] = f.levels[old]
	}

	codes := make([]int32, len(f.codes))
	for i, c := range f.codes {
		if c == missingCode {
			codes[i] = missingCode
		} else {
			codes[i] = inverse[c]
		}
	}

	return &Factor{
		codes:   codes,
		levels:  levels,
		ordered: resolveOrdering(ord, f.ordered),
	}, nil
}

// Refactor rebuilds the factor against a caller-supplied level list, which
// need not be a permutation of the current levels. Observations whose label
// is absent from the new list become missing.
func (f *Factor) Refactor(newLevels []string, ord Ordering) (*Factor, error) {
	index := make(map[string]int32, len(newLevels))
	for i, lvl := range newLevels {
		if _, dup := index[lvl]; dup {
			return nil, fmt.Errorf("level %q: %w", lvl, ErrDuplicateLevels)
		}
		index[lvl] = int32(i)
	}

	codes := make([]int32, len(f.codes))
	for i, c := range f.codes {
		if c == missingCode {
			codes[i] = missingCode
			continue
		}
		if newCode, ok := index[f.levels[c]]; ok {
			codes[i] = newCode
		} else {
			codes[i] = missingCode
		}
	}

	return &Factor{
		codes:   codes,
		levels:  append([]string(nil), newLevels...),
		ordered: resolveOrdering(ord, f.ordered),
	}, nil
}

func resolveOrdering(ord Ordering, current bool) bool {
	switch ord {
	case Unordered:
		return false
	case OrderedLevels:
		return true
	default:
		return current
	}
}
