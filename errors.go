package factor

import "errors"

// Sentinel errors for argument validation. All public entry points wrap
// these with fmt.Errorf("...: %w", ...) so callers can match with errors.Is.
var (
	// ErrLengthMismatch is returned when an auxiliary vector does not have
	// the same length as the factor's observations.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrNoNumericLevels is returned by InSeq when no level label parses
	// as a number.
	ErrNoNumericLevels = errors.New("no level is numeric")

	// ErrBadPermutation is returned by ReorderLevels when the rank slice
	// is not a permutation of the current level indices.
	ErrBadPermutation = errors.New("invalid level permutation")

	// ErrDuplicateLevels is returned when a level list contains the same
	// label twice.
	ErrDuplicateLevels = errors.New("duplicate levels")

	// ErrUnsupportedInput is returned by Coerce for input types outside
	// the supported union.
	ErrUnsupportedInput = errors.New("unsupported input type")
)
