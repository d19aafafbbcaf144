// Package maxop - sentinel error set. All public entry points return these
// sentinels (optionally wrapped with context via %w); callers match with
// errors.Is. No panics on user input.
package maxop

import "errors"

var (
	// ErrInvalidParameter is returned by the smooth constructors when the
	// smoothing parameter is out of range: p ∉ (0,1) or γ ≤ 0.
	ErrInvalidParameter = errors.New("maxop: invalid operator parameter")

	// ErrEmptyInput is returned when an operator is evaluated on a
	// zero-length vector.
	ErrEmptyInput = errors.New("maxop: empty input vector")

	// ErrDimensionMismatch is returned when a gradient buffer does not have
	// the same length as the input vector.
	ErrDimensionMismatch = errors.New("maxop: gradient buffer length mismatch")
)
