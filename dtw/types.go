// Package dtw - options, result types and sentinel errors.
package dtw

import (
	"errors"

	"github.com/katalvlaran/softalign/lattice"
	"github.com/katalvlaran/softalign/maxop"
)

var (
	// ErrEmptyInput indicates an empty cost matrix (no rows or no columns).
	ErrEmptyInput = errors.New("dtw: cost matrix must be non-empty")

	// ErrDimensionMismatch indicates a ragged cost matrix.
	ErrDimensionMismatch = errors.New("dtw: cost matrix rows differ in length")

	// ErrNonFiniteCost indicates a NaN or ±Inf entry in the cost matrix.
	ErrNonFiniteCost = errors.New("dtw: cost matrix entries must be finite")

	// ErrBadBoundary indicates an unknown Boundary value in Options.
	ErrBadBoundary = errors.New("dtw: unknown boundary policy")

	// ErrPathNeedsHardMax indicates Path was called with a smooth operator;
	// a discrete warping path only exists for one-hot step distributions.
	ErrPathNeedsHardMax = errors.New("dtw: path recovery requires the hard operator")
)

// Boundary selects how the warping path may start.
//
//   - BoundaryStrict — the classical initialization: D[0,0]=0 and the rest
//     of the first row/column +Inf, so every path begins at cell (1,1).
//   - BoundaryOpen — the first row/column are zero, so the path may begin
//     anywhere on the border (open-start time-series matching).
//
// Strict is the default; it reproduces textbook DTW under maxop.Hard().
type Boundary int

const (
	// BoundaryStrict forces paths to start at the (1,1) corner.
	BoundaryStrict Boundary = iota

	// BoundaryOpen lets paths start anywhere on the first row or column.
	BoundaryOpen
)

// Options configures one smoothed-DTW computation.
//
// The zero value is valid: hard operator, strict boundary.
type Options struct {
	// Operator is the smoothing strategy applied to the 3-way step minimum.
	Operator maxop.Operator

	// Boundary is the path-start policy (default BoundaryStrict).
	Boundary Boundary
}

// DefaultOptions returns the classical configuration: hard min, strict start.
func DefaultOptions() Options {
	return Options{Operator: maxop.Hard(), Boundary: BoundaryStrict}
}

// Coord is one cell of a warping path, 0-based into the cost matrix.
type Coord struct {
	I int // row index (first series)
	J int // column index (second series)
}

// Result holds the outcome of a forward+backward run.
type Result struct {
	// Distance is the smoothed total warping distance D[n,m].
	Distance float64

	// Grad[i][j] = ∂Distance/∂θ[i][j], same shape as the cost matrix.
	Grad [][]float64

	// Lattice is the DP state the run filled (D, Q, E). Read-only after
	// return; exposed for inspection and for callers that want the raw
	// sensitivity lattice instead of the extracted gradient.
	Lattice *lattice.State
}
