// Package nw - options, gap penalties, result and step types, sentinels.
package nw

import (
	"errors"

	"github.com/katalvlaran/softalign/lattice"
	"github.com/katalvlaran/softalign/maxop"
)

var (
	// ErrEmptyInput indicates an empty similarity matrix.
	ErrEmptyInput = errors.New("nw: similarity matrix must be non-empty")

	// ErrDimensionMismatch indicates a ragged similarity matrix or gap
	// vectors whose lengths disagree with the matrix dimensions.
	ErrDimensionMismatch = errors.New("nw: input dimensions disagree")

	// ErrNonFiniteInput indicates a NaN or ±Inf similarity or gap value.
	ErrNonFiniteInput = errors.New("nw: inputs must be finite")

	// ErrPathNeedsHardMax indicates Path was called with a smooth operator.
	ErrPathNeedsHardMax = errors.New("nw: alignment recovery requires the hard operator")
)

// GapPenalty is either one scalar applied uniformly or a pair of
// per-position vectors: gs[i] is the cost of a deletion step consuming
// position i of the first sequence, gt[j] the cost of an insertion step
// consuming position j of the second. Construct via ScalarGap or
// PositionalGap; lengths are validated against θ at call time.
type GapPenalty struct {
	scalar     float64
	gs, gt     []float64
	positional bool
}

// ScalarGap returns a uniform gap penalty.
func ScalarGap(g float64) GapPenalty {
	return GapPenalty{scalar: g}
}

// PositionalGap returns a per-position gap penalty. gs must have one entry
// per row of θ, gt one per column.
func PositionalGap(gs, gt []float64) GapPenalty {
	return GapPenalty{gs: gs, gt: gt, positional: true}
}

// Positional reports whether this penalty carries per-position vectors.
func (g GapPenalty) Positional() bool { return g.positional }

// s returns the deletion cost at 1-based row i.
func (g GapPenalty) s(i int) float64 {
	if g.positional {
		return g.gs[i-1]
	}

	return g.scalar
}

// t returns the insertion cost at 1-based column j.
func (g GapPenalty) t(j int) float64 {
	if g.positional {
		return g.gt[j-1]
	}

	return g.scalar
}

// Options configures one smoothed alignment.
//
// The zero value uses the hard operator and a zero scalar gap; prefer
// DefaultOptions, which sets the customary unit gap.
type Options struct {
	// Operator is the smoothing strategy applied to the 3-way step maximum.
	Operator maxop.Operator

	// Gap is the gap-penalty model (scalar or per-position).
	Gap GapPenalty
}

// DefaultOptions returns the classical configuration: hard max, unit gap.
func DefaultOptions() Options {
	return Options{Operator: maxop.Hard(), Gap: ScalarGap(1)}
}

// Move is one edit operation of a recovered alignment.
type Move int

const (
	// MoveDelete consumes one position of the first sequence against a gap.
	MoveDelete Move = iota

	// MoveMatch aligns one position of each sequence.
	MoveMatch

	// MoveInsert consumes one position of the second sequence against a gap.
	MoveInsert
)

// String returns a one-letter rendering: D, M or I.
func (m Move) String() string {
	switch m {
	case MoveDelete:
		return "D"
	case MoveMatch:
		return "M"
	case MoveInsert:
		return "I"
	default:
		return "?"
	}
}

// Step is one move of a recovered alignment. I and J are 0-based positions
// into the first and second sequence; the one a gap move does not consume
// is -1.
type Step struct {
	Move Move
	I    int
	J    int
}

// Result holds the outcome of a forward+backward run.
type Result struct {
	// Score is the smoothed total alignment score D[n,m].
	Score float64

	// GradTheta[i][j] = ∂Score/∂θ[i][j], same shape as θ.
	GradTheta [][]float64

	// GradGapS and GradGapT are ∂Score/∂gs and ∂Score/∂gt. Populated only
	// for positional gap penalties; nil for a scalar gap.
	GradGapS []float64
	GradGapT []float64

	// Lattice is the DP state the run filled (D, Q, E). Read-only after
	// return.
	Lattice *lattice.State
}
