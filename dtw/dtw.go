package dtw

import (
	"math"

	"github.com/katalvlaran/softalign/lattice"
	"github.com/katalvlaran/softalign/maxop"
)

// Predecessor slots of a lattice cell, in the order the candidates are fed
// to the operator: up (i-1,j), left (i,j-1), diagonal (i-1,j-1).
const (
	stepUp = iota
	stepLeft
	stepDiag

	steps // slot count, the k of lattice.New
)

// SquaredCosts builds the pairwise squared-distance matrix
// θ[i][j] = (a[i]-b[j])² used for time-series warping.
// Returns nil when either series is empty; Distance/Gradient will then
// report ErrEmptyInput.
func SquaredCosts(a, b []float64) [][]float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	theta := make([][]float64, len(a))
	for i, av := range a {
		row := make([]float64, len(b))
		for j, bv := range b {
			d := av - bv
			row[j] = d * d
		}
		theta[i] = row
	}

	return theta
}

// Distance computes the smoothed DTW distance of the cost matrix theta.
// A nil opts means DefaultOptions (hard operator, strict boundary), under
// which the result is exactly the classical DTW distance.
func Distance(theta [][]float64, opts *Options) (float64, error) {
	st, err := run(theta, opts, false)
	if err != nil {
		return 0, err
	}
	n, m, _ := st.Dims()

	return st.D(n, m), nil
}

// Gradient computes the smoothed DTW distance and its gradient with respect
// to every cost entry via the backward sensitivity sweep.
func Gradient(theta [][]float64, opts *Options) (*Result, error) {
	st, err := run(theta, opts, true)
	if err != nil {
		return nil, err
	}
	n, m, _ := st.Dims()

	grad := make([][]float64, n)
	for i := 1; i <= n; i++ {
		row := make([]float64, m)
		for j := 1; j <= m; j++ {
			row[j-1] = st.E(i, j)
		}
		grad[i-1] = row
	}

	return &Result{Distance: st.D(n, m), Grad: grad, Lattice: st}, nil
}

// Path recovers the optimal warping path from the stored step
// distributions. Only the hard operator yields one-hot distributions, so
// any smooth operator fails with ErrPathNeedsHardMax. The trace runs from
// (n,m) toward the start and stops at (1,1) or, under BoundaryOpen, at the
// border cell where the path begins. Coordinates are 0-based into theta.
func Path(theta [][]float64, opts *Options) ([]Coord, error) {
	o := resolve(opts)
	if o.Operator.Kind() != maxop.KindHard {
		return nil, ErrPathNeedsHardMax
	}

	st, err := run(theta, opts, false)
	if err != nil {
		return nil, err
	}
	n, m, _ := st.Dims()

	var path []Coord
	i, j := n, m
	for {
		path = append(path, Coord{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}

		ni, nj := i, j
		switch argmaxSlot(st, i, j) {
		case stepUp:
			ni--
		case stepLeft:
			nj--
		default:
			ni--
			nj--
		}
		if ni < 1 || nj < 1 {
			break // open-start path reached the border
		}
		i, j = ni, nj
	}

	// Reverse in place: the trace collected cells end-to-start.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path, nil
}

// resolve applies DefaultOptions over a possibly-nil opts.
func resolve(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}

	return *opts
}

// run validates inputs, allocates the lattice and executes the forward pass
// (plus the backward sweep when backward is true).
func run(theta [][]float64, opts *Options, backward bool) (*lattice.State, error) {
	o := resolve(opts)
	if o.Boundary != BoundaryStrict && o.Boundary != BoundaryOpen {
		return nil, ErrBadBoundary
	}

	n, m, err := validateCosts(theta)
	if err != nil {
		return nil, err
	}

	st, err := lattice.New(n, m, steps)
	if err != nil {
		return nil, err
	}

	if err = forward(st, theta, o); err != nil {
		return nil, err
	}
	if backward {
		backprop(st)
	}

	return st, nil
}

// validateCosts checks the cost matrix is non-empty, rectangular and finite.
// Returns its dimensions on success. Complexity: O(n·m).
func validateCosts(theta [][]float64) (n, m int, err error) {
	n = len(theta)
	if n == 0 || len(theta[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	m = len(theta[0])

	for _, row := range theta {
		if len(row) != m {
			return 0, 0, ErrDimensionMismatch
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, ErrNonFiniteCost
			}
		}
	}

	return n, m, nil
}

// forward fills D and Q. Every interior cell takes the smoothed minimum of
// its three predecessors and records the operator's step distribution.
func forward(st *lattice.State, theta [][]float64, o Options) error {
	n, m, _ := st.Dims()

	// Boundary row/column. Open start leaves them at zero so the path may
	// begin anywhere on the border; strict start walls them off with +Inf,
	// which the operators treat as structurally excluded candidates.
	if o.Boundary == BoundaryStrict {
		inf := math.Inf(1)
		for i := 1; i <= n; i++ {
			st.SetD(i, 0, inf)
		}
		for j := 1; j <= m; j++ {
			st.SetD(0, j, inf)
		}
	}

	var v [steps]float64
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			v[stepUp] = st.D(i-1, j)
			v[stepLeft] = st.D(i, j-1)
			v[stepDiag] = st.D(i-1, j-1)

			soft, err := o.Operator.MinGrad(v[:], st.QRow(i, j))
			if err != nil {
				return err
			}
			st.SetD(i, j, theta[i-1][j-1]+soft)
		}
	}

	return nil
}

// backprop fills E in reverse order. The padding cell (n+1,m+1) is seeded
// as the terminal sentinel: unit sensitivity and an all-ones step row, so
// the interior sweep needs no terminal special case — every other padding
// cell keeps a zero Q row and contributes nothing.
func backprop(st *lattice.State) {
	n, m, _ := st.Dims()

	for s := range st.QRow(n+1, m+1) {
		st.SetQ(n+1, m+1, s, 1)
	}
	st.SetE(n+1, m+1, 1)

	for i := n; i >= 1; i-- {
		for j := m; j >= 1; j-- {
			e := st.Q(i+1, j, stepUp)*st.E(i+1, j) +
				st.Q(i, j+1, stepLeft)*st.E(i, j+1) +
				st.Q(i+1, j+1, stepDiag)*st.E(i+1, j+1)
			st.SetE(i, j, e)
		}
	}
}

// argmaxSlot returns the predecessor slot holding the unit mass of a
// one-hot step distribution (first maximal slot).
func argmaxSlot(st *lattice.State, i, j int) int {
	best, slot := math.Inf(-1), 0
	for s := 0; s < steps; s++ {
		if q := st.Q(i, j, s); q > best {
			best, slot = q, s
		}
	}

	return slot
}
