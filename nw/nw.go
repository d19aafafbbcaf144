package nw

import (
	"math"

	"github.com/katalvlaran/softalign/lattice"
	"github.com/katalvlaran/softalign/maxop"
)

// Edit-step slots of a lattice cell, in the order the candidates are fed to
// the operator: deletion (i-1,j), match (i-1,j-1), insertion (i,j-1).
const (
	slotDelete = iota
	slotMatch
	slotInsert

	slots // slot count, the k of lattice.New
)

// Score computes the smoothed alignment score of the similarity matrix
// theta. A nil opts means DefaultOptions (hard operator, unit gap), under
// which the result is exactly the classical Needleman-Wunsch score.
func Score(theta [][]float64, opts *Options) (float64, error) {
	st, _, err := run(theta, opts, false)
	if err != nil {
		return 0, err
	}
	n, m, _ := st.Dims()

	return st.D(n, m), nil
}

// Gradient computes the smoothed score plus its gradients: always with
// respect to every θ entry, and additionally with respect to the gap
// vectors when the penalty is positional.
func Gradient(theta [][]float64, opts *Options) (*Result, error) {
	st, o, err := run(theta, opts, true)
	if err != nil {
		return nil, err
	}
	n, m, _ := st.Dims()

	res := &Result{Score: st.D(n, m), Lattice: st}

	// Only the match slot's probability mass reaches θ at each cell.
	res.GradTheta = make([][]float64, n)
	for i := 1; i <= n; i++ {
		row := make([]float64, m)
		for j := 1; j <= m; j++ {
			row[j-1] = st.E(i, j) * st.Q(i, j, slotMatch)
		}
		res.GradTheta[i-1] = row
	}

	if o.Gap.Positional() {
		res.GradGapS, res.GradGapT = gapGradients(st)
	}

	return res, nil
}

// Path recovers the optimal alignment as delete/match/insert steps. Only
// the hard operator yields one-hot step distributions, so smooth operators
// fail with ErrPathNeedsHardMax. The trace runs from (n,m) to (0,0);
// exhausted sequences force the remaining gap moves.
func Path(theta [][]float64, opts *Options) ([]Step, error) {
	o := resolve(opts)
	if o.Operator.Kind() != maxop.KindHard {
		return nil, ErrPathNeedsHardMax
	}

	st, _, err := run(theta, opts, false)
	if err != nil {
		return nil, err
	}
	n, m, _ := st.Dims()

	var steps []Step
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			steps = append(steps, Step{Move: MoveInsert, I: -1, J: j - 1})
			j--
		case j == 0:
			steps = append(steps, Step{Move: MoveDelete, I: i - 1, J: -1})
			i--
		default:
			switch argmaxSlot(st, i, j) {
			case slotDelete:
				steps = append(steps, Step{Move: MoveDelete, I: i - 1, J: -1})
				i--
			case slotInsert:
				steps = append(steps, Step{Move: MoveInsert, I: -1, J: j - 1})
				j--
			default:
				steps = append(steps, Step{Move: MoveMatch, I: i - 1, J: j - 1})
				i--
				j--
			}
		}
	}

	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}

	return steps, nil
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
func run(theta [][]float64, opts *Options, backward bool) (*lattice.State, Options, error) {
	o := resolve(opts)

	n, m, err := validate(theta, o)
	if err != nil {
		return nil, o, err
	}

	st, err := lattice.New(n, m, slots)
	if err != nil {
		return nil, o, err
	}

	if err = forward(st, theta, o); err != nil {
		return nil, o, err
	}
	if backward {
		backprop(st)
	}

	return st, o, nil
}

// validate checks θ is non-empty, rectangular and finite, and that the gap
// model is finite with vector lengths matching θ. Complexity: O(n·m).
func validate(theta [][]float64, o Options) (n, m int, err error) {
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
			if !finite(v) {
				return 0, 0, ErrNonFiniteInput
			}
		}
	}

	if o.Gap.Positional() {
		if len(o.Gap.gs) != n || len(o.Gap.gt) != m {
			return 0, 0, ErrDimensionMismatch
		}
		for _, g := range o.Gap.gs {
			if !finite(g) {
				return 0, 0, ErrNonFiniteInput
			}
		}
		for _, g := range o.Gap.gt {
			if !finite(g) {
				return 0, 0, ErrNonFiniteInput
			}
		}
	} else if !finite(o.Gap.scalar) {
		return 0, 0, ErrNonFiniteInput
	}

	return n, m, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// forward fills D and Q: cumulative gap costs on the border, then the
// smoothed 3-way maximum over deletion/match/insertion per interior cell.
func forward(st *lattice.State, theta [][]float64, o Options) error {
	n, m, _ := st.Dims()

	for i := 1; i <= n; i++ {
		st.SetD(i, 0, st.D(i-1, 0)-o.Gap.s(i))
	}
	for j := 1; j <= m; j++ {
		st.SetD(0, j, st.D(0, j-1)-o.Gap.t(j))
	}

	var v [slots]float64
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			v[slotDelete] = st.D(i-1, j) - o.Gap.s(i)
			v[slotMatch] = st.D(i-1, j-1) + theta[i-1][j-1]
			v[slotInsert] = st.D(i, j-1) - o.Gap.t(j)

			val, err := o.Operator.MaxGrad(v[:], st.QRow(i, j))
			if err != nil {
				return err
			}
			st.SetD(i, j, val)
		}
	}

	return nil
}

// backprop fills E over the whole grid, border included. The padding cell
// (n+1,m+1) is the terminal sentinel (unit sensitivity, all-ones step row);
// every other padding cell keeps a zero Q row and contributes nothing.
// Each interior term pairs a successor with the slot under which that
// successor consumed the current cell. Border cells additionally chain
// along the border itself, since D[i,0] feeds D[i+1,0] with unit weight;
// those border sensitivities only matter for the gap-vector gradients.
func backprop(st *lattice.State) {
	n, m, _ := st.Dims()

	for s := range st.QRow(n+1, m+1) {
		st.SetQ(n+1, m+1, s, 1)
	}
	st.SetE(n+1, m+1, 1)

	for i := n; i >= 1; i-- {
		for j := m; j >= 1; j-- {
			e := st.Q(i+1, j, slotDelete)*st.E(i+1, j) +
				st.Q(i+1, j+1, slotMatch)*st.E(i+1, j+1) +
				st.Q(i, j+1, slotInsert)*st.E(i, j+1)
			st.SetE(i, j, e)
		}
	}

	for i := n; i >= 1; i-- {
		e := st.Q(i+1, 1, slotMatch)*st.E(i+1, 1) +
			st.Q(i, 1, slotInsert)*st.E(i, 1) +
			st.E(i+1, 0)
		st.SetE(i, 0, e)
	}
	for j := m; j >= 1; j-- {
		e := st.Q(1, j, slotDelete)*st.E(1, j) +
			st.Q(1, j+1, slotMatch)*st.E(1, j+1) +
			st.E(0, j+1)
		st.SetE(0, j, e)
	}
}

// gapGradients accumulates ∂Score/∂gs and ∂Score/∂gt: each gap cost enters
// negated through every cell's gap slot and through the cumulative border
// chain, so the sensitivities sum with a leading minus.
func gapGradients(st *lattice.State) (dgs, dgt []float64) {
	n, m, _ := st.Dims()

	dgs = make([]float64, n)
	for i := 1; i <= n; i++ {
		sum := st.E(i, 0)
		for j := 1; j <= m; j++ {
			sum += st.Q(i, j, slotDelete) * st.E(i, j)
		}
		dgs[i-1] = -sum
	}

	dgt = make([]float64, m)
	for j := 1; j <= m; j++ {
		sum := st.E(0, j)
		for i := 1; i <= n; i++ {
			sum += st.Q(i, j, slotInsert) * st.E(i, j)
		}
		dgt[j-1] = -sum
	}

	return dgs, dgt
}

// argmaxSlot returns the slot holding the unit mass of a one-hot step row
// (first maximal slot).
func argmaxSlot(st *lattice.State, i, j int) int {
	best, slot := math.Inf(-1), 0
	for s := 0; s < slots; s++ {
		if q := st.Q(i, j, s); q > best {
			best, slot = q, s
		}
	}

	return slot
}
