package dtw_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/softalign/dtw"
	"github.com/katalvlaran/softalign/maxop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fdRelTol is the relative tolerance for finite-difference gradient checks.
const fdRelTol = 1e-4

// classicDTW is an independent reference: the textbook full-matrix
// recursion with a hard min and strict boundary.
func classicDTW(theta [][]float64) float64 {
	n, m := len(theta), len(theta[0])
	inf := math.Inf(1)

	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
		for j := range dp[i] {
			dp[i][j] = inf
		}
	}
	dp[0][0] = 0

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := dp[i-1][j]
			if dp[i][j-1] < best {
				best = dp[i][j-1]
			}
			if dp[i-1][j-1] < best {
				best = dp[i-1][j-1]
			}
			dp[i][j] = theta[i-1][j-1] + best
		}
	}

	return dp[n][m]
}

// TestDistance_EmptyInput verifies nil and zero-width matrices error.
func TestDistance_EmptyInput(t *testing.T) {
	_, err := dtw.Distance(nil, nil)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput, "nil matrix must error")

	_, err = dtw.Distance([][]float64{{}}, nil)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput, "zero-width matrix must error")

	assert.Nil(t, dtw.SquaredCosts(nil, []float64{1}), "empty series yield nil costs")
}

// TestDistance_RaggedMatrix verifies rows of unequal length error.
func TestDistance_RaggedMatrix(t *testing.T) {
	theta := [][]float64{{1, 2}, {3}}
	_, err := dtw.Distance(theta, nil)
	assert.ErrorIs(t, err, dtw.ErrDimensionMismatch)
}

// TestDistance_NonFiniteCost verifies NaN/Inf cost entries error.
func TestDistance_NonFiniteCost(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		theta := [][]float64{{1, bad}, {2, 3}}
		_, err := dtw.Distance(theta, nil)
		assert.ErrorIs(t, err, dtw.ErrNonFiniteCost, "entry %v must be rejected", bad)
	}
}

// TestDistance_BadBoundary verifies unknown boundary values error.
func TestDistance_BadBoundary(t *testing.T) {
	opts := dtw.DefaultOptions()
	opts.Boundary = dtw.Boundary(7)

	_, err := dtw.Distance([][]float64{{1}}, &opts)
	assert.ErrorIs(t, err, dtw.ErrBadBoundary)
}

// TestDistance_HardMatchesClassic verifies the hard operator reproduces the
// textbook recursion exactly, including on identical series (distance 0).
func TestDistance_HardMatchesClassic(t *testing.T) {
	theta := [][]float64{
		{0.7, 2.2, 1.1, 0.4, 3.3},
		{1.9, 0.2, 0.8, 2.6, 1.5},
		{3.1, 1.4, 0.1, 0.9, 0.6},
		{0.5, 2.8, 1.7, 0.3, 1.2},
	}

	got, err := dtw.Distance(theta, nil)
	require.NoError(t, err)
	assert.Equal(t, classicDTW(theta), got, "hard operator must match the classic DP")

	a := []float64{0, 1, 2, 1}
	same, err := dtw.Distance(dtw.SquaredCosts(a, a), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, same, "identical series must have zero distance")
}

// TestDistance_OpenBoundaryNeverWorse verifies the open-start policy can
// only lower the hard distance (it relaxes the start constraint).
func TestDistance_OpenBoundaryNeverWorse(t *testing.T) {
	theta := dtw.SquaredCosts([]float64{5, 1, 2, 3}, []float64{1, 2, 3})

	strict, err := dtw.Distance(theta, nil)
	require.NoError(t, err)

	opts := dtw.DefaultOptions()
	opts.Boundary = dtw.BoundaryOpen
	open, err := dtw.Distance(theta, &opts)
	require.NoError(t, err)

	assert.LessOrEqual(t, open, strict)
	assert.Less(t, open, strict, "skipping the bad leading sample must pay off here")
}

// TestGradient_SquaredFixture is the reference fixture: two pulse-shaped
// series, squared costs, Squared(γ=5). The forward value and the whole
// gradient matrix must be finite, with the gradient shaped like θ.
func TestGradient_SquaredFixture(t *testing.T) {
	x := []float64{3, 1, 0, 0, 1, 3, 5, 6, 6, 5, 3, 1, 0, 0, 1, 3}
	y := []float64{0, 1, 3, 5, 6, 6, 5, 3}
	theta := dtw.SquaredCosts(x, y)

	op, err := maxop.Squared(5.0)
	require.NoError(t, err)

	res, err := dtw.Gradient(theta, &dtw.Options{Operator: op})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(res.Distance) || math.IsInf(res.Distance, 0),
		"distance must be finite")
	require.Len(t, res.Grad, len(x))
	for i, row := range res.Grad {
		require.Len(t, row, len(y), "gradient row %d shape", i)
		for j, g := range row {
			assert.False(t, math.IsNaN(g) || math.IsInf(g, 0),
				"grad[%d][%d] must be finite", i, j)
		}
	}
}

// TestGradient_FiniteDifference perturbs every cost entry and compares the
// central difference of the distance against the analytic gradient, for
// each smooth operator.
func TestGradient_FiniteDifference(t *testing.T) {
	theta := [][]float64{
		{0.9, 2.3, 1.7},
		{1.2, 0.4, 2.9},
		{2.1, 1.6, 0.8},
		{0.3, 2.7, 1.1},
	}

	leaky, err := maxop.Leaky(0.3)
	require.NoError(t, err)
	entropy, err := maxop.Entropy(1.0)
	require.NoError(t, err)
	squared, err := maxop.Squared(1.5)
	require.NoError(t, err)

	for name, op := range map[string]maxop.Operator{
		"Leaky": leaky, "Entropy": entropy, "Squared": squared,
	} {
		opts := &dtw.Options{Operator: op}
		res, err := dtw.Gradient(theta, opts)
		require.NoError(t, err, name)

		const h = 1e-5
		for i := range theta {
			for j := range theta[i] {
				orig := theta[i][j]

				theta[i][j] = orig + h
				plus, err := dtw.Distance(theta, opts)
				require.NoError(t, err, name)

				theta[i][j] = orig - h
				minus, err := dtw.Distance(theta, opts)
				require.NoError(t, err, name)

				theta[i][j] = orig
				numeric := (plus - minus) / (2 * h)

				assertGradClose(t, numeric, res.Grad[i][j], name, i, j)
			}
		}
	}
}

// assertGradClose applies the relative tolerance, falling back to an
// absolute check when the analytic value is (numerically) zero.
func assertGradClose(t *testing.T, numeric, analytic float64, name string, i, j int) {
	t.Helper()

	if math.Abs(analytic) < 1e-4 {
		assert.InDelta(t, analytic, numeric, 1e-6,
			"%s grad[%d][%d] near zero", name, i, j)

		return
	}
	assert.InEpsilon(t, analytic, numeric, fdRelTol, "%s grad[%d][%d]", name, i, j)
}

// TestGradient_HardIsIndicatorOfPath verifies that under the hard operator
// the gradient is exactly the 0/1 indicator of the unique optimal path.
func TestGradient_HardIsIndicatorOfPath(t *testing.T) {
	theta := dtw.SquaredCosts([]float64{1, 2, 3}, []float64{1, 2, 2, 3})

	res, err := dtw.Gradient(theta, nil)
	require.NoError(t, err)
	path, err := dtw.Path(theta, nil)
	require.NoError(t, err)

	onPath := map[dtw.Coord]bool{}
	for _, c := range path {
		onPath[c] = true
	}

	for i, row := range res.Grad {
		for j, g := range row {
			if onPath[dtw.Coord{I: i, J: j}] {
				assert.Equal(t, 1.0, g, "cell (%d,%d) on the path", i, j)
			} else {
				assert.Zero(t, g, "cell (%d,%d) off the path", i, j)
			}
		}
	}
}

// TestPath_KnownAlignment verifies the recovered warping path on the
// perfect-subsequence case: b repeats a middle sample of a.
func TestPath_KnownAlignment(t *testing.T) {
	theta := dtw.SquaredCosts([]float64{1, 2, 3}, []float64{1, 2, 2, 3})

	dist, err := dtw.Distance(theta, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)

	path, err := dtw.Path(theta, nil)
	require.NoError(t, err)
	assert.Equal(t, []dtw.Coord{
		{I: 0, J: 0}, {I: 1, J: 1}, {I: 1, J: 2}, {I: 2, J: 3},
	}, path)
}

// TestPath_RequiresHardOperator verifies smooth operators are rejected.
func TestPath_RequiresHardOperator(t *testing.T) {
	op, err := maxop.Entropy(1.0)
	require.NoError(t, err)

	_, err = dtw.Path([][]float64{{1}}, &dtw.Options{Operator: op})
	assert.ErrorIs(t, err, dtw.ErrPathNeedsHardMax)
}

// TestGradient_Idempotence verifies two runs on identical inputs produce
// bit-identical lattices (D, E, Q) — no hidden state, no accumulation.
func TestGradient_Idempotence(t *testing.T) {
	theta := dtw.SquaredCosts(
		[]float64{0.5, 1.5, 2.25, 1.0},
		[]float64{0.25, 1.75, 2.0},
	)
	op, err := maxop.Entropy(0.8)
	require.NoError(t, err)
	opts := &dtw.Options{Operator: op}

	first, err := dtw.Gradient(theta, opts)
	require.NoError(t, err)
	second, err := dtw.Gradient(theta, opts)
	require.NoError(t, err)

	assert.Equal(t, math.Float64bits(first.Distance), math.Float64bits(second.Distance))

	n, m, k := first.Lattice.Dims()
	for i := 0; i <= n+1; i++ {
		for j := 0; j <= m+1; j++ {
			assert.Equal(t,
				math.Float64bits(first.Lattice.D(i, j)),
				math.Float64bits(second.Lattice.D(i, j)), "D(%d,%d)", i, j)
			assert.Equal(t,
				math.Float64bits(first.Lattice.E(i, j)),
				math.Float64bits(second.Lattice.E(i, j)), "E(%d,%d)", i, j)
			for s := 0; s < k; s++ {
				assert.Equal(t,
					math.Float64bits(first.Lattice.Q(i, j, s)),
					math.Float64bits(second.Lattice.Q(i, j, s)), "Q(%d,%d,%d)", i, j, s)
			}
		}
	}
}

// TestGradient_OpenBoundaryFinite verifies the backward pass stays finite
// under the open-start policy as well.
func TestGradient_OpenBoundaryFinite(t *testing.T) {
	op, err := maxop.Entropy(1.0)
	require.NoError(t, err)
	opts := &dtw.Options{Operator: op, Boundary: dtw.BoundaryOpen}

	res, err := dtw.Gradient(dtw.SquaredCosts([]float64{2, 0, 1}, []float64{0, 1}), opts)
	require.NoError(t, err)

	for i, row := range res.Grad {
		for j, g := range row {
			assert.False(t, math.IsNaN(g) || math.IsInf(g, 0), "grad[%d][%d]", i, j)
		}
	}
}
