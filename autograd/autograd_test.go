package autograd_test

import (
	"testing"

	"github.com/katalvlaran/softalign/autograd"
	"github.com/katalvlaran/softalign/dtw"
	"github.com/katalvlaran/softalign/maxop"
	"github.com/katalvlaran/softalign/nw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDTW_MatchesEngine verifies the adapter forwards the engine's value
// and that a unit seed reproduces the engine's gradient exactly.
func TestDTW_MatchesEngine(t *testing.T) {
	op, err := maxop.Entropy(1.0)
	require.NoError(t, err)
	theta := dtw.SquaredCosts([]float64{1, 2, 3}, []float64{1, 3})
	opts := &dtw.Options{Operator: op}

	want, err := dtw.Gradient(theta, opts)
	require.NoError(t, err)

	value, vjp, err := autograd.DTW(theta, opts)
	require.NoError(t, err)
	assert.Equal(t, want.Distance, value)

	sens := vjp(1)
	assert.Equal(t, want.Grad, sens.Theta)
	assert.Nil(t, sens.GapS)
	assert.Nil(t, sens.GapT)
}

// TestDTW_SeedScalesLinearly verifies the closure scales by the seed and
// stays reusable across calls.
func TestDTW_SeedScalesLinearly(t *testing.T) {
	theta := dtw.SquaredCosts([]float64{0, 1, 2}, []float64{0, 2})

	_, vjp, err := autograd.DTW(theta, nil)
	require.NoError(t, err)

	unit := vjp(1)
	twice := vjp(-2)
	for i := range unit.Theta {
		for j := range unit.Theta[i] {
			assert.Equal(t, -2*unit.Theta[i][j], twice.Theta[i][j],
				"seed must scale (%d,%d) linearly", i, j)
		}
	}

	again := vjp(1)
	assert.Equal(t, unit.Theta, again.Theta, "closure must be reusable")
}

// TestNW_PositionalGapSensitivities verifies the adapter carries gap-vector
// gradients through, scaled by the seed.
func TestNW_PositionalGapSensitivities(t *testing.T) {
	op, err := maxop.Entropy(1.0)
	require.NoError(t, err)
	theta := [][]float64{{2, -1}, {-1, 2}, {1, 0}}
	opts := &nw.Options{
		Operator: op,
		Gap:      nw.PositionalGap([]float64{1, 0.5, 1}, []float64{0.5, 1}),
	}

	want, err := nw.Gradient(theta, opts)
	require.NoError(t, err)

	score, vjp, err := autograd.NW(theta, opts)
	require.NoError(t, err)
	assert.Equal(t, want.Score, score)

	sens := vjp(0.5)
	require.NotNil(t, sens.GapS)
	require.NotNil(t, sens.GapT)
	for i := range want.GradGapS {
		assert.Equal(t, 0.5*want.GradGapS[i], sens.GapS[i])
	}
	for j := range want.GradGapT {
		assert.Equal(t, 0.5*want.GradGapT[j], sens.GapT[j])
	}
}

// TestNW_ErrorPropagates verifies engine validation errors surface through
// the adapter unchanged.
func TestNW_ErrorPropagates(t *testing.T) {
	_, _, err := autograd.NW(nil, nil)
	assert.ErrorIs(t, err, nw.ErrEmptyInput)

	_, _, err = autograd.DTW([][]float64{{1, 2}, {3}}, nil)
	assert.ErrorIs(t, err, dtw.ErrDimensionMismatch)
}
