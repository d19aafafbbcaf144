package autograd

import (
	"github.com/katalvlaran/softalign/dtw"
	"github.com/katalvlaran/softalign/nw"
)

// Sensitivity carries the input gradients scaled by the seed. Theta always
// matches the input matrix shape; GapS/GapT are nil unless the alignment
// used positional gap penalties.
type Sensitivity struct {
	Theta [][]float64
	GapS  []float64
	GapT  []float64
}

// VJP maps the incoming sensitivity on the scalar output to sensitivities
// on the differentiable inputs.
type VJP func(seed float64) *Sensitivity

// DTW runs one smoothed-DTW forward+backward pass and returns the distance
// together with its VJP closure.
func DTW(theta [][]float64, opts *dtw.Options) (float64, VJP, error) {
	res, err := dtw.Gradient(theta, opts)
	if err != nil {
		return 0, nil, err
	}

	vjp := func(seed float64) *Sensitivity {
		return &Sensitivity{Theta: scaleMatrix(res.Grad, seed)}
	}

	return res.Distance, vjp, nil
}

// NW runs one smoothed-alignment forward+backward pass and returns the
// score together with its VJP closure.
func NW(theta [][]float64, opts *nw.Options) (float64, VJP, error) {
	res, err := nw.Gradient(theta, opts)
	if err != nil {
		return 0, nil, err
	}

	vjp := func(seed float64) *Sensitivity {
		return &Sensitivity{
			Theta: scaleMatrix(res.GradTheta, seed),
			GapS:  scaleVector(res.GradGapS, seed),
			GapT:  scaleVector(res.GradGapT, seed),
		}
	}

	return res.Score, vjp, nil
}

// scaleMatrix returns seed·g as a fresh matrix; the cached gradient stays
// untouched so the closure can be invoked again.
func scaleMatrix(g [][]float64, seed float64) [][]float64 {
	out := make([][]float64, len(g))
	for i, row := range g {
		dst := make([]float64, len(row))
		for j, v := range row {
			dst[j] = seed * v
		}
		out[i] = dst
	}

	return out
}

// scaleVector returns seed·g, preserving nil for absent gradients.
func scaleVector(g []float64, seed float64) []float64 {
	if g == nil {
		return nil
	}

	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = seed * v
	}

	return out
}
