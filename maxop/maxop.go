// Package maxop - evaluation kernels for the operator family.
//
// Every kernel treats the input through a sign factor so that the minimum
// forms come for free: Min(x) = -Max(-x), and the gradient of the min is
// the gradient of the max at -x, component for component (verified by a
// directional-derivative test). Entries equal to -Inf after signing are
// structurally excluded candidates: they receive zero gradient mass and
// never contaminate the value with NaN.
//
// Complexity: Hard/Leaky/Entropy are O(L) time, O(1) extra space.
// Squared is O(L log L) time, O(L) extra space (sorted projection scratch).
package maxop

import (
	"math"
	"sort"
)

// Max returns the smoothed maximum of x.
// Returns ErrEmptyInput when len(x) == 0.
func (o Operator) Max(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}

	return o.eval(x, +1, nil), nil
}

// MaxGrad returns the smoothed maximum of x and writes its gradient
// (the soft argmax, a point on the probability simplex) into q.
// q must not alias x and must satisfy len(q) == len(x).
// Returns ErrEmptyInput or ErrDimensionMismatch on bad shapes.
func (o Operator) MaxGrad(x, q []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	if len(q) != len(x) {
		return 0, ErrDimensionMismatch
	}

	return o.eval(x, +1, q), nil
}

// Min returns the smoothed minimum of x, derived as -Max(-x).
func (o Operator) Min(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}

	return -o.eval(x, -1, nil), nil
}

// MinGrad returns the smoothed minimum of x and writes its gradient into q.
// The gradient equals the max gradient evaluated at -x, unnegated: the two
// sign flips (input negation, value negation) cancel, so q is again a
// probability distribution over the candidates.
func (o Operator) MinGrad(x, q []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	if len(q) != len(x) {
		return 0, ErrDimensionMismatch
	}

	return -o.eval(x, -1, q), nil
}

// eval computes the smoothed maximum of sign·x and, when q != nil, fills q
// with the gradient with respect to sign·x. Exhaustive over the closed Kind
// set; inputs are assumed shape-validated by the public wrappers.
func (o Operator) eval(x []float64, sign float64, q []float64) float64 {
	switch o.kind {
	case KindLeaky:
		return leakyEval(x, sign, o.p, q)
	case KindEntropy:
		return entropyEval(x, sign, o.gamma, q)
	case KindSquared:
		return squaredEval(x, sign, o.gamma, q)
	default:
		return hardEval(x, sign, q)
	}
}

// hardEval: exact max, one-hot gradient at the first argmax.
func hardEval(x []float64, sign float64, q []float64) float64 {
	best := math.Inf(-1)
	arg := -1
	for i, v := range x {
		if sv := sign * v; sv > best {
			best, arg = sv, i
		}
	}

	if q != nil {
		for i := range q {
			q[i] = 0
		}
		if arg >= 0 {
			q[arg] = 1
		}
	}

	return best
}

// leakyEval: (1-p)·max + p·mean over finite entries. Gradient spreads p
// uniformly over the finite entries and adds (1-p) at the argmax.
func leakyEval(x []float64, sign float64, p float64, q []float64) float64 {
	var (
		best   = math.Inf(-1)
		arg    = -1
		sum    float64
		finite int
	)
	for i, v := range x {
		sv := sign * v
		if math.IsInf(sv, -1) {
			continue
		}
		if sv > best {
			best, arg = sv, i
		}
		sum += sv
		finite++
	}

	if finite == 0 {
		if q != nil {
			zeroFill(q)
		}

		return math.Inf(-1)
	}

	if q != nil {
		share := p / float64(finite)
		for i, v := range x {
			if math.IsInf(sign*v, -1) {
				q[i] = 0
			} else {
				q[i] = share
			}
		}
		q[arg] += 1 - p
	}

	return (1-p)*best + p*sum/float64(finite)
}

// entropyEval: max-shifted log-sum-exp. Shifting by the running maximum is
// mathematically a no-op for both the value and the softmax gradient but
// keeps every exponent ≤ 0, so no overflow for any finite input.
func entropyEval(x []float64, sign, gamma float64, q []float64) float64 {
	shift := math.Inf(-1)
	for _, v := range x {
		if sv := sign * v; sv > shift {
			shift = sv
		}
	}
	if math.IsInf(shift, -1) {
		if q != nil {
			zeroFill(q)
		}

		return math.Inf(-1)
	}

	var sum float64
	for _, v := range x {
		if sv := sign * v; !math.IsInf(sv, -1) {
			sum += math.Exp((sv - shift) / gamma)
		}
	}

	if q != nil {
		for i, v := range x {
			if sv := sign * v; math.IsInf(sv, -1) {
				q[i] = 0
			} else {
				q[i] = math.Exp((sv-shift)/gamma) / sum
			}
		}
	}

	return shift + gamma*math.Log(sum)
}

// squaredEval: value ⟨q,x⟩ - (γ/2)‖q‖² with q = simplexProject(x/γ).
// The projection is sparse, so only entries with positive mass touch the
// value accumulation (an excluded -Inf entry times zero mass stays out).
func squaredEval(x []float64, sign, gamma float64, q []float64) float64 {
	z := make([]float64, 0, len(x))
	for _, v := range x {
		if sv := sign * v; !math.IsInf(sv, -1) {
			z = append(z, sv/gamma)
		}
	}
	if len(z) == 0 {
		if q != nil {
			zeroFill(q)
		}

		return math.Inf(-1)
	}

	tau := simplexThreshold(z)

	var value float64
	for i, v := range x {
		sv := sign * v
		var mass float64
		if !math.IsInf(sv, -1) {
			if mass = sv/gamma - tau; mass < 0 {
				mass = 0
			}
		}
		if mass > 0 {
			value += mass*sv - 0.5*gamma*mass*mass
		}
		if q != nil {
			q[i] = mass
		}
	}

	return value
}

// simplexThreshold returns τ such that clip(zᵢ-τ, 0) is the Euclidean
// projection of z onto the probability simplex. Standard sort-and-threshold
// scheme: sort descending, keep the largest prefix whose running threshold
// stays below its smallest member. Mutates z (it is a private scratch).
func simplexThreshold(z []float64) float64 {
	sort.Sort(sort.Reverse(sort.Float64Slice(z)))

	var (
		cum float64
		tau float64
	)
	for j, v := range z {
		cum += v
		if t := (cum - 1) / float64(j+1); v > t {
			tau = t
		}
	}

	return tau
}

// zeroFill resets a gradient buffer.
func zeroFill(q []float64) {
	for i := range q {
		q[i] = 0
	}
}
