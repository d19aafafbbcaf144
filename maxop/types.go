// Package maxop - operator kinds, the Operator value type, and validated
// constructors. Errors live in errors.go; evaluation kernels in maxop.go.
package maxop

import "fmt"

// Kind identifies one member of the closed operator family.
// The set is fixed; all dispatch is an exhaustive switch.
type Kind int

const (
	// KindHard is the exact max with a one-hot gradient.
	KindHard Kind = iota

	// KindLeaky blends the hard max with the mean of finite entries.
	KindLeaky

	// KindEntropy is log-sum-exp smoothing (softmax gradient).
	KindEntropy

	// KindSquared is quadratic smoothing (sparse simplex-projection gradient).
	KindSquared
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHard:
		return "Hard"
	case KindLeaky:
		return "Leaky"
	case KindEntropy:
		return "Entropy"
	case KindSquared:
		return "Squared"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operator is an immutable smoothing strategy plus its parameters.
// The zero value is the hard max. Construct smooth variants via
// Leaky, Entropy or Squared; those validate their parameter and are the
// only way to obtain a non-hard Operator.
type Operator struct {
	kind  Kind
	p     float64 // Leaky blend weight, p ∈ (0,1)
	gamma float64 // Entropy/Squared temperature, γ > 0
}

// Kind reports which family member this operator is.
func (o Operator) Kind() Kind { return o.kind }

// String renders the operator with its parameter, e.g. "Entropy(γ=1)".
func (o Operator) String() string {
	switch o.kind {
	case KindLeaky:
		return fmt.Sprintf("Leaky(p=%g)", o.p)
	case KindEntropy:
		return fmt.Sprintf("Entropy(γ=%g)", o.gamma)
	case KindSquared:
		return fmt.Sprintf("Squared(γ=%g)", o.gamma)
	default:
		return "Hard"
	}
}

// Hard returns the exact max operator (one-hot gradient, first argmax on ties).
func Hard() Operator { return Operator{kind: KindHard} }

// Leaky returns the leaky max operator with blend weight p.
// Value: (1-p)·max(x) + p·mean(finite x). The bounds are exclusive:
// p=0 is Hard and p=1 is a plain mean, both of which defeat the blend.
// Returns ErrInvalidParameter when p is outside (0,1).
func Leaky(p float64) (Operator, error) {
	if !(p > 0 && p < 1) {
		return Operator{}, fmt.Errorf("Leaky(p=%g): %w", p, ErrInvalidParameter)
	}

	return Operator{kind: KindLeaky, p: p}, nil
}

// Entropy returns the log-sum-exp operator with temperature gamma.
// Value: γ·log Σ exp(xᵢ/γ); gradient: softmax(x/γ).
// Returns ErrInvalidParameter when gamma ≤ 0 (or NaN).
func Entropy(gamma float64) (Operator, error) {
	if !(gamma > 0) {
		return Operator{}, fmt.Errorf("Entropy(γ=%g): %w", gamma, ErrInvalidParameter)
	}

	return Operator{kind: KindEntropy, gamma: gamma}, nil
}

// Squared returns the quadratically-smoothed operator with temperature gamma.
// Value: ⟨q,x⟩ - (γ/2)‖q‖² where q is the Euclidean projection of x/γ onto
// the probability simplex; gradient: q itself (sparse for well-separated x).
// Returns ErrInvalidParameter when gamma ≤ 0 (or NaN).
func Squared(gamma float64) (Operator, error) {
	if !(gamma > 0) {
		return Operator{}, fmt.Errorf("Squared(γ=%g): %w", gamma, ErrInvalidParameter)
	}

	return Operator{kind: KindSquared, gamma: gamma}, nil
}
