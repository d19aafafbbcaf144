// Package maxop provides the smooth max-operator family used by the
// alignment engines: differentiable surrogates for max/min over a small
// vector of candidates.
//
// 🚀 What is a smooth max operator?
//
//	A hard max is non-differentiable at ties. Each operator here returns
//	both a smoothed maximum and its gradient — a "soft argmax" probability
//	vector over the candidates. Minimum forms are derived generically by
//	negation, so every variant supports both directions.
//
// ✨ Variants:
//   - Hard()      — exact max; one-hot gradient (first argmax wins ties)
//   - Leaky(p)    — (1-p)·max + p·mean over finite entries, p ∈ (0,1)
//   - Entropy(γ)  — log-sum-exp with temperature γ > 0; softmax gradient
//   - Squared(γ)  — sparsemax-style: Euclidean simplex projection of x/γ
//
// Invariants:
//   - For any input with at least one finite entry, the gradient is
//     non-negative and sums to 1 (a point on the probability simplex).
//   - -Inf entries are structurally excluded: they carry zero gradient
//     mass and never produce NaN.
//   - Min(x) == -Max(-x) exactly; MinGrad reuses the max gradient unchanged.
//
// ⚙️ Usage:
//
//	op, err := maxop.Entropy(1.0)
//	if err != nil { ... }
//	q := make([]float64, 3)
//	v, err := op.MaxGrad([]float64{1, 2, 0.5}, q)
//	// v ≈ 2.39, q ≈ [0.24, 0.66, 0.10], sum(q) == 1
//
// All operators are immutable values: safe to copy and share across
// goroutines.
package maxop
