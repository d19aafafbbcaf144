// Package softalign turns classic dynamic-programming alignment into a
// differentiable building block: Dynamic Time Warping (DTW) and
// Needleman-Wunsch (NW) whose optimal score is a smooth function of the
// input cost matrix, with exact hand-written gradients.
//
// 🚀 What is softalign?
//
//	Ordinary DP alignment takes a hard min/max at every lattice cell, so the
//	final score is piecewise-linear and has no gradient at ties. softalign
//	replaces the hard operator with a family of smooth max operators whose
//	gradient is a probability distribution over the step choices, and
//	back-propagates sensitivities through the lattice by a dedicated
//	reverse recursion — no autodiff tracing, no tape.
//
// ✨ What you get:
//   - maxop/    — the operator family: Hard, Leaky(p), Entropy(γ), Squared(γ),
//     each with value, soft-argmax gradient, and derived min forms
//   - lattice/  — the padded DP state (values D, step distributions Q,
//     sensitivities E) shared by both engines
//   - dtw/      — smoothed time-series warping: distance + ∂distance/∂θ
//   - nw/       — smoothed sequence alignment: score + ∂score/∂θ and
//     per-position gap-penalty gradients
//   - autograd/ — score plus a vector-Jacobian-product closure for wiring
//     either engine into an external reverse-mode framework
//
// Why choose softalign?
//
//   - Pure Go — no cgo, no hidden deps
//   - Deterministic — fixed sweep orders, no global state
//   - Hard max still works — set maxop.Hard() and the engines reproduce the
//     classical algorithms exactly, one-hot step choices included
//
// Quick taste:
//
//	op, _ := maxop.Entropy(1.0)
//	res, err := dtw.Gradient(dtw.SquaredCosts(a, b), &dtw.Options{Operator: op})
//	// res.Distance — smoothed warping distance
//	// res.Grad     — ∂Distance/∂θ, same shape as the cost matrix
//
// See examples/ for end-to-end walkthroughs.
package softalign
