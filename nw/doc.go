// Package nw computes smoothed, differentiable Needleman-Wunsch global
// sequence alignment over a caller-supplied similarity matrix, with exact
// gradients of the alignment score with respect to every similarity entry
// and, for per-position gap penalties, to the gap vectors as well.
//
// 🚀 What is smoothed NW?
//
//	Classic global alignment fills D[i,j] = max(deletion, match, insertion)
//	and is non-differentiable at ties. Here the hard max is a smooth
//	operator from package maxop; the forward pass stores the probability
//	each cell assigned to its three edit steps, and a hand-written backward
//	sweep propagates sensitivities through those step distributions.
//	Only the match slot's mass reaches the similarity matrix, so
//	∂score/∂θ[i,j] = E[i,j]·Q[i,j,match].
//
// ✨ Key features:
//   - any maxop operator: Hard (classic NW), Leaky, Entropy, Squared
//   - scalar or per-position gap penalties (ScalarGap / PositionalGap)
//   - gap-vector gradients, boundary chain included
//   - hard-operator alignment recovery (delete/match/insert steps) from
//     the one-hot step distributions
//
// ⚙️ Usage:
//
//	op, _ := maxop.Entropy(1.0)
//	opts := &nw.Options{Operator: op, Gap: nw.ScalarGap(1)}
//	res, err := nw.Gradient(theta, opts)
//	// res.Score, res.GradTheta — score and ∂score/∂θ
//
// Performance:
//
//   - Time:   O(n·m) forward + O(n·m) backward
//   - Memory: O(n·m) (one lattice.State per call, no sharing)
package nw
