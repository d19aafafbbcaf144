// Package dtw computes smoothed, differentiable Dynamic Time Warping (DTW)
// distances over a caller-supplied pairwise cost matrix, together with the
// exact gradient of the distance with respect to every cost entry.
//
// 🚀 What is smoothed DTW?
//
//	Classic DTW fills a lattice with D[i,j] = θ[i,j] + min(up, left, diag)
//	and is non-differentiable wherever the min ties. Here the hard min is
//	replaced by a smooth operator from package maxop; the forward pass then
//	stores, per cell, the probability the operator assigned to each of the
//	three warping steps, and a dedicated backward sweep turns those step
//	distributions into ∂distance/∂θ — no autodiff tracing involved.
//
// ✨ Key features:
//   - any maxop operator: Hard (classic DTW), Leaky, Entropy, Squared
//   - exact hand-written backward pass over the stored step distributions
//   - strict or open path-start boundary (Options.Boundary)
//   - hard-operator warping-path recovery from the one-hot distributions
//   - SquaredCosts helper for the usual (aᵢ-bⱼ)² time-series cost matrix
//
// ⚙️ Usage:
//
//	op, _ := maxop.Entropy(1.0)
//	res, err := dtw.Gradient(dtw.SquaredCosts(a, b), &dtw.Options{Operator: op})
//	// res.Distance — smoothed warping distance
//	// res.Grad[i][j] — ∂Distance/∂θ[i][j]
//
// Performance:
//
//   - Time:   O(n·m) forward + O(n·m) backward
//   - Memory: O(n·m) (one lattice.State per call, no sharing)
package dtw
