// Package autograd adapts the alignment engines to the calling convention
// reverse-mode differentiation frameworks expect: a forward value plus a
// vector-Jacobian-product (VJP) closure.
//
// The adapter is a pure calling-convention translation. It runs one
// forward+backward pass, caches the engine's gradients, and returns a
// closure that scales them by the incoming sensitivity on the scalar
// output. Non-differentiable arguments — the operator choice, the boundary
// policy — receive no sensitivity.
//
// ⚙️ Usage:
//
//	value, vjp, err := autograd.NW(theta, opts)
//	...
//	sens := vjp(upstreamSeed)
//	// sens.Theta — seed · ∂value/∂θ
//	// sens.GapS, sens.GapT — gap sensitivities (positional penalties only)
//
// Each returned closure owns its cached gradients; calling it repeatedly
// with different seeds is cheap (no re-alignment) and safe.
package autograd
