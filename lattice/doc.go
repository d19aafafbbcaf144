// Package lattice provides the padded dynamic-programming state shared by
// the alignment engines: the value lattice D, the per-cell step-distribution
// tensor Q, and the backward sensitivity lattice E.
//
// Layout:
//
//	For an n×m problem every buffer spans (n+2)×(m+2) cells in flat
//	row-major order (offset = i·cols + j). Row/column 0 hold the boundary
//	conditions; row n+1 / column m+1 hold the terminal sentinels used to
//	seed the backward sweep. The interior cells (1..n, 1..m) map one-to-one
//	onto the input matrix. Q additionally carries k values per cell — the
//	probability the cell's smoothed operator assigned to each of its k
//	predecessor steps. Q is written once by the forward pass and read-only
//	during the backward pass.
//
// The container is pure storage: no algorithmic logic, no sharing. Each
// alignment owns its own State; forward and backward passes borrow it in
// sequence, never concurrently.
package lattice
