package lattice

import "errors"

// ErrInvalidDimensions is returned by New when n, m or k is < 1.
var ErrInvalidDimensions = errors.New("lattice: dimensions must be > 0")

// State owns the three DP buffers for one alignment of an n×m problem with
// k predecessor steps per cell. Zero-initialized on allocation.
//
// Accessors do not re-validate coordinates: the engines are the only
// writers and hand the container validated indices in 0..n+1 / 0..m+1.
// An out-of-range index is a programmer error and panics via the slice
// bounds check.
type State struct {
	n, m, k int
	cols    int       // m + 2, row stride of d and e
	d       []float64 // (n+2)×(m+2) forward values
	e       []float64 // (n+2)×(m+2) backward sensitivities
	q       []float64 // (n+2)×(m+2)×k step distributions
}

// New allocates a zero-filled State for an n×m problem with k-way cells.
// Complexity: O(n·m·k) time and memory.
func New(n, m, k int) (*State, error) {
	if n < 1 || m < 1 || k < 1 {
		return nil, ErrInvalidDimensions
	}

	cells := (n + 2) * (m + 2)

	return &State{
		n:    n,
		m:    m,
		k:    k,
		cols: m + 2,
		d:    make([]float64, cells),
		e:    make([]float64, cells),
		q:    make([]float64, cells*k),
	}, nil
}

// Dims returns the problem dimensions (n, m) and the per-cell step count k.
func (s *State) Dims() (n, m, k int) { return s.n, s.m, s.k }

// idx computes the flat row-major offset for cell (i, j).
func (s *State) idx(i, j int) int { return i*s.cols + j }

// D returns the forward value at cell (i, j).
func (s *State) D(i, j int) float64 { return s.d[s.idx(i, j)] }

// SetD stores the forward value at cell (i, j).
func (s *State) SetD(i, j int, v float64) { s.d[s.idx(i, j)] = v }

// E returns the backward sensitivity at cell (i, j).
func (s *State) E(i, j int) float64 { return s.e[s.idx(i, j)] }

// SetE stores the backward sensitivity at cell (i, j).
func (s *State) SetE(i, j int, v float64) { s.e[s.idx(i, j)] = v }

// Q returns the probability mass cell (i, j) assigned to predecessor slot.
func (s *State) Q(i, j, slot int) float64 { return s.q[s.idx(i, j)*s.k+slot] }

// SetQ stores the probability mass for one predecessor slot of cell (i, j).
func (s *State) SetQ(i, j, slot int, v float64) { s.q[s.idx(i, j)*s.k+slot] = v }

// QRow returns the k-length mutable view of cell (i, j)'s step distribution.
// The forward pass writes operator gradients straight into this view; the
// backward pass treats it as read-only.
func (s *State) QRow(i, j int) []float64 {
	at := s.idx(i, j) * s.k

	return s.q[at : at+s.k : at+s.k]
}

// Reset zero-fills all three buffers so the State can be reused for another
// operator variant within the same alignment dimensions.
func (s *State) Reset() {
	for i := range s.d {
		s.d[i] = 0
		s.e[i] = 0
	}
	for i := range s.q {
		s.q[i] = 0
	}
}
