package floq

import "github.com/san-kum/floq/internal/linalg"

// ModeTensor holds the Fourier components of a periodic Hamiltonian.
// The length is 2k+1 for k positive modes; index 0 is the most negative
// mode, index k the static component.
type ModeTensor []linalg.Matrix

// Center returns the index of the static (m=0) component.
func (m ModeTensor) Center() int { return (len(m) - 1) / 2 }

// Dim returns the Hilbert-space dimension, 0 for an empty tensor.
func (m ModeTensor) Dim() int {
	if len(m) == 0 {
		return 0
	}
	return m[0].Dim()
}

// DerivTensor holds one ModeTensor per control parameter: DerivTensor[k] is
// the derivative of the Hamiltonian components with respect to control k.
type DerivTensor []ModeTensor

// SolveResult is the output of a fixed-system solve: the propagator over the
// requested duration, its derivative with respect to each control, and the
// mode-truncation count the solver settled on.
type SolveResult struct {
	U     linalg.Matrix
	DU    []linalg.Matrix
	Modes int
}

// Solver computes the time evolution of a fixed (fully parameterized)
// periodic system. Implementations may adapt the mode-truncation count and
// must report the adapted value in the result.
type Solver interface {
	Solve(hf ModeTensor, dhf DerivTensor, modes int, omega, duration float64) (*SolveResult, error)
}
