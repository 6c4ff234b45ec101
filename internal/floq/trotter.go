package floq

import (
	"fmt"
	"math"

	"github.com/san-kum/floq/internal/linalg"
)

// DefaultTrotterSteps is the default time discretization of a solve.
const DefaultTrotterSteps = 2000

// TrotterSolver computes the propagator as an ordered product of short-time
// exponentials,
//
//	U = prod_j exp(-i H(t_j) dt),
//
// with H(t) reassembled from its Fourier components at the midpoint of each
// step. The derivative tensor follows from the product rule,
//
//	dU_k = sum_j U(T, t_j) (-i dt dH_k(t_j)) U(t_j, 0).
//
// A time-domain product has no mode truncation to adapt, so the requested
// count is reported back unchanged.
type TrotterSolver struct {
	steps int
}

func NewTrotterSolver(steps int) *TrotterSolver {
	if steps <= 0 {
		steps = DefaultTrotterSteps
	}
	return &TrotterSolver{steps: steps}
}

func (s *TrotterSolver) Solve(hf ModeTensor, dhf DerivTensor, modes int, omega, duration float64) (*SolveResult, error) {
	if err := validateModes(hf, dhf); err != nil {
		return nil, &SolveError{Duration: duration, Modes: modes, Wrapped: err}
	}

	d := hf.Dim()
	n := s.steps
	dt := duration / float64(n)

	// Prefix propagators U(t_j, 0); prefixes[j] covers the first j steps.
	prefixes := make([]linalg.Matrix, n+1)
	prefixes[0] = linalg.Identity(d)
	for j := 0; j < n; j++ {
		t := (float64(j) + 0.5) * dt
		h := assemble(hf, omega, t)
		step := Expm(h.Scale(complex(0, -dt)))
		prefixes[j+1] = step.Mul(prefixes[j])
	}
	u := prefixes[n]

	// Every factor is the exponential of an anti-Hermitian matrix, so the
	// product can only lose unitarity through accumulated rounding.
	if !linalg.IsUnitary(u, 1e-8) {
		return nil, &SolveError{Duration: duration, Modes: modes, Wrapped: ErrNotUnitary}
	}

	du := make([]linalg.Matrix, len(dhf))
	for k := range dhf {
		acc := linalg.Zeros(d)
		for j := 0; j < n; j++ {
			t := (float64(j) + 0.5) * dt
			dh := assemble(dhf[k], omega, t).Scale(complex(0, -dt))
			// U(T, t_{j+1}) = U Adjoint(prefixes[j+1]); valid because every
			// step factor is unitary.
			suffix := u.Mul(linalg.Adjoint(prefixes[j+1]))
			acc = acc.Add(suffix.Mul(dh).Mul(prefixes[j+1]))
		}
		du[k] = acc
	}

	return &SolveResult{U: u, DU: du, Modes: modes}, nil
}

// assemble evaluates sum_m hf[m] e^{i m omega t} at time t.
func assemble(hf ModeTensor, omega, t float64) linalg.Matrix {
	d := hf.Dim()
	c := hf.Center()
	h := linalg.Zeros(d)
	for m, comp := range hf {
		phase := float64(m-c) * omega * t
		z := complex(math.Cos(phase), math.Sin(phase))
		h = h.Add(comp.Scale(z))
	}
	return h
}

func validateModes(hf ModeTensor, dhf DerivTensor) error {
	if len(hf) == 0 || len(hf)%2 == 0 {
		return fmt.Errorf("%w: %d components", ErrModeShape, len(hf))
	}
	d := hf.Dim()
	for _, comp := range hf {
		if comp.Dim() != d {
			return fmt.Errorf("%w: ragged component dimensions", ErrModeShape)
		}
	}
	for k, tensor := range dhf {
		if len(tensor) != len(hf) || tensor.Dim() != d {
			return fmt.Errorf("%w: derivative tensor %d does not match", ErrModeShape, k)
		}
	}
	return nil
}
