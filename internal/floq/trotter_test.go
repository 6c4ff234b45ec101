package floq

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/san-kum/floq/internal/linalg"
)

// staticModes builds a tensor with only the m=0 component set.
func staticModes(h linalg.Matrix) ModeTensor {
	d := h.Dim()
	return ModeTensor{linalg.Zeros(d), h, linalg.Zeros(d)}
}

func TestTrotterSolver_StaticHamiltonian(t *testing.T) {
	// H = (w0/2) sigma_z, constant: U(T) = diag(e^{-i w0 T/2}, e^{i w0 T/2}).
	w0, T := 3.0, 1.3
	h := linalg.Matrix{
		{complex(w0 / 2, 0), 0},
		{0, complex(-w0 / 2, 0)},
	}

	solver := NewTrotterSolver(500)
	res, err := solver.Solve(staticModes(h), nil, 3, 2.0, T)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	want := linalg.Matrix{
		{cmplx.Exp(complex(0, -w0 * T / 2)), 0},
		{0, cmplx.Exp(complex(0, w0 * T / 2))},
	}
	if !res.U.Equal(want, 1e-8) {
		t.Errorf("U = %v, want %v", res.U, want)
	}
}

func TestTrotterSolver_PropagatorUnitary(t *testing.T) {
	// Time-dependent drive: static splitting plus one oscillating component.
	h0 := linalg.Matrix{
		{complex(2.5, 0), 0},
		{0, complex(-2.5, 0)},
	}
	drive := linalg.Matrix{
		{0, complex(0.2, 0.3)},
		{complex(0.1, -0.2), 0},
	}
	hf := ModeTensor{linalg.Adjoint(drive), h0, drive}

	solver := NewTrotterSolver(1000)
	res, err := solver.Solve(hf, nil, 3, 5.0, 2.0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if !linalg.IsUnitary(res.U, 1e-8) {
		t.Error("propagator is not unitary")
	}
}

func TestTrotterSolver_EchoesModeCount(t *testing.T) {
	h := linalg.Identity(2)
	solver := NewTrotterSolver(100)

	res, err := solver.Solve(staticModes(h), nil, 11, 1.0, 0.5)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Modes != 11 {
		t.Errorf("Modes = %d, want 11", res.Modes)
	}
}

func TestTrotterSolver_RejectsMalformedTensors(t *testing.T) {
	solver := NewTrotterSolver(10)

	cases := []struct {
		name string
		hf   ModeTensor
		dhf  DerivTensor
	}{
		{"empty", ModeTensor{}, nil},
		{"even components", ModeTensor{linalg.Zeros(2), linalg.Zeros(2)}, nil},
		{"ragged", ModeTensor{linalg.Zeros(2), linalg.Zeros(3), linalg.Zeros(2)}, nil},
		{"derivative mismatch", staticModes(linalg.Identity(2)), DerivTensor{{linalg.Zeros(2)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := solver.Solve(tc.hf, tc.dhf, 3, 1.0, 1.0)
			if !errors.Is(err, ErrModeShape) {
				t.Errorf("err = %v, want ErrModeShape", err)
			}
			var se *SolveError
			if !errors.As(err, &se) {
				t.Errorf("err = %v, want *SolveError wrapper", err)
			}
		})
	}
}
