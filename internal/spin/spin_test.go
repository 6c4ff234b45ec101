package spin

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/floq/internal/floq"
	"github.com/san-kum/floq/internal/linalg"
)

// singleHF builds the expected two-component tensor by hand, mirroring the
// analytic form of the driven-spin Hamiltonian.
func singleHF(controls []float64, freq float64) floq.ModeTensor {
	a1, b1 := controls[0], controls[1]
	a2, b2 := controls[2], controls[3]

	mk := func(m00, m01, m10, m11 complex128) linalg.Matrix {
		return linalg.Matrix{{m00, m01}, {m10, m11}}
	}

	return floq.ModeTensor{
		mk(0, complex(b2/4, a2/4), complex(-b2/4, a2/4), 0),
		mk(0, complex(b1/4, a1/4), complex(-b1/4, a1/4), 0),
		mk(complex(freq/2, 0), 0, 0, complex(-freq/2, 0)),
		mk(0, complex(-b1/4, -a1/4), complex(b1/4, -a1/4), 0),
		mk(0, complex(-b2/4, -a2/4), complex(b2/4, -a2/4), 0),
	}
}

func TestHF_MatchesAnalyticForm(t *testing.T) {
	controls := []float64{1.2, 2.3, 3.4, 5.4}
	amp := 1.0
	freq := 2.5

	scaled := make([]float64, len(controls))
	for i, c := range controls {
		scaled[i] = amp * c
	}
	want := singleHF(scaled, freq)
	got := HF(2, freq, amp, controls)

	if len(got) != len(want) {
		t.Fatalf("components = %d, want %d", len(got), len(want))
	}
	for m := range want {
		if !got[m].Equal(want[m], 1e-15) {
			t.Errorf("component %d = %v, want %v", m, got[m], want[m])
		}
	}
}

func TestHF_AmplitudeScalesControls(t *testing.T) {
	controls := []float64{1.0, -0.5}
	unscaled := HF(1, 3.0, 1.0, controls)
	scaled := HF(1, 3.0, 0.7, controls)

	c := 1 // center index for ncomp=1
	// Static part is unaffected by amp.
	if !scaled[c].Equal(unscaled[c], 0) {
		t.Error("static component changed with amp")
	}
	// Drive components scale linearly.
	if !scaled[c-1].Equal(unscaled[c-1].Scale(complex(0.7, 0)), 1e-15) {
		t.Error("drive component does not scale with amp")
	}
}

func TestHF_ModePairsAreAdjoint(t *testing.T) {
	hf := HF(2, 4.2, 0.9, []float64{0.3, -0.7, 1.1, 0.2})
	c := 2
	for k := 1; k <= 2; k++ {
		if !hf[c-k].Equal(linalg.Adjoint(hf[c+k]), 1e-15) {
			t.Errorf("component pair +-%d is not mutually adjoint", k)
		}
	}
}

func TestDHF_MatchesFiniteDifference(t *testing.T) {
	const ncomp = 2
	freq, amp := 2.5, 0.8
	controls := []float64{0.4, -0.3, 0.9, 0.1}

	dhf := DHF(ncomp, amp)
	if len(dhf) != 2*ncomp {
		t.Fatalf("derivative tensors = %d, want %d", len(dhf), 2*ncomp)
	}

	h := 1e-6
	for ctrl := 0; ctrl < 2*ncomp; ctrl++ {
		up := append([]float64(nil), controls...)
		dn := append([]float64(nil), controls...)
		up[ctrl] += h
		dn[ctrl] -= h

		hfUp := HF(ncomp, freq, amp, up)
		hfDn := HF(ncomp, freq, amp, dn)

		for m := range dhf[ctrl] {
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					numeric := (hfUp[m][i][j] - hfDn[m][i][j]) / complex(2*h, 0)
					if cmplx.Abs(numeric-dhf[ctrl][m][i][j]) > 1e-9 {
						t.Fatalf("ctrl %d component %d [%d][%d]: analytic %v vs numeric %v",
							ctrl, m, i, j, dhf[ctrl][m][i][j], numeric)
					}
				}
			}
		}
	}
}

func TestSystem_DerivativeMatchesFiniteDifference(t *testing.T) {
	if testing.Short() {
		t.Skip("solver finite-difference check is slow")
	}

	solver := floq.NewTrotterSolver(4000)
	freq, amp, omega := 1.1, 0.5, 3.0
	duration := 0.8
	controls := []float64{0.2, -0.1}

	sys := NewSystem(1, freq, amp, omega, solver)
	du, err := sys.DU(controls, duration)
	if err != nil {
		t.Fatalf("DU: %v", err)
	}

	h := 1e-4
	for ctrl := range controls {
		up := append([]float64(nil), controls...)
		dn := append([]float64(nil), controls...)
		up[ctrl] += h
		dn[ctrl] -= h

		uUp, err := NewSystem(1, freq, amp, omega, solver).U(up, duration)
		if err != nil {
			t.Fatalf("U: %v", err)
		}
		uDn, err := NewSystem(1, freq, amp, omega, solver).U(dn, duration)
		if err != nil {
			t.Fatalf("U: %v", err)
		}

		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				numeric := (uUp[i][j] - uDn[i][j]) / complex(2*h, 0)
				if cmplx.Abs(numeric-du[ctrl][i][j]) > 1e-2 {
					t.Errorf("ctrl %d [%d][%d]: analytic %v vs numeric %v",
						ctrl, i, j, du[ctrl][i][j], numeric)
				}
			}
		}
	}
}

func TestNewEnsemble_MemberIndependence(t *testing.T) {
	solver := floq.NewTrotterSolver(50)
	ens := NewEnsemble([]float64{1.0, 1.5, 2.0}, []float64{1, 1, 1}, 1, 3.0, solver)

	if ens.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ens.Len())
	}
	for i := 0; i < ens.Len(); i++ {
		for j := i + 1; j < ens.Len(); j++ {
			if ens.At(i) == ens.At(j) {
				t.Errorf("members %d and %d share a system", i, j)
			}
		}
	}
}

func TestTargets(t *testing.T) {
	for _, name := range []string{"identity", "x", "hadamard"} {
		target, err := TargetByName(name)
		if err != nil {
			t.Fatalf("TargetByName(%q): %v", name, err)
		}
		if !linalg.IsUnitaryDefault(target) {
			t.Errorf("target %q is not unitary", name)
		}
	}

	if _, err := TargetByName("cnot"); err == nil {
		t.Error("expected error for unknown gate")
	}

	h := TargetHadamard()
	if math.Abs(real(h[0][0])-1/math.Sqrt2) > 1e-15 {
		t.Errorf("hadamard [0][0] = %v", h[0][0])
	}
}
