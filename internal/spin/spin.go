// Package spin builds driven spin-1/2 systems: a qubit with static splitting
// freq, driven by an amplitude-scaled pulse whose controls come in
// (a_k, b_k) pairs, one pair per Fourier component of the drive.
package spin

import (
	"math/rand"

	"github.com/san-kum/floq/internal/floq"
	"github.com/san-kum/floq/internal/linalg"
	"github.com/san-kum/floq/internal/system"
)

// HF assembles the Fourier components of a single driven spin. controls must
// hold 2*ncomp entries, pairs (a_k, b_k) for k = 1..ncomp; amp is the
// transfer amplitude of the drive line, freq the static level splitting.
//
// Component m and component -m are mutual adjoints, so the assembled H(t) is
// Hermitian at every t.
func HF(ncomp int, freq, amp float64, controls []float64) floq.ModeTensor {
	c := ncomp
	hf := make(floq.ModeTensor, 2*ncomp+1)
	for i := range hf {
		hf[i] = linalg.Zeros(2)
	}

	hf[c][0][0] = complex(freq/2, 0)
	hf[c][1][1] = complex(-freq/2, 0)

	for k := 1; k <= ncomp; k++ {
		a := amp * controls[2*(k-1)]
		b := amp * controls[2*(k-1)+1]

		hf[c-k][0][1] = complex(b/4, a/4)
		hf[c-k][1][0] = complex(-b/4, a/4)
		hf[c+k][0][1] = complex(-b/4, -a/4)
		hf[c+k][1][0] = complex(b/4, -a/4)
	}
	return hf
}

// DHF is the exact derivative of HF with respect to each control. It does
// not depend on the control values, only on the layout.
func DHF(ncomp int, amp float64) floq.DerivTensor {
	c := ncomp
	dhf := make(floq.DerivTensor, 2*ncomp)
	for ctrl := range dhf {
		tensor := make(floq.ModeTensor, 2*ncomp+1)
		for i := range tensor {
			tensor[i] = linalg.Zeros(2)
		}

		k := ctrl/2 + 1
		if ctrl%2 == 0 { // a_k
			tensor[c-k][0][1] = complex(0, amp/4)
			tensor[c-k][1][0] = complex(0, amp/4)
			tensor[c+k][0][1] = complex(0, -amp/4)
			tensor[c+k][1][0] = complex(0, -amp/4)
		} else { // b_k
			tensor[c-k][0][1] = complex(amp/4, 0)
			tensor[c-k][1][0] = complex(-amp/4, 0)
			tensor[c+k][0][1] = complex(-amp/4, 0)
			tensor[c+k][1][0] = complex(amp/4, 0)
		}
		dhf[ctrl] = tensor
	}
	return dhf
}

type builder struct {
	ncomp int
	freq  float64
	amp   float64
}

func (b *builder) HF(controls []float64) floq.ModeTensor {
	return HF(b.ncomp, b.freq, b.amp, controls)
}

func (b *builder) DHF(controls []float64) floq.DerivTensor {
	return DHF(b.ncomp, b.amp)
}

// NewSystem creates a single driven spin as a cached parametric system.
func NewSystem(ncomp int, freq, amp, omega float64, solver floq.Solver) *system.System {
	return system.New(&builder{ncomp: ncomp, freq: freq, amp: amp}, solver, 2*ncomp+1, omega)
}

// NewEnsemble creates one spin per (freq, amp) pair, each with its own cache
// slot, for disorder-averaged optimization.
func NewEnsemble(freqs, amps []float64, ncomp int, omega float64, solver floq.Solver) system.Ensemble {
	n := len(freqs)
	systems := make([]*system.System, n)
	for i := 0; i < n; i++ {
		systems[i] = NewSystem(ncomp, freqs[i], amps[i], omega, solver)
	}
	return system.NewEnsemble(systems...)
}

// DisorderedEnsemble draws n realizations with freq and amp spread uniformly
// around their nominal values, the usual model of fabrication scatter.
func DisorderedEnsemble(n int, freq, freqSpread, amp, ampSpread float64, ncomp int, omega float64, solver floq.Solver, rng *rand.Rand) system.Ensemble {
	freqs := make([]float64, n)
	amps := make([]float64, n)
	for i := 0; i < n; i++ {
		freqs[i] = freq + freqSpread*(2*rng.Float64()-1)
		amps[i] = amp + ampSpread*(2*rng.Float64()-1)
	}
	return NewEnsemble(freqs, amps, ncomp, omega, solver)
}
