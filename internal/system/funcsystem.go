package system

import "github.com/san-kum/floq/internal/floq"

// HFunc builds the Hamiltonian Fourier components from controls, a free-form
// parameter map, and the driving frequency.
type HFunc func(controls []float64, params map[string]float64, omega float64) floq.ModeTensor

// DHFunc builds the per-control derivative components.
type DHFunc func(controls []float64, params map[string]float64, omega float64) floq.DerivTensor

type funcBuilder struct {
	hf     HFunc
	dhf    DHFunc
	params map[string]float64
	omega  float64
}

func (b *funcBuilder) HF(controls []float64) floq.ModeTensor {
	return b.hf(controls, b.params, b.omega)
}

func (b *funcBuilder) DHF(controls []float64) floq.DerivTensor {
	return b.dhf(controls, b.params, b.omega)
}

// NewFuncSystem wraps plain callables as a System, for Hamiltonians that are
// most naturally written as closures over a parameter map.
func NewFuncSystem(hf HFunc, dhf DHFunc, solver floq.Solver, modes int, omega float64, params map[string]float64) *System {
	return New(&funcBuilder{hf: hf, dhf: dhf, params: params, omega: omega}, solver, modes, omega)
}
