// Package fidelity computes control-pulse fidelity metrics and their
// gradients for an outer optimizer.
//
// A metric supplies the required [Core] capabilities; penalties and per-step
// hooks are optional capabilities discovered by interface assertion. [Base]
// composes them into the [Fidelity] contract the optimizer consumes:
//
//	F(x)    = CoreFidelity(x) + Penalty(x)
//	Grad(x) = CoreGradient(x) + PenaltyGradient(x)
//
// For a fixed x the numeric results are independent of cache state and of
// the iteration counter; both are side channels only.
package fidelity

import "errors"

// ErrUnimplemented indicates a required capability was invoked on a type
// that does not supply it. This is a programming error, not a recoverable
// runtime condition.
var ErrUnimplemented = errors.New("fidelity: operation not implemented")

// Fidelity is the contract the optimizer drives: values and gradients at
// arbitrary points, plus one Iterate call per accepted step.
type Fidelity interface {
	F(x []float64) (float64, error)
	Grad(x []float64) ([]float64, error)

	// Iterate is called exactly once per accepted optimizer step.
	Iterate(x []float64) error
	ResetIterations()
	Iterations() int
}

// Core is the required capability set of a concrete metric.
type Core interface {
	CoreFidelity(x []float64) (float64, error)
	CoreGradient(x []float64) ([]float64, error)
}

// Penalized is an optional capability: an additive term discouraging
// undesired control characteristics, with its gradient.
type Penalized interface {
	Penalty(x []float64) float64
	PenaltyGradient(x []float64) []float64
}

// StepHook is an optional capability invoked on every accepted step with the
// freshly recomputed fidelity value, e.g. for checkpointing the best pulse.
type StepHook interface {
	OnIterate(x []float64, f float64)
}

// Base implements Fidelity over a Core, adding penalty composition and
// iteration bookkeeping.
type Base struct {
	core       Core
	iterations int
}

func NewBase(core Core) *Base {
	return &Base{core: core}
}

func (b *Base) F(x []float64) (float64, error) {
	if b.core == nil {
		return 0, ErrUnimplemented
	}
	f, err := b.core.CoreFidelity(x)
	if err != nil {
		return 0, err
	}
	if p, ok := b.core.(Penalized); ok {
		f += p.Penalty(x)
	}
	return f, nil
}

func (b *Base) Grad(x []float64) ([]float64, error) {
	if b.core == nil {
		return nil, ErrUnimplemented
	}
	g, err := b.core.CoreGradient(x)
	if err != nil {
		return nil, err
	}
	if p, ok := b.core.(Penalized); ok {
		pg := p.PenaltyGradient(x)
		for i := range g {
			if i < len(pg) {
				g[i] += pg[i]
			}
		}
	}
	return g, nil
}

// Iterate increments the iteration counter and recomputes F at the accepted
// point. The value is not returned; it is handed to the core's StepHook, if
// any, which is the intended way to observe it.
func (b *Base) Iterate(x []float64) error {
	b.iterations++
	f, err := b.F(x)
	if err != nil {
		return err
	}
	if h, ok := b.core.(StepHook); ok {
		h.OnIterate(x, f)
	}
	return nil
}

func (b *Base) ResetIterations() { b.iterations = 0 }

func (b *Base) Iterations() int { return b.iterations }
