package fidelity

import (
	"github.com/san-kum/floq/internal/floq"
	"github.com/san-kum/floq/internal/linalg"
	"github.com/san-kum/floq/internal/system"
)

// OperatorDistance scores controls by the operator distance between the
// realized propagator and a target gate, both fixed to a pulse duration
// chosen at construction.
//
// Unlike metrics built on Base, OperatorDistance implements F and Grad
// directly and composes no penalty by default; WithPenalty opts an instance
// into the additive path.
type OperatorDistance struct {
	sys      *system.System
	duration float64
	target   linalg.Matrix

	penalty    Penalized
	hook       StepHook
	iterations int
}

func NewOperatorDistance(sys *system.System, duration float64, target linalg.Matrix) *OperatorDistance {
	return &OperatorDistance{sys: sys, duration: duration, target: target}
}

// WithPenalty enables penalty composition for this instance.
func (o *OperatorDistance) WithPenalty(p Penalized) *OperatorDistance {
	o.penalty = p
	return o
}

// WithStepHook installs a per-step hook receiving the recomputed value on
// every accepted step.
func (o *OperatorDistance) WithStepHook(h StepHook) *OperatorDistance {
	o.hook = h
	return o
}

func (o *OperatorDistance) F(controls []float64) (float64, error) {
	u, err := o.sys.U(controls, o.duration)
	if err != nil {
		return 0, err
	}
	f := floq.OperatorDistance(u, o.target)
	if o.penalty != nil {
		f += o.penalty.Penalty(controls)
	}
	return f, nil
}

func (o *OperatorDistance) Grad(controls []float64) ([]float64, error) {
	u, err := o.sys.U(controls, o.duration)
	if err != nil {
		return nil, err
	}
	du, err := o.sys.DU(controls, o.duration)
	if err != nil {
		return nil, err
	}
	g := floq.OperatorDistanceGrad(u, du, o.target)
	if o.penalty != nil {
		pg := o.penalty.PenaltyGradient(controls)
		for i := range g {
			if i < len(pg) {
				g[i] += pg[i]
			}
		}
	}
	return g, nil
}

func (o *OperatorDistance) Iterate(controls []float64) error {
	o.iterations++
	f, err := o.F(controls)
	if err != nil {
		return err
	}
	if o.hook != nil {
		o.hook.OnIterate(controls, f)
	}
	return nil
}

func (o *OperatorDistance) ResetIterations() { o.iterations = 0 }

func (o *OperatorDistance) Iterations() int { return o.iterations }
