// Package optim drives fidelity minimization. Every optimizer honors the
// same contract: query F and Grad freely, call Iterate on the fidelity
// exactly once per accepted step.
package optim

import (
	"context"
	"errors"

	"github.com/san-kum/floq/internal/fidelity"
)

// Progress is a snapshot of one accepted step, for live views and logs.
type Progress struct {
	Iter int
	F    float64
	X    []float64
}

type Options struct {
	MaxIter int
	Rate    float64
	Tol     float64
	OnStep  func(Progress)
}

func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = 200
	}
	if o.Rate <= 0 {
		o.Rate = 0.1
	}
	if o.Tol <= 0 {
		o.Tol = 1e-8
	}
	return o
}

type Result struct {
	X         []float64
	F         float64
	Iters     int
	Converged bool
	History   []float64
}

// Optimizer searches control space for the minimum of a fidelity.
type Optimizer interface {
	Run(ctx context.Context, fid fidelity.Fidelity, x0 []float64, opts Options) (*Result, error)
}

// New resolves an optimizer by configuration name.
func New(name string) (Optimizer, error) {
	switch name {
	case "gd", "gradient_descent":
		return &GradientDescent{}, nil
	case "adam", "":
		return &Adam{}, nil
	case "lbfgs":
		return &LBFGS{}, nil
	default:
		return nil, errors.New("optim: unknown optimizer " + name)
	}
}

func (o Options) step(fid fidelity.Fidelity, iter int, x []float64, f float64, history *[]float64) error {
	*history = append(*history, f)
	if err := fid.Iterate(x); err != nil {
		return err
	}
	if o.OnStep != nil {
		xc := make([]float64, len(x))
		copy(xc, x)
		o.OnStep(Progress{Iter: iter, F: f, X: xc})
	}
	return nil
}
