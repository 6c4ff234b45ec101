package optim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/floq/internal/fidelity"
)

// Adam is first-order descent with per-coordinate moment estimates. Default
// decay rates follow the usual 0.9 / 0.999 choice.
type Adam struct {
	Beta1 float64
	Beta2 float64
	Eps   float64
}

func (a *Adam) Run(ctx context.Context, fid fidelity.Fidelity, x0 []float64, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	beta1, beta2, eps := a.Beta1, a.Beta2, a.Eps
	if beta1 == 0 {
		beta1 = 0.9
	}
	if beta2 == 0 {
		beta2 = 0.999
	}
	if eps == 0 {
		eps = 1e-8
	}

	x := make([]float64, len(x0))
	copy(x, x0)
	m := make([]float64, len(x0))
	v := make([]float64, len(x0))

	history := make([]float64, 0, opts.MaxIter)
	prev := math.Inf(1)

	for iter := 1; iter <= opts.MaxIter; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f, err := fid.F(x)
		if err != nil {
			return nil, err
		}
		grad, err := fid.Grad(x)
		if err != nil {
			return nil, err
		}

		for i := range x {
			m[i] = beta1*m[i] + (1-beta1)*grad[i]
			v[i] = beta2*v[i] + (1-beta2)*grad[i]*grad[i]
			mhat := m[i] / (1 - math.Pow(beta1, float64(iter)))
			vhat := v[i] / (1 - math.Pow(beta2, float64(iter)))
			x[i] -= opts.Rate * mhat / (math.Sqrt(vhat) + eps)
		}

		if err := opts.step(fid, iter, x, f, &history); err != nil {
			return nil, err
		}

		if math.Abs(prev-f) < opts.Tol || floats.Norm(grad, 2) < opts.Tol {
			return &Result{X: x, F: f, Iters: iter, Converged: true, History: history}, nil
		}
		prev = f
	}

	f, err := fid.F(x)
	if err != nil {
		return nil, err
	}
	return &Result{X: x, F: f, Iters: opts.MaxIter, Converged: false, History: history}, nil
}
