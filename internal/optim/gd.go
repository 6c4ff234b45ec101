package optim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/floq/internal/fidelity"
)

// GradientDescent is plain fixed-rate steepest descent. It is slow but its
// trajectory is easy to reason about, which makes it the reference driver in
// tests.
type GradientDescent struct{}

func (g *GradientDescent) Run(ctx context.Context, fid fidelity.Fidelity, x0 []float64, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	x := make([]float64, len(x0))
	copy(x, x0)

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

		floats.AddScaled(x, -opts.Rate, grad)

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
