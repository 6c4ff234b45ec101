package optim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/san-kum/floq/internal/fidelity"
)

// LBFGS wraps gonum's limited-memory BFGS. The Recorder bridges gonum's
// notion of a major iteration to the fidelity contract: Iterate fires once
// per accepted step, never for line-search evaluations.
type LBFGS struct{}

type stepRecorder struct {
	ctx     context.Context
	fid     fidelity.Fidelity
	opts    Options
	history []float64
	iter    int
	err     error
}

func (r *stepRecorder) Init() error { return nil }

func (r *stepRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if op != optimize.MajorIteration {
		return nil
	}
	r.iter++
	return r.opts.step(r.fid, r.iter, loc.X, loc.F, &r.history)
}

func (l *LBFGS) Run(ctx context.Context, fid fidelity.Fidelity, x0 []float64, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	rec := &stepRecorder{ctx: ctx, fid: fid, opts: opts}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			f, err := fid.F(x)
			if err != nil {
				if rec.err == nil {
					rec.err = err
				}
				return math.Inf(1)
			}
			return f
		},
		Grad: func(grad, x []float64) {
			g, err := fid.Grad(x)
			if err != nil {
				if rec.err == nil {
					rec.err = err
				}
				return
			}
			copy(grad, g)
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIter,
		GradientThreshold: opts.Tol,
		Recorder:          rec,
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if rec.err != nil {
		return nil, rec.err
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		X:         res.X,
		F:         res.F,
		Iters:     rec.iter,
		Converged: res.Status != optimize.IterationLimit,
		History:   rec.history,
	}, nil
}
