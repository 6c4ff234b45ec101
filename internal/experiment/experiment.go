// Package experiment wires a configuration into a runnable optimization:
// system ensemble, fidelity, optimizer, and progress reporting.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/floq/internal/config"
	"github.com/san-kum/floq/internal/fidelity"
	"github.com/san-kum/floq/internal/floq"
	"github.com/san-kum/floq/internal/optim"
	"github.com/san-kum/floq/internal/spin"
	"github.com/san-kum/floq/internal/system"
)

type Experiment struct {
	cfg    config.Config
	log    zerolog.Logger
	onStep func(optim.Progress)

	fid       fidelity.Fidelity
	optimizer optim.Optimizer
}

type Result struct {
	Controls  []float64
	Distance  float64
	Iters     int
	Converged bool
	History   []float64
	Elapsed   time.Duration
}

func New(cfg config.Config, log zerolog.Logger) *Experiment {
	return &Experiment{cfg: cfg, log: log}
}

// SetProgress installs a per-step callback, e.g. for the live view.
func (e *Experiment) SetProgress(fn func(optim.Progress)) { e.onStep = fn }

// Setup builds the solver, the system or ensemble, and the fidelity. It is
// split from Run so callers can inspect the pieces before running.
func (e *Experiment) Setup() error {
	cfg := e.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	solver := floq.NewTrotterSolver(cfg.TrotterSteps)
	target, err := spin.TargetByName(cfg.Target)
	if err != nil {
		return err
	}

	var pen fidelity.Penalized
	if cfg.PenaltyWeight > 0 {
		pen = fidelity.AmplitudePenalty{Weight: cfg.PenaltyWeight}
	}

	if cfg.Spins == 1 {
		sys := spin.NewSystem(cfg.Ncomp, cfg.Freq, cfg.Amp, cfg.Omega, solver)
		od := fidelity.NewOperatorDistance(sys, cfg.Duration, target)
		if pen != nil {
			od = od.WithPenalty(pen)
		}
		e.fid = od
	} else {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		ens := spin.DisorderedEnsemble(cfg.Spins, cfg.Freq, cfg.FreqSpread, cfg.Amp, cfg.AmpSpread, cfg.Ncomp, cfg.Omega, solver, rng)

		avg, err := fidelity.NewEnsembleAverage(ens, func(sys *system.System) (fidelity.Fidelity, error) {
			od := fidelity.NewOperatorDistance(sys, cfg.Duration, target)
			if pen != nil {
				od = od.WithPenalty(pen)
			}
			return od, nil
		})
		if err != nil {
			return err
		}
		e.fid = avg
	}

	opt, err := optim.New(cfg.Optimizer)
	if err != nil {
		return err
	}
	e.optimizer = opt
	return nil
}

// Fidelity exposes the built fidelity; valid after Setup.
func (e *Experiment) Fidelity() fidelity.Fidelity { return e.fid }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.fid == nil {
		return nil, fmt.Errorf("experiment: not set up")
	}

	cfg := e.cfg
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed + 1))

	x0 := make([]float64, cfg.Controls())
	for i := range x0 {
		x0[i] = 0.5 * (2*rng.Float64() - 1)
	}

	e.log.Info().
		Str("target", cfg.Target).
		Str("optimizer", cfg.Optimizer).
		Int("spins", cfg.Spins).
		Int("controls", len(x0)).
		Float64("duration", cfg.Duration).
		Msg("starting optimization")

	opts := optim.Options{
		MaxIter: cfg.MaxIter,
		Rate:    cfg.Rate,
		Tol:     cfg.Tol,
		OnStep: func(p optim.Progress) {
			if p.Iter%50 == 0 {
				e.log.Debug().Int("iter", p.Iter).Float64("distance", p.F).Msg("step")
			}
			if e.onStep != nil {
				e.onStep(p)
			}
		},
	}

	start := time.Now()
	res, err := e.optimizer.Run(ctx, e.fid, x0, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	e.log.Info().
		Float64("distance", res.F).
		Int("iterations", res.Iters).
		Bool("converged", res.Converged).
		Dur("elapsed", elapsed).
		Msg("optimization finished")

	return &Result{
		Controls:  res.X,
		Distance:  res.F,
		Iters:     res.Iters,
		Converged: res.Converged,
		History:   res.History,
		Elapsed:   elapsed,
	}, nil
}
