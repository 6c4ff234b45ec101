package optim

import (
	"context"
	"math"
	"testing"
)

// quadratic is a convex test fidelity: f = sum (x_i - 1)^2.
type quadratic struct {
	iterations int
	fCalls     int
}

func (q *quadratic) F(x []float64) (float64, error) {
	q.fCalls++
	sum := 0.0
	for _, v := range x {
		sum += (v - 1) * (v - 1)
	}
	return sum, nil
}

func (q *quadratic) Grad(x []float64) ([]float64, error) {
	g := make([]float64, len(x))
	for i, v := range x {
		g[i] = 2 * (v - 1)
	}
	return g, nil
}

func (q *quadratic) Iterate(x []float64) error {
	q.iterations++
	return nil
}

func (q *quadratic) ResetIterations() { q.iterations = 0 }

func (q *quadratic) Iterations() int { return q.iterations }

func TestGradientDescent_Converges(t *testing.T) {
	fid := &quadratic{}
	gd := &GradientDescent{}

	res, err := gd.Run(context.Background(), fid, []float64{5, -3}, Options{MaxIter: 500, Rate: 0.1, Tol: 1e-12})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.F > 1e-8 {
		t.Errorf("final F = %g, want near 0", res.F)
	}
	for i, v := range res.X {
		if math.Abs(v-1) > 1e-4 {
			t.Errorf("x[%d] = %g, want 1", i, v)
		}
	}
	if !res.Converged {
		t.Error("expected convergence")
	}
}

func TestGradientDescent_IterateOncePerStep(t *testing.T) {
	fid := &quadratic{}
	gd := &GradientDescent{}

	res, err := gd.Run(context.Background(), fid, []float64{2}, Options{MaxIter: 50, Rate: 0.1, Tol: 1e-15})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fid.iterations != res.Iters {
		t.Errorf("Iterate called %d times for %d accepted steps", fid.iterations, res.Iters)
	}
	if len(res.History) != res.Iters {
		t.Errorf("history length = %d, want %d", len(res.History), res.Iters)
	}
}

func TestGradientDescent_OnStepProgress(t *testing.T) {
	fid := &quadratic{}
	gd := &GradientDescent{}

	var seen []Progress
	opts := Options{MaxIter: 10, Rate: 0.1, Tol: 1e-15, OnStep: func(p Progress) {
		seen = append(seen, p)
	}}
	if _, err := gd.Run(context.Background(), fid, []float64{2}, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(seen) == 0 {
		t.Fatal("no progress reported")
	}
	for i, p := range seen {
		if p.Iter != i+1 {
			t.Errorf("progress %d has Iter = %d", i, p.Iter)
		}
	}
	// Values are a copy; mutating them must not leak back.
	seen[0].X[0] = 999
}

func TestGradientDescent_ContextCancel(t *testing.T) {
	fid := &quadratic{}
	gd := &GradientDescent{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gd.Run(ctx, fid, []float64{2}, Options{MaxIter: 100}); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestAdam_Converges(t *testing.T) {
	fid := &quadratic{}
	adam := &Adam{}

	res, err := adam.Run(context.Background(), fid, []float64{4, -2}, Options{MaxIter: 2000, Rate: 0.05, Tol: 1e-14})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.F > 1e-6 {
		t.Errorf("final F = %g, want near 0", res.F)
	}
	if fid.iterations != res.Iters {
		t.Errorf("Iterate called %d times for %d steps", fid.iterations, res.Iters)
	}
}

func TestLBFGS_Converges(t *testing.T) {
	fid := &quadratic{}
	lbfgs := &LBFGS{}

	res, err := lbfgs.Run(context.Background(), fid, []float64{5, -3, 2}, Options{MaxIter: 100, Tol: 1e-10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.F > 1e-8 {
		t.Errorf("final F = %g, want near 0", res.F)
	}
	if fid.iterations == 0 {
		t.Error("Iterate never called")
	}
	if fid.iterations != res.Iters {
		t.Errorf("Iterate called %d times for %d accepted steps", fid.iterations, res.Iters)
	}
}

func TestNew_ResolvesNames(t *testing.T) {
	for _, name := range []string{"gd", "gradient_descent", "adam", "lbfgs", ""} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if _, err := New("newton"); err == nil {
		t.Error("expected error for unknown optimizer")
	}
}
