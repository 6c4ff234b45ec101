package fidelity

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/floq/internal/system"
)

// stubFidelity returns fixed values, for exercising the averaging layer.
type stubFidelity struct {
	Base
	f    float64
	grad []float64
	err  error
}

func (s *stubFidelity) F(x []float64) (float64, error) { return s.f, s.err }

func (s *stubFidelity) Grad(x []float64) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]float64(nil), s.grad...), nil
}

func dummyEnsemble(n int) system.Ensemble {
	systems := make([]*system.System, n)
	for i := range systems {
		systems[i] = system.New(nil, nil, 3, 1.0)
	}
	return system.NewEnsemble(systems...)
}

func TestEnsembleAverage_MeanFidelity(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3}
	i := 0
	avg, err := NewEnsembleAverage(dummyEnsemble(3), func(sys *system.System) (Fidelity, error) {
		s := &stubFidelity{f: values[i]}
		i++
		return s, nil
	})
	if err != nil {
		t.Fatalf("NewEnsembleAverage: %v", err)
	}

	f, err := avg.F([]float64{0})
	if err != nil {
		t.Fatalf("F: %v", err)
	}
	if math.Abs(f-0.2) > 1e-15 {
		t.Errorf("F = %g, want 0.2 (arithmetic mean)", f)
	}
}

func TestEnsembleAverage_ElementwiseMeanGradient(t *testing.T) {
	grads := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
	}
	i := 0
	avg, err := NewEnsembleAverage(dummyEnsemble(3), func(sys *system.System) (Fidelity, error) {
		s := &stubFidelity{grad: grads[i]}
		i++
		return s, nil
	})
	if err != nil {
		t.Fatalf("NewEnsembleAverage: %v", err)
	}

	g, err := avg.Grad([]float64{0, 0})
	if err != nil {
		t.Fatalf("Grad: %v", err)
	}
	if len(g) != 2 {
		t.Fatalf("gradient length = %d, want 2", len(g))
	}
	if math.Abs(g[0]-2) > 1e-15 || math.Abs(g[1]-20) > 1e-15 {
		t.Errorf("Grad = %v, want [2 20]", g)
	}
}

func TestEnsembleAverage_MemberErrorPropagates(t *testing.T) {
	boom := errors.New("member solve failed")
	i := 0
	avg, err := NewEnsembleAverage(dummyEnsemble(2), func(sys *system.System) (Fidelity, error) {
		s := &stubFidelity{f: 0.5}
		if i == 1 {
			s.err = boom
		}
		i++
		return s, nil
	})
	if err != nil {
		t.Fatalf("NewEnsembleAverage: %v", err)
	}

	if _, err := avg.F([]float64{0}); !errors.Is(err, boom) {
		t.Errorf("F err = %v, want %v", err, boom)
	}
	if _, err := avg.Grad([]float64{0}); !errors.Is(err, boom) {
		t.Errorf("Grad err = %v, want %v", err, boom)
	}
}

func TestEnsembleAverage_FactoryErrorPropagates(t *testing.T) {
	boom := errors.New("bad member config")
	_, err := NewEnsembleAverage(dummyEnsemble(2), func(sys *system.System) (Fidelity, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestEnsembleAverage_Empty(t *testing.T) {
	_, err := NewEnsembleAverage(system.NewEnsemble(), func(sys *system.System) (Fidelity, error) {
		return &stubFidelity{}, nil
	})
	if !errors.Is(err, ErrEmptyEnsemble) {
		t.Errorf("err = %v, want ErrEmptyEnsemble", err)
	}
}

func TestEnsembleAverage_OneMemberPerSystem(t *testing.T) {
	built := 0
	avg, err := NewEnsembleAverage(dummyEnsemble(5), func(sys *system.System) (Fidelity, error) {
		built++
		return &stubFidelity{}, nil
	})
	if err != nil {
		t.Fatalf("NewEnsembleAverage: %v", err)
	}
	if built != 5 || avg.Members() != 5 {
		t.Errorf("built %d members, Members() = %d, want 5", built, avg.Members())
	}
}
