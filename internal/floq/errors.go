package floq

import (
	"errors"
	"fmt"
)

// Domain errors for evolution solves.
var (
	// ErrModeShape indicates a malformed Fourier-component tensor (even
	// length, ragged rows, or mismatched derivative dimensions).
	ErrModeShape = errors.New("floq: malformed mode tensor")

	// ErrNotUnitary indicates a propagator that failed the unitarity check.
	ErrNotUnitary = errors.New("floq: propagator is not unitary")
)

// SolveError wraps a solver failure with the operating point it occurred at.
type SolveError struct {
	Duration float64
	Modes    int
	Wrapped  error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve failed (duration=%g, modes=%d): %v", e.Duration, e.Modes, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
