package spin

import (
	"fmt"
	"math"

	"github.com/san-kum/floq/internal/linalg"
)

// Target gates for single-qubit pulse optimization.
func TargetIdentity() linalg.Matrix {
	return linalg.Identity(2)
}

func TargetX() linalg.Matrix {
	return linalg.Matrix{
		{0, 1},
		{1, 0},
	}
}

func TargetHadamard() linalg.Matrix {
	h := complex(1/math.Sqrt2, 0)
	return linalg.Matrix{
		{h, h},
		{h, -h},
	}
}

// TargetByName resolves a gate name from configuration.
func TargetByName(name string) (linalg.Matrix, error) {
	switch name {
	case "identity", "id":
		return TargetIdentity(), nil
	case "x", "not":
		return TargetX(), nil
	case "hadamard", "h":
		return TargetHadamard(), nil
	default:
		return nil, fmt.Errorf("spin: unknown target gate %q", name)
	}
}
