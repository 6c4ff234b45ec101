package floq

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/floq/internal/linalg"
)

const expmTaylorTerms = 18

// Expm computes the matrix exponential by scaling and squaring with a Taylor
// expansion of the scaled matrix. Accurate to near machine precision for the
// small, well-conditioned generators produced by one Trotter step.
func Expm(m linalg.Matrix) linalg.Matrix {
	d := m.Dim()

	// Scale m down until its norm is at most 1/2.
	s := 0
	if nrm := maxRowSum(m); nrm > 0.5 {
		s = int(math.Ceil(math.Log2(nrm / 0.5)))
	}
	scaled := m.Scale(complex(math.Ldexp(1, -s), 0))

	// Taylor series: sum_k scaled^k / k!
	result := linalg.Identity(d)
	term := linalg.Identity(d)
	for k := 1; k <= expmTaylorTerms; k++ {
		term = term.Mul(scaled).Scale(complex(1/float64(k), 0))
		result = result.Add(term)
	}

	for i := 0; i < s; i++ {
		result = result.Mul(result)
	}
	return result
}

func maxRowSum(m linalg.Matrix) float64 {
	max := 0.0
	for _, row := range m {
		sum := 0.0
		for _, z := range row {
			sum += cmplx.Abs(z)
		}
		if sum > max {
			max = sum
		}
	}
	return max
}
