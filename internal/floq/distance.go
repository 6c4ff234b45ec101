package floq

import (
	"math/cmplx"

	"github.com/san-kum/floq/internal/linalg"
)

// OperatorDistance measures how far u is from the target operator,
//
//	d(u, target) = 1 - |tr(target^dagger u)|^2 / dim^2.
//
// It is zero exactly when u equals target up to a global phase, and at most 1
// for unitary u.
func OperatorDistance(u, target linalg.Matrix) float64 {
	d := float64(u.Dim())
	tr := linalg.Trace(linalg.Adjoint(target).Mul(u))
	overlap := real(tr)*real(tr) + imag(tr)*imag(tr)
	return 1 - overlap/(d*d)
}

// OperatorDistanceGrad computes the gradient of OperatorDistance with respect
// to each control, given the propagator derivatives du.
func OperatorDistanceGrad(u linalg.Matrix, du []linalg.Matrix, target linalg.Matrix) []float64 {
	d := float64(u.Dim())
	adj := linalg.Adjoint(target)
	tr := linalg.Trace(adj.Mul(u))

	grad := make([]float64, len(du))
	for k := range du {
		dtr := linalg.Trace(adj.Mul(du[k]))
		grad[k] = -2 * real(dtr*cmplx.Conj(tr)) / (d * d)
	}
	return grad
}
