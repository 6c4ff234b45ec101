package linalg

import "errors"

// ErrDegenerateVector indicates a zero-norm vector was encountered during
// orthonormalization, either in the input set or as a residual after
// projection. Callers rely on this to detect true linear dependence, so the
// check is against exact zero rather than a tolerance.
var ErrDegenerateVector = errors.New("linalg: vector with norm 0 occurred")

// Orthonormalize computes an orthonormal basis for the given vectors using
// the modified Gram-Schmidt procedure. Vectors are supplied as rows; a fresh
// set of rows is returned and the input is left untouched.
//
// Orthonormalization is with respect to the quantum-mechanical inner product
// <a|b> = a^dagger b.
func Orthonormalize(vecs []Vector) ([]Vector, error) {
	n := len(vecs)
	result := make([]Vector, n)

	if n == 0 {
		return result, nil
	}

	r := Norm(vecs[0])
	if r == 0.0 {
		return nil, ErrDegenerateVector
	}
	result[0] = vecs[0].Clone()
	scaleInPlace(result[0], 1/r)

	for j := 1; j < n; j++ {
		q := vecs[j].Clone()

		// Sequential re-projection: each subtraction reads the updated
		// residual, not the original vector.
		for i := 0; i < j; i++ {
			rij := Product(result[i], q)
			for k := range q {
				q[k] -= rij * result[i][k]
			}
		}

		rjj := Norm(q)
		if rjj == 0.0 {
			return nil, ErrDegenerateVector
		}
		scaleInPlace(q, 1/rjj)
		result[j] = q
	}

	return result, nil
}

func scaleInPlace(v Vector, s float64) {
	for i := range v {
		v[i] *= complex(s, 0)
	}
}
