package linalg

import (
	"math"
	"math/cmplx"
)

// DefaultUnitaryTol is the elementwise tolerance used by IsUnitaryDefault.
const DefaultUnitaryTol = 1e-10

type Vector []complex128

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, z := range v {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return false
		}
	}
	return true
}

// Matrix is a square complex matrix stored as rows.
type Matrix []Vector

func (m Matrix) Dim() int { return len(m) }

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = row.Clone()
	}
	return c
}

func (m Matrix) Mul(o Matrix) Matrix {
	d := len(m)
	out := Zeros(d)
	for i := 0; i < d; i++ {
		for k := 0; k < d; k++ {
			mik := m[i][k]
			if mik == 0 {
				continue
			}
			for j := 0; j < d; j++ {
				out[i][j] += mik * o[k][j]
			}
		}
	}
	return out
}

func (m Matrix) Add(o Matrix) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] += o[i][j]
		}
	}
	return out
}

func (m Matrix) Scale(z complex128) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] *= z
		}
	}
	return out
}

// Equal reports elementwise agreement within tol (absolute).
func (m Matrix) Equal(o Matrix, tol float64) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func Identity(d int) Matrix {
	m := Zeros(d)
	for i := 0; i < d; i++ {
		m[i][i] = 1
	}
	return m
}

func Zeros(d int) Matrix {
	m := make(Matrix, d)
	for i := range m {
		m[i] = make(Vector, d)
	}
	return m
}

func Trace(m Matrix) complex128 {
	var tr complex128
	for i := range m {
		tr += m[i][i]
	}
	return tr
}

// Product computes <a|b> = conj(a) . b.
func Product(a, b Vector) complex128 {
	var p complex128
	for i := range a {
		p += cmplx.Conj(a[i]) * b[i]
	}
	return p
}

// Norm computes sqrt(<a|a>). The imaginary part of <a|a> is zero by
// construction, so only the real part enters.
func Norm(a Vector) float64 {
	return math.Sqrt(real(Product(a, a)))
}

// Adjoint returns the conjugate transpose of m.
func Adjoint(m Matrix) Matrix {
	d := len(m)
	out := Zeros(d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out[i][j] = cmplx.Conj(m[j][i])
		}
	}
	return out
}

// IsUnitary reports whether adjoint(u)*u is elementwise within tol of the
// identity. It validates without mutating its argument.
func IsUnitary(u Matrix, tol float64) bool {
	return Adjoint(u).Mul(u).Equal(Identity(len(u)), tol)
}

func IsUnitaryDefault(u Matrix) bool {
	return IsUnitary(u, DefaultUnitaryTol)
}
