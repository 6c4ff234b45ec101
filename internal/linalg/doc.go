// Package linalg provides complex linear algebra primitives for quantum
// evolution calculations.
//
// Vectors and matrices are plain complex128 slices; matrices are row-major,
// with each row a [Vector]. The inner product follows the quantum-mechanical
// convention <a|b> = a^dagger b, conjugate-linear in the first argument.
//
// [Orthonormalize] implements the modified Gram-Schmidt procedure, which
// re-projects the running residual one basis vector at a time instead of
// projecting the original vector against the whole basis. The distinction
// matters for nearly dependent inputs, where classical Gram-Schmidt loses
// orthogonality to cancellation.
package linalg
