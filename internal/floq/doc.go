// Package floq defines the core contracts of the pulse-optimization engine.
//
// A periodically driven Hamiltonian H(t) = sum_m hf[m] e^{i m omega t} is
// represented by its Fourier components as a [ModeTensor], together with a
// [DerivTensor] of per-control derivatives. A [Solver] turns these, for a
// fixed duration, into the propagator U and its derivative tensor dU; the
// solver may adapt the number of retained modes and reports the count it
// actually used.
//
// The package ships [TrotterSolver], a time-domain reference solver, and the
// operator-distance metric used as the optimization target:
//
//	d(U, V) = 1 - |tr(V^dagger U)|^2 / dim^2
//
// which is zero exactly when U matches V up to global phase.
package floq
