// Package uks solves the linear-response TDDFT eigenvalue problem for
// unrestricted Kohn-Sham references with non-hybrid exchange-correlation
// functionals.
//
// Instead of the full non-symmetric response matrix, the package works with
// the reduced symmetric eigenproblem
//
//	(A-B)(A+B)(X+Y) = w² (X+Y)
//
// which is algebraically exact whenever the kernel carries no fraction of
// exact exchange. For a purely local or semi-local functional (A-B) is
// diagonal in the occupied-virtual orbital basis, equal to the orbital
// energy differences e_ai, so the scaled Hessian action reduces to
//
//	H z = d · (K(d·z) + e_ai · d · z),   d = sqrt(e_ai)
//
// where K is the density-functional response kernel in the AO basis. The
// package builds this action as a matrix-free batch operator, feeds it to a
// Davidson-type eigensolver together with the e_ai² diagonal guess, and
// recovers physically normalized excitation (X) and de-excitation (Y)
// amplitudes from the converged reduced eigenvectors.
//
// Entry points:
//
//   - SolveNoHybrid: the reduced (A-B)(A+B) problem, X and Y amplitudes,
//     normalization ΣX² - ΣY² = 1 per state.
//   - SolveTDA: the Tamm–Dancoff approximation A X = w X, X-only amplitudes,
//     normalization ΣX² = 1 per state.
//
// The mean-field reference is consumed read-only through the MeanField
// value; the response kernel and the checkpoint sink are injected
// collaborators. Hybrid references are rejected at entry with
// ErrHybridFunctional before any computation takes place.
package uks
