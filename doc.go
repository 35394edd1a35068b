// Package casida computes vertical excitation energies for unrestricted
// Kohn-Sham references via linear-response TDDFT, restricted to non-hybrid
// exchange-correlation functionals.
//
// 🚀 What is casida?
//
//	A matrix-free excited-state solver built around the reduced symmetric
//	eigenproblem (A-B)(A+B)(X+Y) = w²(X+Y), valid whenever the response
//	kernel carries no exact-exchange fraction:
//		• uks/      — excitation space, response operator, driver, X/Y recovery
//		• davidson/ — block Davidson eigensolver for symmetric operators
//		• chkfile/  — embedded key-value checkpoint store for spectra
//
// ✨ Why casida?
//
//   - Matrix-free — the orbital Hessian is never materialized; only its
//     action on trial-vector batches is computed
//   - Explicit contracts — mean-field data, response kernel and eigensolver
//     are plain values and function types, swappable in tests
//   - Pure Go numerics on gonum — no cgo, no global state
//
// The mean-field reference (orbitals, energies, occupations, response
// kernel) is consumed, never produced: run your SCF elsewhere and hand the
// converged state to uks.SolveNoHybrid or uks.SolveTDA.
//
//	go get github.com/qcgo/casida/uks
package casida
