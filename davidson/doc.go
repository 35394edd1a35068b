// Package davidson implements a block Davidson eigensolver for large real
// symmetric operators given only by their action on vector batches.
//
// The solver targets the lowest NRoots eigenvalues of an operator H:
// it grows an orthonormal subspace V from an initial guess, solves the
// projected problem VᵀHV u = θ u with a dense symmetric eigendecomposition,
// and expands V with diagonally preconditioned residuals
//
//	δ = r / (θ - diag(H))
//
// until every requested Ritz pair has residual norm below Tol. Directions
// that become linearly dependent (norm² ≤ Lindep after re-orthogonalization)
// are dropped, and when the subspace reaches MaxSpace it is collapsed onto
// the current Ritz vectors and regrown.
//
// Contract:
//
//	res, err := davidson.Solve(op, guess, diag, davidson.Options{
//	  Tol:      1e-9,
//	  NRoots:   5,
//	  MaxSpace: 50,
//	  Lindep:   1e-12,
//	})
//	// res.Converged, res.Eigenvalues (ascending), res.Eigenvectors
//
// The operator must be symmetric in exact arithmetic and apply to a whole
// batch per call; the solver batches its subspace growth so expensive
// operators amortize their per-call overhead. Non-convergence within
// MaxIter is reported through Result.Converged, not as an error.
package davidson
