package uks

import (
	"sort"

	"github.com/qcgo/casida/davidson"
)

// SolveNoHybrid computes the lowest excitation energies and (X, Y)
// amplitude pairs of the reduced symmetric eigenproblem
// (A-B)(A+B)(X+Y) = w²(X+Y) for a non-hybrid unrestricted reference.
//
// Contracts:
//   - mf must be non-nil, shape-consistent, and non-hybrid; a hybrid
//     reference is rejected with ErrHybridFunctional before any state is
//     built.
//   - Every call rebuilds the excitation space and diagonal basis from the
//     current mean-field values; nothing is cached, so repeated solves on
//     an unmodified reference are idempotent within solver tolerance.
//   - Solver non-convergence is a degraded result (Converged=false), not
//     an error; whatever eigenpairs were produced are still returned.
//
// When opts.Checkpoint is set, accepted energies and amplitudes are written
// under ChkEnergies and ChkAmplitudes; write failures are logged, never
// propagated.
func SolveNoHybrid(mf *MeanField, opts Options) (*Result, error) {
	if mf == nil {
		return nil, ErrNilMeanField
	}
	if mf.Hybrid {
		return nil, ErrHybridFunctional
	}
	if err := mf.validate(); err != nil {
		return nil, err
	}
	opts = opts.normalize()
	log := opts.logger()

	sp := BuildExcitationSpace(mf.Occ)
	if sp.TotalPairs() == 0 {
		return nil, ErrEmptySpace
	}
	mask := symmetryMask(mf, &sp, opts.WfnSym)
	basis := newDiagonalBasis(mf, &sp, mask)
	op := newResponseOperator(mf, sp, basis, mask)

	log.Info("uks: reduced TDDFT solve",
		"nstates", opts.NStates,
		"conv_tol", opts.ConvTol,
		"max_space", opts.MaxSpace,
		"lindep", opts.Lindep,
		"wfnsym", opts.WfnSym,
		"npairs_alpha", sp.NPairs(Alpha),
		"npairs_beta", sp.NPairs(Beta),
	)

	guess := initialGuess(basis.hdiag, mask, opts.NStates)
	dres, err := davidson.Solve(op.Apply, guess, basis.hdiag, davidson.Options{
		Tol:      opts.ConvTol,
		NRoots:   len(guess),
		MaxSpace: opts.MaxSpace,
		Lindep:   opts.Lindep,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	energies, states := reconstructNoHybrid(mf, sp, dres.Eigenvalues, dres.Eigenvectors)
	res := &Result{
		Converged: dres.Converged,
		Energies:  energies,
		States:    states,
	}

	log.Info("uks: reduced TDDFT done",
		"converged", res.Converged,
		"accepted", len(res.Energies),
		"returned", len(dres.Eigenvalues),
	)
	persist(opts.Checkpoint, log, res)

	return res, nil
}

// initialGuess seeds the eigensolver with unit vectors at the nstates
// smallest preconditioner entries, skipping symmetry-forbidden positions
// (their diagonal is an exact zero and would otherwise always win the
// sort).
func initialGuess(hdiag []float64, mask []bool, nstates int) [][]float64 {
	idx := make([]int, 0, len(hdiag))
	for p := range hdiag {
		if mask != nil && mask[p] {
			continue
		}
		idx = append(idx, p)
	}
	sort.Slice(idx, func(i, j int) bool { return hdiag[idx[i]] < hdiag[idx[j]] })

	n := nstates
	if n > len(idx) {
		n = len(idx)
	}
	guess := make([][]float64, n)
	for r := 0; r < n; r++ {
		v := make([]float64, len(hdiag))
		v[idx[r]] = 1
		guess[r] = v
	}

	return guess
}
