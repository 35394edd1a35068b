package uks

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/qcgo/casida/davidson"
)

// tdaOperator is the matrix-free action of the A block alone (Tamm–Dancoff
// approximation): A z = e_ai·z + K_ov(z). Unlike the reduced operator there
// is no sqrt(e_ai) metric and the transition density is not symmetrized, so
// the kernel is built with the hermitian flag cleared.
type tdaOperator struct {
	space ExcitationSpace
	eai   []float64
	mask  []bool
	nao   int
	orbO  [2]*mat.Dense
	orbV  [2]*mat.Dense
	vresp ResponseFunc
}

func newTDAOperator(mf *MeanField, sp ExcitationSpace, eai []float64, mask []bool) *tdaOperator {
	op := &tdaOperator{
		space: sp,
		eai:   eai,
		mask:  mask,
		nao:   mf.nao(),
		vresp: mf.Response(false),
	}
	for s := Spin(0); s < nspin; s++ {
		if sp.NPairs(s) == 0 {
			continue
		}
		op.orbO[s] = columns(mf.C[s], sp.OccIdx[s])
		op.orbV[s] = columns(mf.C[s], sp.VirIdx[s])
	}

	return op
}

// Apply maps a batch of single-excitation trial vectors to A·z. The same
// length, re-masking and batching contracts as responseOperator.Apply hold.
func (op *tdaOperator) Apply(zs [][]float64) [][]float64 {
	total := op.space.TotalPairs()
	nz := len(zs)

	var dms [2][]*mat.Dense
	for s := Spin(0); s < nspin; s++ {
		if op.space.NPairs(s) > 0 {
			dms[s] = make([]*mat.Dense, nz)
		}
	}

	masked := make([][]float64, nz)
	for i, z := range zs {
		if len(z) != total {
			panic(panicTrialLength)
		}
		zi := append([]float64(nil), z...)
		applyMask(zi, op.mask)
		masked[i] = zi

		for s := Spin(0); s < nspin; s++ {
			np := op.space.NPairs(s)
			if np == 0 {
				continue
			}
			off := op.space.offset(s)
			zmat := mat.NewDense(op.space.NVir(s), op.space.NOcc(s), append([]float64(nil), zi[off:off+np]...))

			var vo mat.Dense
			vo.Mul(op.orbV[s], zmat)
			dm := mat.NewDense(op.nao, op.nao, nil)
			dm.Mul(&vo, op.orbO[s].T())
			dms[s][i] = dm
		}
	}

	vs := op.vresp(dms)

	out := make([][]float64, nz)
	for i := range zs {
		hx := make([]float64, total)
		for s := Spin(0); s < nspin; s++ {
			np := op.space.NPairs(s)
			if np == 0 {
				continue
			}
			off := op.space.offset(s)

			var tv, vov mat.Dense
			tv.Mul(op.orbV[s].T(), vs[s][i])
			vov.Mul(&tv, op.orbO[s])
			flattenInto(hx[off:off+np], &vov)
		}
		for p := range hx {
			hx[p] += op.eai[p] * masked[i][p]
		}
		// The kernel back-transform can leave nonzero values at forbidden
		// positions; unlike the reduced operator there is no final d-scale
		// to zero them, so the output is masked explicitly to keep the
		// action symmetric on the allowed subspace.
		applyMask(hx, op.mask)
		out[i] = hx
	}

	return out
}

// SolveTDA computes excitation energies and X amplitudes within the
// Tamm–Dancoff approximation A X = w X for the same non-hybrid unrestricted
// reference. States carry X amplitudes only (Y is nil), normalized to
// ΣX² = 1 over both spins.
//
// The entry contracts of SolveNoHybrid apply unchanged, including the
// hybrid-functional rejection: the A-block diagonal used here assumes the
// same local-kernel derivation.
func SolveTDA(mf *MeanField, opts Options) (*Result, error) {
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

	// For TDA the operator diagonal is e_ai itself (masked), which doubles
	// as the preconditioner.
	eai := orbGaps(mf, &sp)
	if mask != nil {
		applyMask(eai, mask)
	}
	op := newTDAOperator(mf, sp, eai, mask)

	log.Info("uks: TDA solve",
		"nstates", opts.NStates,
		"conv_tol", opts.ConvTol,
		"max_space", opts.MaxSpace,
		"lindep", opts.Lindep,
		"wfnsym", opts.WfnSym,
		"npairs_alpha", sp.NPairs(Alpha),
		"npairs_beta", sp.NPairs(Beta),
	)

	guess := initialGuess(eai, mask, opts.NStates)
	dres, err := davidson.Solve(op.Apply, guess, eai, davidson.Options{
		Tol:      opts.ConvTol,
		NRoots:   len(guess),
		MaxSpace: opts.MaxSpace,
		Lindep:   opts.Lindep,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Converged: dres.Converged,
		Energies:  make([]float64, 0, len(dres.Eigenvalues)),
		States:    make([]Eigenpair, 0, len(dres.Eigenvalues)),
	}
	for i, w := range dres.Eigenvalues {
		x := append([]float64(nil), dres.Eigenvectors[i]...)
		norm := floats.Dot(x, x)
		if norm <= 0 {
			continue
		}
		floats.Scale(1/math.Sqrt(norm), x)
		res.Energies = append(res.Energies, w)
		res.States = append(res.States, Eigenpair{
			Energy: w,
			X:      splitSpins(&sp, x),
		})
	}

	log.Info("uks: TDA done",
		"converged", res.Converged,
		"accepted", len(res.Energies),
	)
	persist(opts.Checkpoint, log, res)

	return res, nil
}
