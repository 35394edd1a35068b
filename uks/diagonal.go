package uks

import "math"

// diagonalBasis carries the closed-form orbital-energy-difference vectors
// shared by the operator, the preconditioner and the initial guess. All
// four slices span the concatenated alpha++beta pair space and are
// read-only once built.
type diagonalBasis struct {
	// eai holds virtual-minus-occupied orbital energy gaps, with entries
	// at symmetry-forbidden pairs forced to zero.
	eai []float64
	// d = sqrt(eai); rescales trial vectors into the symmetrized metric.
	d []float64
	// ed = eai * d; the diagonal term of the scaled Hessian action.
	ed []float64
	// hdiag = eai²; the preconditioner state exposed to the eigensolver.
	hdiag []float64
}

// newDiagonalBasis derives the diagonal basis from the mean-field orbital
// energies and the excitation space. Masked entries are zeroed in eai
// before the square root is taken, so forbidden channels contribute exact
// zeros rather than NaNs to every derived vector.
func newDiagonalBasis(mf *MeanField, sp *ExcitationSpace, mask []bool) diagonalBasis {
	eai := orbGaps(mf, sp)
	if mask != nil {
		for p, forbidden := range mask {
			if forbidden {
				eai[p] = 0
			}
		}
	}

	n := len(eai)
	b := diagonalBasis{
		eai:   eai,
		d:     make([]float64, n),
		ed:    make([]float64, n),
		hdiag: make([]float64, n),
	}
	for p, e := range eai {
		d := math.Sqrt(e)
		b.d[p] = d
		b.ed[p] = e * d
		b.hdiag[p] = e * e
	}

	return b
}

// orbGaps returns the raw (unmasked) virtual-minus-occupied energy gaps
// over the concatenated pair space, row-major (virtual × occupied) per
// spin. The eigenpair reconstruction reuses this unmasked vector.
func orbGaps(mf *MeanField, sp *ExcitationSpace) []float64 {
	gaps := make([]float64, sp.TotalPairs())
	for s := Spin(0); s < nspin; s++ {
		off := sp.offset(s)
		nocc := sp.NOcc(s)
		for a, va := range sp.VirIdx[s] {
			for i, oi := range sp.OccIdx[s] {
				gaps[off+a*nocc+i] = mf.MOEnergy[s][va] - mf.MOEnergy[s][oi]
			}
		}
	}

	return gaps
}
