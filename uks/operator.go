package uks

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// responseOperator is the matrix-free action of the scaled orbital Hessian
// (A-B)^½(A+B)(A-B)^½ for a non-hybrid reference. It owns every vector the
// action needs (diagonal basis, symmetry mask, occupied/virtual coefficient
// blocks, response kernel) so the batch-apply contract is testable in
// isolation; no hidden captured state.
//
// Per trial vector z the action is
//
//	H z = d · ( K_ov(d·z) + e_ai · d · z )
//
// where K_ov is the occupied-virtual MO block of the AO response potential
// generated by the symmetrized transition density C_vir Z C_occᵀ + h.c.
type responseOperator struct {
	space ExcitationSpace
	basis diagonalBasis
	mask  []bool
	nao   int

	// orbO and orbV are the occupied/virtual coefficient blocks per spin;
	// nil for spin channels with zero excitation pairs.
	orbO [2]*mat.Dense
	orbV [2]*mat.Dense

	vresp ResponseFunc
}

// newResponseOperator assembles the operator value for one solve. The
// response kernel is built with the hermitian flag set: the densities this
// operator produces are explicitly symmetrized.
func newResponseOperator(mf *MeanField, sp ExcitationSpace, basis diagonalBasis, mask []bool) *responseOperator {
	op := &responseOperator{
		space: sp,
		basis: basis,
		mask:  mask,
		nao:   mf.nao(),
		vresp: mf.Response(true),
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

// Apply maps a batch of trial vectors to the scaled Hessian action. Every
// input vector must span the concatenated alpha++beta pair space; a wrong
// length is a caller/solver contract violation and panics.
//
// Trial vectors are re-masked on every invocation before any scaling, so a
// solver that does not preserve the symmetry subspace still receives a
// consistent operator. The two spin densities of all nz vectors go to the
// response kernel in one batched call; correctness does not depend on the
// batch size.
func (op *responseOperator) Apply(zs [][]float64) [][]float64 {
	total := op.space.TotalPairs()
	nz := len(zs)

	var dms [2][]*mat.Dense
	for s := Spin(0); s < nspin; s++ {
		if op.space.NPairs(s) > 0 {
			dms[s] = make([]*mat.Dense, nz)
		}
	}

	// masked keeps the symmetry-cleaned copy of each trial vector for the
	// diagonal term below; inputs are never mutated.
	masked := make([][]float64, nz)
	scaled := make([]float64, total)
	for i, z := range zs {
		if len(z) != total {
			panic(panicTrialLength)
		}
		zi := append([]float64(nil), z...)
		applyMask(zi, op.mask)
		masked[i] = zi

		floats.MulTo(scaled, op.basis.d, zi)
		for s := Spin(0); s < nspin; s++ {
			np := op.space.NPairs(s)
			if np == 0 {
				continue
			}
			off := op.space.offset(s)
			zmat := mat.NewDense(op.space.NVir(s), op.space.NOcc(s), append([]float64(nil), scaled[off:off+np]...))

			var vo, dm mat.Dense
			vo.Mul(op.orbV[s], zmat)
			dm.Mul(&vo, op.orbO[s].T())

			// The kernel expects Hermitian densities for a real symmetric
			// single-excitation operator.
			sym := mat.NewDense(op.nao, op.nao, nil)
			sym.Add(&dm, dm.T())
			dms[s][i] = sym
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
			hx[p] = (hx[p] + op.basis.ed[p]*masked[i][p]) * op.basis.d[p]
		}
		out[i] = hx
	}

	return out
}

// applyMask zeroes forbidden positions in place; nil mask is a no-op.
func applyMask(z []float64, mask []bool) {
	if mask == nil {
		return
	}
	for p, forbidden := range mask {
		if forbidden {
			z[p] = 0
		}
	}
}

// columns copies the selected columns of m, in idx order.
func columns(m *mat.Dense, idx []int) *mat.Dense {
	r, _ := m.Dims()
	out := mat.NewDense(r, len(idx), nil)
	for j, c := range idx {
		for i := 0; i < r; i++ {
			out.Set(i, j, m.At(i, c))
		}
	}

	return out
}

// flattenInto writes m row-major into dst; dst length must equal r*c.
func flattenInto(dst []float64, m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		copy(dst[i*c:(i+1)*c], m.RawRowView(i))
	}
}
