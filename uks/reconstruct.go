package uks

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// reconstructNoHybrid inverse-transforms converged reduced eigenvectors
// into normalized (X, Y) amplitude pairs.
//
// For each reduced pair (w², z):
//
//	w  = sqrt(w²)
//	z± = sqrt(e_ai)·z  and  (w/sqrt(e_ai))·z
//	X  = (z+ + z-)/2,  Y = (z+ - z-)/2
//
// followed by rescaling to ΣX² - ΣY² = 1. Modes with w² < 0 or with a
// non-positive reconstructed norm are numerical artifacts of the reduced
// problem and are silently excluded; the surviving ordering matches the
// solver's ascending-eigenvalue order.
//
// The sqrt(e_ai) used here is recomputed from the raw gaps without the
// symmetry mask; forbidden modes never reach this stage because the operator
// keeps them at zero.
func reconstructNoHybrid(mf *MeanField, sp ExcitationSpace, w2 []float64, zs [][]float64) ([]float64, []Eigenpair) {
	dsqrt := orbGaps(mf, &sp)
	for p, e := range dsqrt {
		dsqrt[p] = math.Sqrt(e)
	}

	total := sp.TotalPairs()
	energies := make([]float64, 0, len(w2))
	states := make([]Eigenpair, 0, len(w2))
	for i, w2i := range w2 {
		if w2i < 0 {
			continue
		}
		w := math.Sqrt(w2i)

		x := make([]float64, total)
		y := make([]float64, total)
		for p, zp := range zs[i] {
			plus := dsqrt[p] * zp
			minus := w / dsqrt[p] * zp
			x[p] = (plus + minus) * 0.5
			y[p] = (plus - minus) * 0.5
		}

		norm := floats.Dot(x, x) - floats.Dot(y, y)
		if norm <= 0 {
			continue
		}
		scale := 1 / math.Sqrt(norm)
		floats.Scale(scale, x)
		floats.Scale(scale, y)

		states = append(states, Eigenpair{
			Energy: w,
			X:      splitSpins(&sp, x),
			Y:      splitSpins(&sp, y),
		})
		energies = append(energies, w)
	}

	return energies, states
}

// splitSpins cuts a concatenated pair-space vector into per-spin
// (virtual × occupied) matrices; zero-pair channels stay nil.
func splitSpins(sp *ExcitationSpace, v []float64) [2]*mat.Dense {
	var out [2]*mat.Dense
	for s := Spin(0); s < nspin; s++ {
		np := sp.NPairs(s)
		if np == 0 {
			continue
		}
		off := sp.offset(s)
		out[s] = mat.NewDense(sp.NVir(s), sp.NOcc(s), append([]float64(nil), v[off:off+np]...))
	}

	return out
}
