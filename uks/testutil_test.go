package uks

import (
	"gonum.org/v1/gonum/mat"
)

// modelMeanField builds a synthetic non-hybrid reference with orthonormal
// (identity) orbitals: nmo == nao, per-spin orbital energies given
// explicitly, and the first nocc[s] orbitals occupied. With identity
// coefficients the AO and MO pictures coincide, so operator algebra has
// closed forms the tests can check exactly.
func modelMeanField(energies [2][]float64, nocc [2]int, kernel ResponseBuilder) *MeanField {
	mf := &MeanField{Response: kernel}
	for s := 0; s < nspin; s++ {
		nmo := len(energies[s])
		c := mat.NewDense(nmo, nmo, nil)
		occ := make([]float64, nmo)
		for i := 0; i < nmo; i++ {
			c.Set(i, i, 1)
			if i < nocc[s] {
				occ[i] = 1
			}
		}
		mf.C[s] = c
		mf.MOEnergy[s] = append([]float64(nil), energies[s]...)
		mf.Occ[s] = occ
	}

	return mf
}

// closedShellEnergies is a small HF/6-31G-flavoured ladder shared by the
// end-to-end tests: two occupied and four virtual orbitals per spin.
var closedShellEnergies = []float64{-1.10, -0.55, 0.25, 0.60, 1.10, 1.80}

func closedShellModel(kernel ResponseBuilder) *MeanField {
	return modelMeanField(
		[2][]float64{closedShellEnergies, closedShellEnergies},
		[2]int{2, 2},
		kernel,
	)
}

// zeroKernel returns a response builder whose kernel vanishes: the operator
// becomes diagonal and excitation energies equal the raw orbital gaps.
func zeroKernel() ResponseBuilder {
	return func(bool) ResponseFunc {
		return func(dms [2][]*mat.Dense) [2][]*mat.Dense {
			var out [2][]*mat.Dense
			for s := range dms {
				if dms[s] == nil {
					continue
				}
				out[s] = make([]*mat.Dense, len(dms[s]))
				for i, dm := range dms[s] {
					r, c := dm.Dims()
					out[s][i] = mat.NewDense(r, c, nil)
				}
			}

			return out
		}
	}
}

// chargeKernel returns a Hartree-flavoured rank-one kernel
//
//	v[s] = λ · ( Σ_spins Σ_μν dm[μν] ) · 1
//
// which couples every pair with every other, across spins. For identity
// orbitals the scaled Hessian then takes the closed form
// diag(e_ai²) + 2λ·d·dᵀ, which the solve tests diagonalize densely as an
// independent reference.
func chargeKernel(lambda float64) ResponseBuilder {
	return func(bool) ResponseFunc {
		return func(dms [2][]*mat.Dense) [2][]*mat.Dense {
			nz := 0
			for s := range dms {
				if len(dms[s]) > nz {
					nz = len(dms[s])
				}
			}
			charges := make([]float64, nz)
			nao := 0
			for s := range dms {
				for i, dm := range dms[s] {
					charges[i] += mat.Sum(dm)
					if r, _ := dm.Dims(); r > nao {
						nao = r
					}
				}
			}

			var out [2][]*mat.Dense
			for s := range dms {
				if dms[s] == nil {
					continue
				}
				out[s] = make([]*mat.Dense, len(dms[s]))
				for i := range dms[s] {
					v := mat.NewDense(nao, nao, nil)
					for r := 0; r < nao; r++ {
						for c := 0; c < nao; c++ {
							v.Set(r, c, lambda*charges[i])
						}
					}
					out[s][i] = v
				}
			}

			return out
		}
	}
}

// unitVector returns a length-n vector with a one at position p.
func unitVector(n, p int) []float64 {
	v := make([]float64, n)
	v[p] = 1

	return v
}
