package uks_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qcgo/casida/uks"
)

// ExampleSolveNoHybrid demonstrates a minimal solve on a synthetic
// unrestricted reference with orthonormal orbitals and a vanishing
// exchange-correlation kernel, where excitation energies reduce to the
// orbital gaps.
func ExampleSolveNoHybrid() {
	energies := []float64{-1.10, -0.55, 0.25, 0.60, 1.10, 1.80}
	nmo := len(energies)

	identity := mat.NewDense(nmo, nmo, nil)
	occ := make([]float64, nmo)
	for i := 0; i < nmo; i++ {
		identity.Set(i, i, 1)
		if i < 2 {
			occ[i] = 1
		}
	}

	zero := func(hermitian bool) uks.ResponseFunc {
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

	mf := &uks.MeanField{
		C:        [2]*mat.Dense{identity, identity},
		MOEnergy: [2][]float64{energies, energies},
		Occ:      [2][]float64{occ, occ},
		Response: zero,
	}

	res, err := uks.SolveNoHybrid(mf, uks.DefaultOptions())
	if err != nil {
		fmt.Println("solve failed:", err)

		return
	}

	fmt.Println("converged:", res.Converged)
	for _, w := range res.Energies {
		fmt.Printf("%.4f\n", w)
	}
	// Output:
	// converged: true
	// 0.8000
	// 0.8000
	// 1.1500
}
