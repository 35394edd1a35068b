package uks

// BuildExcitationSpace partitions every orbital of each spin channel into
// occupied (occupation > 0) and virtual (occupation == 0), preserving the
// original orbital ordering.
//
// Occupations are assumed binary (0 or one positive constant). Fractional
// occupations are not supported and are silently classified as occupied.
//
// Complexity: O(nmo) per spin.
func BuildExcitationSpace(occ [2][]float64) ExcitationSpace {
	var sp ExcitationSpace
	for s := 0; s < nspin; s++ {
		for i, n := range occ[s] {
			if n > 0 {
				sp.OccIdx[s] = append(sp.OccIdx[s], i)
			} else {
				sp.VirIdx[s] = append(sp.VirIdx[s], i)
			}
		}
	}

	return sp
}

// symmetryMask builds the boolean forbidden-pair mask over the concatenated
// (alpha-pairs ++ beta-pairs) space, or nil when filtering is inactive.
//
// A pair (a, i) is forbidden when the direct-product reduction of its
// orbital irreps, computed as the label XOR in the working point group,
// differs from the target irrep wfnsym. Pair p for spin s is indexed
// a*nocc+i with a running over VirIdx positions and i over OccIdx
// positions, matching the row-major (virtual × occupied) reshape used by
// the operator.
func symmetryMask(mf *MeanField, sp *ExcitationSpace, wfnsym int) []bool {
	if !mf.Symmetry || wfnsym == NoIrrep {
		return nil
	}

	mask := make([]bool, sp.TotalPairs())
	for s := Spin(0); s < nspin; s++ {
		off := sp.offset(s)
		nocc := sp.NOcc(s)
		for a, va := range sp.VirIdx[s] {
			for i, oi := range sp.OccIdx[s] {
				if mf.OrbSym[s][va]^mf.OrbSym[s][oi] != wfnsym {
					mask[off+a*nocc+i] = true
				}
			}
		}
	}

	return mask
}
