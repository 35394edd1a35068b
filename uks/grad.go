package uks

// NuclearGradient would compute analytic excited-state nuclear gradients
// for a solved state. The method is intentionally unimplemented: it always
// returns ErrNotImplemented and never silently approximates.
func NuclearGradient(mf *MeanField, res *Result, state int) ([]float64, error) {
	return nil, ErrNotImplemented
}
