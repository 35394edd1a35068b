package davidson

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// levelShiftFloor guards the diagonal preconditioner against near-zero
// denominators (θ crossing a diagonal entry).
const levelShiftFloor = 1e-12

// Solve finds the lowest opts.NRoots eigenpairs of the symmetric operator
// op, starting from the guess batch and preconditioning residuals with the
// operator diagonal diag.
//
// Returns ErrEmptyGuess / ErrDimensionMismatch for unusable inputs and
// ErrEigenFailed when the projected dense eigenproblem breaks down.
// Running out of iterations or stagnating is not an error: the best
// available Ritz pairs come back with Converged=false.
//
// Complexity per sweep: one operator application per new direction, plus
// O(k²·dim) subspace algebra for subspace size k ≤ MaxSpace.
func Solve(op Operator, guess [][]float64, diag []float64, opts Options) (Result, error) {
	if len(guess) == 0 {
		return Result{}, ErrEmptyGuess
	}
	dim := len(diag)
	for _, g := range guess {
		if len(g) != dim {
			return Result{}, ErrDimensionMismatch
		}
	}
	opts = opts.normalize(len(guess), dim)

	// V is the orthonormal subspace, W the operator action per column.
	// len(W) trails len(V); the gap is applied in one batched call.
	V := make([][]float64, 0, opts.MaxSpace)
	W := make([][]float64, 0, opts.MaxSpace)
	for _, g := range guess {
		appendOrtho(&V, append([]float64(nil), g...), opts.Lindep)
	}
	if len(V) == 0 {
		return Result{}, ErrEmptyGuess
	}

	var (
		theta []float64
		ritz  [][]float64
		conv  bool
	)
	for it := 1; it <= opts.MaxIter; it++ {
		if len(W) < len(V) {
			W = append(W, op(V[len(W):])...)
		}
		k := len(V)

		// Projected problem VᵀHV, solved densely.
		h := mat.NewSymDense(k, nil)
		for i := 0; i < k; i++ {
			for j := i; j < k; j++ {
				h.SetSym(i, j, floats.Dot(V[i], W[j]))
			}
		}
		var eig mat.EigenSym
		if !eig.Factorize(h, true) {
			return Result{}, ErrEigenFailed
		}
		vals := eig.Values(nil)
		var u mat.Dense
		eig.VectorsTo(&u)

		m := opts.NRoots
		if m > k {
			m = k
		}
		theta = append(theta[:0], vals[:m]...)
		ritz = ritz[:0]
		resid := make([][]float64, m)
		rnorm := make([]float64, m)
		for r := 0; r < m; r++ {
			x := make([]float64, dim)
			wx := make([]float64, dim)
			for j := 0; j < k; j++ {
				c := u.At(j, r)
				floats.AddScaled(x, c, V[j])
				floats.AddScaled(wx, c, W[j])
			}
			floats.AddScaled(wx, -vals[r], x)
			ritz = append(ritz, x)
			resid[r] = wx
			rnorm[r] = math.Sqrt(floats.Dot(wx, wx))
		}
		maxResid := floats.Max(rnorm)
		if opts.Logger != nil {
			opts.Logger.Debug("davidson: sweep",
				"iter", it, "space", k, "roots", m,
				"lowest", vals[0], "max_resid", maxResid)
		}

		conv = m == opts.NRoots && maxResid < opts.Tol
		if conv || it == opts.MaxIter {
			break
		}

		// Subspace full: collapse onto the Ritz vectors. W is rotated with
		// the same coefficients, so no operator reapplication is needed.
		if k >= opts.MaxSpace {
			newW := make([][]float64, m)
			for r := 0; r < m; r++ {
				w := make([]float64, dim)
				for j := 0; j < k; j++ {
					floats.AddScaled(w, u.At(j, r), W[j])
				}
				newW[r] = w
			}
			V = V[:0]
			for r := 0; r < m; r++ {
				V = append(V, append([]float64(nil), ritz[r]...))
			}
			W = newW
			k = len(V)
		}

		added := 0
		for r := 0; r < m && len(V) < opts.MaxSpace; r++ {
			if rnorm[r] < opts.Tol {
				continue
			}
			delta := make([]float64, dim)
			for p := 0; p < dim; p++ {
				den := theta[r] - diag[p]
				if math.Abs(den) < levelShiftFloor {
					den = levelShiftFloor
				}
				delta[p] = resid[r][p] / den
			}
			if appendOrtho(&V, delta, opts.Lindep) {
				added++
			}
		}
		if added == 0 {
			// Every candidate direction was linearly dependent; the
			// subspace cannot improve further.
			break
		}
	}

	return Result{Converged: conv, Eigenvalues: theta, Eigenvectors: ritz}, nil
}

// appendOrtho orthogonalizes v against V with two Gram–Schmidt passes,
// normalizes and appends it. Returns false (vector dropped) when the
// remaining squared norm is at or below lindep.
func appendOrtho(V *[][]float64, v []float64, lindep float64) bool {
	for pass := 0; pass < 2; pass++ {
		for _, b := range *V {
			if c := floats.Dot(b, v); c != 0 {
				floats.AddScaled(v, -c, b)
			}
		}
	}
	n2 := floats.Dot(v, v)
	if n2 <= lindep {
		return false
	}
	floats.Scale(1/math.Sqrt(n2), v)
	*V = append(*V, v)

	return true
}
