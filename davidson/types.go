package davidson

import (
	"errors"
	"log/slog"
)

// Operator maps a batch of trial vectors to the action of a real symmetric
// operator, one result vector per input vector, same length. It must be a
// pure function of its inputs.
type Operator func(zs [][]float64) [][]float64

var (
	// ErrEmptyGuess is returned when no initial guess vector is supplied.
	ErrEmptyGuess = errors.New("davidson: empty initial guess")

	// ErrDimensionMismatch is returned when guess vectors and the diagonal
	// disagree in length.
	ErrDimensionMismatch = errors.New("davidson: guess/diagonal dimension mismatch")

	// ErrEigenFailed indicates that the dense subspace eigendecomposition
	// did not converge; the subspace is numerically broken.
	ErrEigenFailed = errors.New("davidson: subspace eigendecomposition failed")
)

// Documented defaults, applied by Options.normalize for zero/negative
// fields.
const (
	// DefaultTol is the residual-norm convergence tolerance.
	DefaultTol = 1e-9

	// DefaultMaxIter bounds the number of expansion sweeps.
	DefaultMaxIter = 50

	// DefaultMaxSpace caps the subspace dimension before a collapse onto
	// the current Ritz vectors.
	DefaultMaxSpace = 12

	// DefaultLindep drops new directions whose squared norm after
	// re-orthogonalization falls at or below this threshold.
	DefaultLindep = 1e-14
)

// Options configures one Solve call.
type Options struct {
	// Tol is the per-root residual-norm convergence tolerance.
	Tol float64

	// NRoots is the number of lowest eigenpairs to converge. Values below
	// one default to the guess batch size.
	NRoots int

	// MaxIter bounds the number of expansion sweeps (default
	// DefaultMaxIter).
	MaxIter int

	// MaxSpace caps the subspace dimension (default DefaultMaxSpace,
	// always clamped to at least NRoots+1 and to the problem dimension).
	MaxSpace int

	// Lindep is the linear-dependence drop threshold (default
	// DefaultLindep).
	Lindep float64

	// Logger, when non-nil, receives per-sweep Debug records.
	Logger *slog.Logger
}

// Result is the outcome of one Solve call.
type Result struct {
	// Converged reports whether all requested roots met Tol.
	Converged bool

	// Eigenvalues holds the NRoots lowest Ritz values, ascending.
	Eigenvalues []float64

	// Eigenvectors holds unit-norm Ritz vectors parallel to Eigenvalues.
	Eigenvectors [][]float64
}

func (o Options) normalize(nguess, dim int) Options {
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.NRoots <= 0 {
		o.NRoots = nguess
	}
	if o.NRoots > dim {
		o.NRoots = dim
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.MaxSpace <= 0 {
		o.MaxSpace = DefaultMaxSpace
	}
	if o.MaxSpace < o.NRoots+1 {
		o.MaxSpace = o.NRoots + 1
	}
	if o.MaxSpace > dim {
		o.MaxSpace = dim
	}
	if o.Lindep <= 0 {
		o.Lindep = DefaultLindep
	}

	return o
}
