// Package uks: sentinel error set.
// All user-triggered error conditions return these sentinels and are matched
// with errors.Is. Panics are reserved for programmer errors (a trial vector
// whose length disagrees with the excitation space is a caller/solver
// contract violation, not a user error).

package uks

import "errors"

var (
	// ErrNilMeanField is returned when the mean-field reference is nil.
	ErrNilMeanField = errors.New("uks: nil mean-field reference")

	// ErrHybridFunctional rejects hybrid exchange-correlation references.
	// The (A-B)(A+B) reduction assumes a purely local/semi-local kernel;
	// running it against a hybrid functional would silently produce wrong
	// physics, so the driver refuses before building any state.
	ErrHybridFunctional = errors.New("uks: hybrid functional cannot be used with the (A-B)(A+B) reduction")

	// ErrShapeMismatch indicates that orbital coefficients, energies and
	// occupations disagree in length for some spin channel.
	ErrShapeMismatch = errors.New("uks: orbital coefficient/energy/occupation shape mismatch")

	// ErrNoResponse indicates that the mean-field carries no response
	// kernel builder.
	ErrNoResponse = errors.New("uks: mean-field has no response builder")

	// ErrEmptySpace indicates that no occupied-virtual excitation pair
	// exists in either spin channel.
	ErrEmptySpace = errors.New("uks: empty excitation space")

	// ErrNotImplemented marks intentionally unsupported methods (analytic
	// nuclear gradients). Never silently approximated.
	ErrNotImplemented = errors.New("uks: not implemented")
)

// panicTrialLength is the stable panic message for malformed trial-vector
// shapes handed to an operator (programmer error).
const panicTrialLength = "uks: trial vector length does not match excitation space"
