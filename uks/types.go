package uks

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// Spin indexes the two channels of an unrestricted reference.
type Spin int

const (
	// Alpha is the majority spin channel.
	Alpha Spin = iota
	// Beta is the minority spin channel.
	Beta

	nspin = 2
)

// ResponseFunc evaluates the density-functional linear response.
// It receives, per spin, a batch of AO-basis transition density matrices and
// returns AO-basis potential matrices of identical shape. It must be a pure
// function of its input densities and the fixed mean-field reference.
//
// A spin channel with zero excitation pairs is passed as a nil slice and
// must come back nil; individual entries are never nil otherwise.
type ResponseFunc func(dms [2][]*mat.Dense) [2][]*mat.Dense

// ResponseBuilder constructs a ResponseFunc for the mean-field reference.
// The hermitian flag tells the kernel whether the incoming densities are
// symmetric (the reduced problem symmetrizes them; the Tamm–Dancoff variant
// does not).
type ResponseBuilder func(hermitian bool) ResponseFunc

// MeanField is the converged unrestricted Kohn-Sham reference consumed by
// the solvers. It is read-only for the duration of a solve; nothing in this
// package mutates or caches it across calls.
type MeanField struct {
	// C holds the AO×MO orbital coefficient matrix per spin.
	C [2]*mat.Dense

	// MOEnergy holds orbital energies per spin, ordered by orbital index
	// (the same ordering as the columns of C, not sorted by value).
	MOEnergy [2][]float64

	// Occ holds occupation numbers per spin. An orbital is occupied when
	// its occupation is > 0 and virtual when it is exactly 0.
	Occ [2][]float64

	// Hybrid classifies the exchange-correlation functional. True means
	// the functional carries a fraction of exact exchange and the reduced
	// solver must refuse it.
	Hybrid bool

	// Symmetry reports whether molecular point-group symmetry is enabled.
	// Orbital symmetry filtering is only active when Symmetry is true and
	// a target irrep was requested in Options.
	Symmetry bool

	// OrbSym holds per-orbital irrep labels per spin; consulted only when
	// Symmetry is true.
	OrbSym [2][]int

	// Response builds the linear-response kernel evaluator.
	Response ResponseBuilder
}

// nao returns the AO dimension of the reference.
func (mf *MeanField) nao() int {
	r, _ := mf.C[Alpha].Dims()

	return r
}

// validate checks the structural invariants of the reference: coefficient
// column counts must equal energy and occupation vector lengths per spin,
// and a response builder must be present.
func (mf *MeanField) validate() error {
	if mf.Response == nil {
		return ErrNoResponse
	}
	for s := 0; s < nspin; s++ {
		if mf.C[s] == nil {
			return ErrShapeMismatch
		}
		_, nmo := mf.C[s].Dims()
		if len(mf.MOEnergy[s]) != nmo || len(mf.Occ[s]) != nmo {
			return ErrShapeMismatch
		}
		if mf.Symmetry && len(mf.OrbSym[s]) != nmo {
			return ErrShapeMismatch
		}
	}

	return nil
}

// ExcitationSpace is the per-spin occupied/virtual orbital partition,
// derived once per solve and immutable for its duration.
type ExcitationSpace struct {
	// OccIdx lists occupied orbital indices per spin, original ordering.
	OccIdx [2][]int
	// VirIdx lists virtual orbital indices per spin, original ordering.
	VirIdx [2][]int
}

// NOcc returns the occupied count for spin s.
func (sp *ExcitationSpace) NOcc(s Spin) int { return len(sp.OccIdx[s]) }

// NVir returns the virtual count for spin s.
func (sp *ExcitationSpace) NVir(s Spin) int { return len(sp.VirIdx[s]) }

// NPairs returns the occupied-virtual pair count for spin s.
func (sp *ExcitationSpace) NPairs(s Spin) int { return sp.NOcc(s) * sp.NVir(s) }

// TotalPairs returns the length of the concatenated alpha++beta pair space.
func (sp *ExcitationSpace) TotalPairs() int {
	return sp.NPairs(Alpha) + sp.NPairs(Beta)
}

// offset returns the start of spin s inside the concatenated pair space.
func (sp *ExcitationSpace) offset(s Spin) int {
	if s == Beta {
		return sp.NPairs(Alpha)
	}

	return 0
}

// Eigenpair is one accepted excited state: a positive excitation energy and
// per-spin amplitude matrices in the (virtual × occupied) convention.
//
// For SolveNoHybrid the pair satisfies ΣX² - ΣY² = 1 summed over spins.
// For SolveTDA the Y matrices are nil and ΣX² = 1.
// A spin channel with zero excitation pairs has nil X and Y entries.
type Eigenpair struct {
	// Energy is the vertical excitation energy in Hartree.
	Energy float64
	// X holds excitation amplitudes per spin (virtual × occupied).
	X [2]*mat.Dense
	// Y holds de-excitation amplitudes per spin (virtual × occupied).
	Y [2]*mat.Dense
}

// Result is the outcome of one solve.
type Result struct {
	// Converged reports whether the eigensolver met its tolerance for all
	// requested roots. A false value is a degraded result, not an error:
	// the accepted states are still returned and persisted.
	Converged bool

	// Energies lists accepted excitation energies, ascending (ordering
	// inherited from the eigensolver, with discarded modes skipped).
	Energies []float64

	// States lists the accepted Eigenpairs parallel to Energies.
	States []Eigenpair
}

// Recognized option defaults.
const (
	// DefaultNStates is the number of excited states requested when
	// Options.NStates is zero.
	DefaultNStates = 3

	// DefaultConvTol is the eigensolver convergence tolerance.
	DefaultConvTol = 1e-9

	// DefaultMaxSpace caps the eigensolver subspace dimension.
	DefaultMaxSpace = 50

	// DefaultLindep is the linear-dependence threshold below which new
	// subspace directions are dropped.
	DefaultLindep = 1e-12

	// NoIrrep disables wavefunction symmetry filtering.
	NoIrrep = -1
)

// Options configures a solve. The zero value is usable: zero or negative
// numeric fields fall back to the documented defaults and WfnSym zero means
// the totally symmetric irrep, so DefaultOptions should be used as the
// starting point whenever symmetry filtering is not wanted.
type Options struct {
	// NStates is the requested root count (default DefaultNStates).
	NStates int

	// ConvTol is the eigensolver convergence tolerance (default
	// DefaultConvTol).
	ConvTol float64

	// MaxSpace caps the eigensolver subspace size (default
	// DefaultMaxSpace).
	MaxSpace int

	// Lindep is the linear-dependence threshold (default DefaultLindep).
	Lindep float64

	// WfnSym is the target irrep label for symmetry filtering, or NoIrrep
	// to disable. Only effective when the mean-field has Symmetry set.
	WfnSym int

	// Checkpoint, when non-nil, receives converged energies and amplitude
	// pairs under the fixed keys ChkEnergies and ChkAmplitudes. Write
	// failures are logged and never affect the returned result.
	Checkpoint Checkpoint

	// Logger, when non-nil, receives structured progress records.
	Logger *slog.Logger
}

// DefaultOptions returns the documented defaults with symmetry filtering
// disabled.
func DefaultOptions() Options {
	return Options{
		NStates:  DefaultNStates,
		ConvTol:  DefaultConvTol,
		MaxSpace: DefaultMaxSpace,
		Lindep:   DefaultLindep,
		WfnSym:   NoIrrep,
	}
}

// normalize resolves zero and negative fields to the documented defaults.
func (o Options) normalize() Options {
	if o.NStates <= 0 {
		o.NStates = DefaultNStates
	}
	if o.ConvTol <= 0 {
		o.ConvTol = DefaultConvTol
	}
	if o.MaxSpace <= 0 {
		o.MaxSpace = DefaultMaxSpace
	}
	if o.Lindep <= 0 {
		o.Lindep = DefaultLindep
	}

	return o
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(discardHandler{})
}
