package uks

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// Fixed logical checkpoint keys. A new solve overwrites prior values for
// the same keys.
const (
	// ChkEnergies stores the accepted excitation energies ([]float64).
	ChkEnergies = "tddft/e"
	// ChkAmplitudes stores the accepted amplitude pairs
	// ([]AmplitudeRecord).
	ChkAmplitudes = "tddft/xy"
)

// Checkpoint is the key-value persistence sink for converged spectra.
// Implementations must overwrite existing values for a repeated key.
// See package chkfile for an embedded-store implementation.
type Checkpoint interface {
	Save(key string, value any) error
}

// MatrixRecord is a plain, codec-friendly snapshot of one amplitude block
// in row-major order. A zero-pair spin channel snapshots as Rows==0.
type MatrixRecord struct {
	Rows, Cols int
	Data       []float64
}

// AmplitudeRecord is the persisted form of one Eigenpair.
type AmplitudeRecord struct {
	Energy float64
	X      [2]MatrixRecord
	Y      [2]MatrixRecord
}

// Snapshot converts accepted states into persisted records.
func Snapshot(states []Eigenpair) []AmplitudeRecord {
	recs := make([]AmplitudeRecord, len(states))
	for i, st := range states {
		recs[i].Energy = st.Energy
		for s := 0; s < nspin; s++ {
			recs[i].X[s] = matrixRecord(st.X[s])
			recs[i].Y[s] = matrixRecord(st.Y[s])
		}
	}

	return recs
}

func matrixRecord(m *mat.Dense) MatrixRecord {
	if m == nil {
		return MatrixRecord{}
	}
	r, c := m.Dims()
	rec := MatrixRecord{Rows: r, Cols: c, Data: make([]float64, 0, r*c)}
	for i := 0; i < r; i++ {
		rec.Data = append(rec.Data, m.RawRowView(i)...)
	}

	return rec
}

// persist writes the result to the sink, if one is configured. The write is
// a side channel fully decoupled from the returned result: failures are
// logged and swallowed.
func persist(chk Checkpoint, log *slog.Logger, res *Result) {
	if chk == nil {
		return
	}
	if err := chk.Save(ChkEnergies, res.Energies); err != nil {
		log.Warn("uks: checkpoint write failed", "key", ChkEnergies, "err", err)

		return
	}
	if err := chk.Save(ChkAmplitudes, Snapshot(res.States)); err != nil {
		log.Warn("uks: checkpoint write failed", "key", ChkAmplitudes, "err", err)
	}
}
