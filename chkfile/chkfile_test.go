package chkfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcgo/casida/chkfile"
	"github.com/qcgo/casida/uks"
)

var _ uks.Checkpoint = (*chkfile.Store)(nil)

func openInMemory(t *testing.T) *chkfile.Store {
	t.Helper()
	st, err := chkfile.Open(chkfile.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// TestStore_RoundTrip: a saved value decodes back identically, including
// the amplitude record layout the solvers persist.
func TestStore_RoundTrip(t *testing.T) {
	st := openInMemory(t)

	energies := []float64{0.281, 0.354, 0.417}
	require.NoError(t, st.Save(uks.ChkEnergies, energies))

	var back []float64
	require.NoError(t, st.Load(uks.ChkEnergies, &back))
	assert.Equal(t, energies, back)

	recs := []uks.AmplitudeRecord{{
		Energy: 0.281,
		X: [2]uks.MatrixRecord{
			{Rows: 2, Cols: 1, Data: []float64{0.9, 0.1}},
			{Rows: 1, Cols: 1, Data: []float64{0.4}},
		},
	}}
	require.NoError(t, st.Save(uks.ChkAmplitudes, recs))

	var recsBack []uks.AmplitudeRecord
	require.NoError(t, st.Load(uks.ChkAmplitudes, &recsBack))
	assert.Equal(t, recs, recsBack)
}

// TestStore_OverwriteReplaces: saving under an existing key replaces the
// value, mirroring repeated solves writing to one checkpoint.
func TestStore_OverwriteReplaces(t *testing.T) {
	st := openInMemory(t)

	require.NoError(t, st.Save("tddft/e", []float64{1, 2}))
	require.NoError(t, st.Save("tddft/e", []float64{3}))

	var back []float64
	require.NoError(t, st.Load("tddft/e", &back))
	assert.Equal(t, []float64{3}, back)
}

// TestStore_MissingKey maps the backend's not-found to the package
// sentinel.
func TestStore_MissingKey(t *testing.T) {
	st := openInMemory(t)

	var dst []float64
	err := st.Load("tddft/absent", &dst)
	assert.ErrorIs(t, err, chkfile.ErrKeyNotFound)
}

// TestStore_UseAfterClose: every operation on a closed store reports
// ErrClosed, including a second Close.
func TestStore_UseAfterClose(t *testing.T) {
	st, err := chkfile.Open(chkfile.Config{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	assert.ErrorIs(t, st.Save("k", 1), chkfile.ErrClosed)

	var dst int
	assert.ErrorIs(t, st.Load("k", &dst), chkfile.ErrClosed)
	assert.ErrorIs(t, st.Close(), chkfile.ErrClosed)
}

// TestStore_OnDisk exercises the persistent path: values written before
// Close survive a reopen from the same directory.
func TestStore_OnDisk(t *testing.T) {
	dir := t.TempDir()

	st, err := chkfile.Open(chkfile.Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, st.Save("tddft/e", []float64{0.5}))
	require.NoError(t, st.Close())

	st, err = chkfile.Open(chkfile.Config{Path: dir})
	require.NoError(t, err)
	defer st.Close()

	var back []float64
	require.NoError(t, st.Load("tddft/e", &back))
	assert.Equal(t, []float64{0.5}, back)
}
