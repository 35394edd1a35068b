// Package chkfile persists solver results in an embedded key-value
// checkpoint store backed by BadgerDB.
//
// The store implements the uks.Checkpoint contract: gob-encoded values
// under string keys, last write wins. Disk-backed stores survive process
// restarts; the InMemory mode keeps everything in RAM and is intended for
// tests.
//
//	store, err := chkfile.Open(chkfile.Config{Path: "water.chk"})
//	if err != nil { ... }
//	defer store.Close()
//
//	_, err = uks.SolveNoHybrid(mf, uks.Options{Checkpoint: store})
//
//	var energies []float64
//	err = store.Load(uks.ChkEnergies, &energies)
package chkfile
