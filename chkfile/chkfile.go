package chkfile

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrClosed is returned when the store has already been closed.
	ErrClosed = errors.New("chkfile: store is closed")

	// ErrKeyNotFound is returned by Load for a missing key.
	ErrKeyNotFound = errors.New("chkfile: key not found")
)

// Config describes one checkpoint store.
type Config struct {
	// Path is the directory for the database files. Ignored when InMemory
	// is set.
	Path string

	// InMemory keeps the store in RAM with no disk persistence. Intended
	// for tests.
	InMemory bool

	// SyncWrites forces synchronous writes for durability. Has no effect
	// in InMemory mode.
	SyncWrites bool
}

// Store is a gob-over-Badger key-value checkpoint sink. It satisfies the
// uks.Checkpoint interface and is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open creates or reopens a checkpoint store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	// Badger's own chatter is noise at this layer.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Save gob-encodes value and writes it under key, overwriting any prior
// value for the same key.
func (s *Store) Save(key string, value any) error {
	if s.db == nil {
		return ErrClosed
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf.Bytes())
	})
}

// Load reads the value stored under key into dst, which must be a pointer
// to the saved type. Returns ErrKeyNotFound for missing keys.
func (s *Store) Load(key string, dst any) error {
	if s.db == nil {
		return ErrClosed
	}

	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(raw []byte) error {
			return gob.NewDecoder(bytes.NewReader(raw)).Decode(dst)
		})
	})
}

// Close flushes and closes the underlying database. The store is unusable
// afterwards.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil

	return err
}
