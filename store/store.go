/*
Package store provides the persistent key-value storage of the review network.

Store is the only holder of durable state. It wraps a neo-go storage backend
(in-memory, BoltDB or LevelDB) and executes every state transition as an
atomic unit: changes are collected in a memory-cached snapshot and either
persisted all at once or dropped. Units are executed one at a time.
*/
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"go.uber.org/zap"
)

// Store is the persistent storage of the network.
//
// Store must be constructed using New or Open.
type Store struct {
	log *zap.Logger

	mtx sync.Mutex
	db  storage.Store
}

// New returns Store backed by the given storage. Nil logger disables logging.
func New(db storage.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		log: log,
		db:  db,
	}
}

// NewMemory returns Store backed by a fresh in-memory storage.
func NewMemory(log *zap.Logger) *Store {
	return New(storage.NewMemoryStore(), log)
}

// Open opens storage backend described by cfg.
func Open(cfg dbconfig.DBConfiguration, log *zap.Logger) (*Store, error) {
	db, err := storage.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Type, err)
	}

	return New(db, log), nil
}

// Execute runs f against a new snapshot of the storage. If f succeeds, all
// changes are persisted, otherwise they are dropped. Panics in f are turned
// into errors and also drop the changes. Execute calls are serialized.
func (s *Store) Execute(f func(snapshot *storage.MemCachedStore) error) error {
	return s.Transact(func(snapshot *storage.MemCachedStore) (bool, error) {
		return true, f(snapshot)
	})
}

// View runs f against a snapshot of the storage and drops all changes.
func (s *Store) View(f func(snapshot *storage.MemCachedStore) error) error {
	return s.Transact(func(snapshot *storage.MemCachedStore) (bool, error) {
		return false, f(snapshot)
	})
}

// Transact is a generalized Execute: f decides whether successful changes
// are persisted.
func (s *Store) Transact(f func(snapshot *storage.MemCachedStore) (bool, error)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	snapshot := storage.NewMemCachedStore(s.db)

	persist, err := run(snapshot, f)
	if err != nil || !persist {
		return err
	}

	n, err := snapshot.PersistSync()
	if err != nil {
		return fmt.Errorf("persist changes: %w", err)
	}

	s.log.Debug("changes persisted", zap.Int("items", n))

	return nil
}

// ErrPanic wraps values recovered from the panicking units.
var ErrPanic = errors.New("unit panicked")

func run(snapshot *storage.MemCachedStore, f func(*storage.MemCachedStore) (bool, error)) (persist bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			persist, err = false, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return f(snapshot)
}

// Iterate passes all stored items with the given key prefix into f in
// ascending key order until f returns false. Empty prefix selects storage
// items of all namespaces.
func (s *Store) Iterate(prefix []byte, f func(key, value []byte) bool) {
	if len(prefix) == 0 {
		prefix = []byte{byte(storage.STStorage)}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.db.Seek(storage.SeekRange{Prefix: prefix}, f)
}

// Close closes the underlying storage.
func (s *Store) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.db.Close()
}
