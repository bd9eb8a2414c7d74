package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func get(t *testing.T, s *Store, key string) []byte {
	var res []byte
	require.NoError(t, s.View(func(snapshot *storage.MemCachedStore) error {
		v, err := snapshot.Get([]byte(key))
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		res = v
		return err
	}))
	return res
}

func TestStore(t *testing.T) {
	s := NewMemory(zaptest.NewLogger(t))
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	require.NoError(t, s.Execute(func(snapshot *storage.MemCachedStore) error {
		snapshot.Put([]byte("a"), []byte{1})
		snapshot.Put([]byte("b"), []byte{2})
		return nil
	}))
	require.Equal(t, []byte{1}, get(t, s, "a"))

	t.Run("failed unit is dropped", func(t *testing.T) {
		errTest := errors.New("test")
		err := s.Execute(func(snapshot *storage.MemCachedStore) error {
			snapshot.Put([]byte("a"), []byte{10})
			snapshot.Delete([]byte("b"))
			return errTest
		})
		require.ErrorIs(t, err, errTest)
		require.Equal(t, []byte{1}, get(t, s, "a"))
		require.Equal(t, []byte{2}, get(t, s, "b"))
	})

	t.Run("panic is dropped", func(t *testing.T) {
		err := s.Execute(func(snapshot *storage.MemCachedStore) error {
			snapshot.Put([]byte("a"), []byte{10})
			panic("boom")
		})
		require.ErrorIs(t, err, ErrPanic)
		require.Equal(t, []byte{1}, get(t, s, "a"))
	})

	t.Run("view is dropped", func(t *testing.T) {
		require.NoError(t, s.View(func(snapshot *storage.MemCachedStore) error {
			snapshot.Put([]byte("c"), []byte{3})
			return nil
		}))
		require.Nil(t, get(t, s, "c"))
	})

	t.Run("transact", func(t *testing.T) {
		require.NoError(t, s.Transact(func(snapshot *storage.MemCachedStore) (bool, error) {
			snapshot.Put([]byte("c"), []byte{3})
			return false, nil
		}))
		require.Nil(t, get(t, s, "c"))

		require.NoError(t, s.Transact(func(snapshot *storage.MemCachedStore) (bool, error) {
			snapshot.Put([]byte("c"), []byte{3})
			return true, nil
		}))
		require.Equal(t, []byte{3}, get(t, s, "c"))
	})

	t.Run("iterate", func(t *testing.T) {
		var keys []string
		s.Iterate([]byte("b"), func(k, _ []byte) bool {
			keys = append(keys, string(k))
			return true
		})
		require.Equal(t, []string{"b"}, keys)
	})
}

func TestIterateAll(t *testing.T) {
	s := NewMemory(zaptest.NewLogger(t))
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	item := func(id byte, key string) []byte {
		return append([]byte{byte(storage.STStorage), id, 0, 0, 0}, key...)
	}

	require.NoError(t, s.Execute(func(snapshot *storage.MemCachedStore) error {
		snapshot.Put(item(2, "x"), []byte{1})
		snapshot.Put(item(1, "b"), []byte{2})
		snapshot.Put(item(1, "a"), []byte{3})
		return nil
	}))

	for _, prefix := range [][]byte{nil, {}} {
		var keys [][]byte
		s.Iterate(prefix, func(k, _ []byte) bool {
			keys = append(keys, append([]byte(nil), k...))
			return true
		})
		require.Equal(t, [][]byte{item(1, "a"), item(1, "b"), item(2, "x")}, keys)
	}

	var n int
	s.Iterate(nil, func([]byte, []byte) bool {
		n++
		return false
	})
	require.Equal(t, 1, n)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.bolt")

	cfg := dbconfig.DBConfiguration{
		Type:          dbconfig.BoltDB,
		BoltDBOptions: dbconfig.BoltDBOptions{FilePath: path},
	}

	s, err := Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, s.Execute(func(snapshot *storage.MemCachedStore) error {
		snapshot.Put([]byte("k"), []byte("v"))
		return nil
	}))
	require.NoError(t, s.Close())

	s, err = Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	require.Equal(t, []byte("v"), get(t, s, "k"))

	_, err = Open(dbconfig.DBConfiguration{Type: "unknown"}, nil)
	require.Error(t, err)
}
