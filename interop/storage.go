package interop

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
)

// namespaceLen is the length of the prefix prepended to every contract key:
// storage item prefix and little-endian contract ID.
const namespaceLen = 5

// StorageContext gives access to the storage namespace of a single contract.
type StorageContext struct {
	id  int32
	dao *storage.MemCachedStore
}

// Namespace returns the raw key prefix of the contract with the given ID.
func Namespace(id int32) []byte {
	ns := make([]byte, namespaceLen)
	ns[0] = byte(storage.STStorage)
	binary.LittleEndian.PutUint32(ns[1:], uint32(id))
	return ns
}

// SplitKey splits raw store key into contract ID and contract key. It returns
// false if the key does not belong to any contract namespace.
func SplitKey(raw []byte) (int32, []byte, bool) {
	if len(raw) < namespaceLen || raw[0] != byte(storage.STStorage) {
		return 0, nil, false
	}
	return int32(binary.LittleEndian.Uint32(raw[1:])), raw[namespaceLen:], true
}

func (c *StorageContext) key(k []byte) []byte {
	return append(Namespace(c.id), k...)
}

// Get returns value stored by k or nil if there is no such value.
func (c *StorageContext) Get(k []byte) []byte {
	v, err := c.dao.Get(c.key(k))
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			panic(err) // aborts the call, see proxy.Dispatcher
		}
		return nil
	}
	return v
}

// Put saves v by k.
func (c *StorageContext) Put(k, v []byte) {
	c.dao.Put(c.key(k), bytes.Clone(v))
}

// Delete removes value stored by k.
func (c *StorageContext) Delete(k []byte) {
	c.dao.Delete(c.key(k))
}

// Find iterates over all items which keys start with prefix in ascending key
// order and passes them to f until it returns false. Keys are passed without
// the contract namespace.
func (c *StorageContext) Find(prefix []byte, f func(k, v []byte) bool) {
	ns := Namespace(c.id)
	c.dao.Seek(storage.SeekRange{Prefix: c.key(prefix)}, func(k, v []byte) bool {
		return f(bytes.TrimPrefix(k, ns), v)
	})
}
