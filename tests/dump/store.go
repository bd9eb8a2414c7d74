package dump

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/store"
)

// Save dumps given namespaces of the store into dir under the given ID.
func Save(dir string, id ID, st *store.Store, namespaces []Namespace) error {
	w, err := Create(dir, id)
	if err != nil {
		return err
	}

	for i := range namespaces {
		w.Begin(namespaces[i])
		prefix := interop.Namespace(namespaces[i].ID)

		st.Iterate(prefix, func(k, v []byte) bool {
			err = w.Put(k[len(prefix):], v)
			return err == nil
		})
		if err != nil {
			w.discard()
			return fmt.Errorf("dump %s namespace: %w", namespaces[i].Name, err)
		}
	}

	return w.Close()
}

// Load puts all storage items of the dump into the store under the
// namespace IDs recorded in the dump.
func Load(r *Reader, st *store.Store) error {
	return st.Execute(func(dao *storage.MemCachedStore) error {
		return r.iterate(func(ns int32, key, value []byte) {
			dao.Put(append(interop.Namespace(ns), key...), value)
		})
	})
}
