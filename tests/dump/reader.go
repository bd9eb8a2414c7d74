package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

// IterateDumps opens every dump found in dir and passes it into f in the
// order of file names. Missing dir is treated as empty.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read dump directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), manifestExt) {
			continue
		}

		r, err := open(filepath.Join(dir, e.Name()), dir)
		if err != nil {
			return fmt.Errorf("open dump %s: %w", e.Name(), err)
		}

		f(r.m.ID, r)
	}

	return nil
}

type record struct {
	ns         int32
	key, value string
}

// Reader provides access to a dump read from disk.
type Reader struct {
	m       manifest
	names   map[int32]string
	records []record
}

func open(path, dir string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	r := &Reader{names: make(map[int32]string)}

	err = json.Unmarshal(data, &r.m)
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	for _, ns := range r.m.Namespaces {
		r.names[ns.ID] = ns.Name
	}

	f, err := os.Open(storagePath(dir, r.m.ID))
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	defer f.Close()

	err = r.readRecords(f)
	if err != nil {
		return nil, err
	}

	return r, r.checkCounts()
}

func (x *Reader) readRecords(src io.Reader) error {
	rd := csv.NewReader(src)
	rd.FieldsPerRecord = 3

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read storage record: %w", err)
		}

		id, err := strconv.ParseInt(rec[0], 10, 32)
		if err != nil {
			return fmt.Errorf("decode namespace ID %q: %w", rec[0], err)
		}

		if _, ok := x.names[int32(id)]; !ok {
			return fmt.Errorf("storage item of undeclared namespace %d", id)
		}

		x.records = append(x.records, record{ns: int32(id), key: rec[1], value: rec[2]})
	}
}

func (x *Reader) checkCounts() error {
	counts := make(map[int32]int, len(x.names))
	for i := range x.records {
		counts[x.records[i].ns]++
	}

	for _, ns := range x.m.Namespaces {
		if counts[ns.ID] != ns.Items {
			return fmt.Errorf("namespace %s: %d items in manifest, %d in storage", ns.Name, ns.Items, counts[ns.ID])
		}
	}

	return nil
}

// ID returns ID of the dump.
func (x *Reader) ID() ID {
	return x.m.ID
}

// IterateNamespaces passes dumped namespaces into f in the order they were
// written.
func (x *Reader) IterateNamespaces(f func(Namespace)) {
	for i := range x.m.Namespaces {
		f(x.m.Namespaces[i].Namespace)
	}
}

// IterateStorages passes every storage item of the dump into f along with
// the name of its namespace.
func (x *Reader) IterateStorages(f func(name string, key, value []byte)) error {
	return x.iterate(func(ns int32, key, value []byte) {
		f(x.names[ns], key, value)
	})
}

func (x *Reader) iterate(f func(ns int32, key, value []byte)) error {
	for _, rec := range x.records {
		key, err := base58.Decode(rec.key)
		if err != nil {
			return fmt.Errorf("decode key %q: %w", rec.key, err)
		}

		value, err := valueEncoding.DecodeString(rec.value)
		if err != nil {
			return fmt.Errorf("decode value of %q: %w", rec.key, err)
		}

		f(rec.ns, key, value)
	}

	return nil
}
