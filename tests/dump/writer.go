package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mr-tron/base58"
)

// Writer writes a new dump. Namespaces are written one after another: Begin
// opens the namespace and following Put calls add its items. Close must be
// called to finalize the dump.
type Writer struct {
	dir string
	m   manifest

	storage *os.File
	csv     *csv.Writer
}

// Create starts a dump with the given ID in dir. It fails if any file of the
// dump already exists.
func Create(dir string, id ID) (*Writer, error) {
	_, err := os.Stat(manifestPath(dir, id))
	if err == nil {
		return nil, fmt.Errorf("dump %s: %w", id, os.ErrExist)
	}

	f, err := os.OpenFile(storagePath(dir, id), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("create storage file: %w", err)
	}

	return &Writer{
		dir:     dir,
		m:       manifest{ID: id},
		storage: f,
		csv:     csv.NewWriter(f),
	}, nil
}

// Begin starts the next namespace of the dump.
func (x *Writer) Begin(ns Namespace) {
	x.m.Namespaces = append(x.m.Namespaces, manifestNamespace{Namespace: ns})
}

// Put adds the storage item to the current namespace. Key must not contain
// the namespace prefix.
func (x *Writer) Put(key, value []byte) error {
	if len(x.m.Namespaces) == 0 {
		return errors.New("no namespace started")
	}

	cur := &x.m.Namespaces[len(x.m.Namespaces)-1]

	err := x.csv.Write([]string{
		strconv.FormatInt(int64(cur.ID), 10),
		base58.Encode(key),
		valueEncoding.EncodeToString(value),
	})
	if err != nil {
		return fmt.Errorf("write storage item of %s namespace: %w", cur.Name, err)
	}

	cur.Items++

	return nil
}

// Close flushes storage items and writes the manifest. The dump is visible
// to IterateDumps only after successful Close.
func (x *Writer) Close() error {
	x.csv.Flush()
	err := x.csv.Error()

	if cErr := x.storage.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return fmt.Errorf("flush storage items: %w", err)
	}

	data, err := json.MarshalIndent(x.m, "", " ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	err = os.WriteFile(manifestPath(x.dir, x.m.ID), data, 0600)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// discard drops the unfinished dump.
func (x *Writer) discard() {
	_ = x.storage.Close()
	_ = os.Remove(x.storage.Name())
}
