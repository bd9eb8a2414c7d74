package dump

import (
	"encoding/base64"
	"path/filepath"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ID identifies the dump.
type ID struct {
	// Label of the dump source (e.g. store name, environment).
	Label string `json:"label"`
	// Number of committed network calls at which the state was pulled.
	Height uint32 `json:"height"`
}

// String returns hyphen-separated ID fields. It is also the base name of
// the dump files.
func (x ID) String() string {
	return x.Label + "-" + strconv.FormatUint(uint64(x.Height), 10)
}

// Namespace describes dumped storage namespace.
type Namespace struct {
	Name string       `json:"name"`
	ID   int32        `json:"id"`
	Hash util.Uint160 `json:"hash"`
}

type manifestNamespace struct {
	Namespace
	Items int `json:"items"`
}

type manifest struct {
	ID
	Namespaces []manifestNamespace `json:"namespaces"`
}

const (
	manifestExt = ".json"
	storageExt  = ".csv"
)

var valueEncoding = base64.StdEncoding

func manifestPath(dir string, id ID) string {
	return filepath.Join(dir, id.String()+manifestExt)
}

func storagePath(dir string, id ID) string {
	return filepath.Join(dir, id.String()+storageExt)
}
