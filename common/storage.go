package common

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// KV is a contract storage namespace.
type KV interface {
	Get(key []byte) []byte
	Put(key, value []byte)
}

// GetList returns list of addresses stored by key. Missing value is an
// empty list.
func GetList(ctx KV, key []byte) ([]util.Uint160, error) {
	data := ctx.Get(key)
	if data == nil {
		return []util.Uint160{}, nil
	}

	item, err := stackitem.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, fmt.Errorf("decode list: unexpected item type %s", item.Type())
	}

	res := make([]util.Uint160, len(arr))
	for i := range arr {
		res[i], err = BytesToUint160(arr[i])
		if err != nil {
			return nil, fmt.Errorf("decode list element #%d: %w", i, err)
		}
	}

	return res, nil
}

// SetList serializes list of addresses and puts it into contract storage.
func SetList(ctx KV, key []byte, list []util.Uint160) error {
	items := make([]stackitem.Item, len(list))
	for i := range list {
		items[i] = stackitem.NewByteArray(list[i].BytesBE())
	}

	return SetItem(ctx, key, stackitem.NewArray(items))
}

// SetItem serializes stack item and puts it into contract storage.
func SetItem(ctx KV, key []byte, item stackitem.Item) error {
	data, err := stackitem.Serialize(item)
	if err != nil {
		return fmt.Errorf("encode storage item: %w", err)
	}

	ctx.Put(key, data)

	return nil
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx KV, key []byte, value stackitem.Convertible) error {
	item, err := value.ToStackItem()
	if err != nil {
		return fmt.Errorf("convert to stack item: %w", err)
	}

	return SetItem(ctx, key, item)
}

// GetSerialized reads value stored by key into dst. It returns false if
// nothing is stored.
func GetSerialized(ctx KV, key []byte, dst stackitem.Convertible) (bool, error) {
	data := ctx.Get(key)
	if data == nil {
		return false, nil
	}

	item, err := stackitem.Deserialize(data)
	if err != nil {
		return true, fmt.Errorf("decode storage item: %w", err)
	}

	err = dst.FromStackItem(item)
	if err != nil {
		return true, fmt.Errorf("decode %s: %w", item.Type(), err)
	}

	return true, nil
}

// GetInt returns integer stored by key or def if there is nothing.
func GetInt(ctx KV, key []byte, def int64) (int64, error) {
	data := ctx.Get(key)
	if data == nil {
		return def, nil
	}

	item, err := stackitem.Deserialize(data)
	if err != nil {
		return 0, fmt.Errorf("decode integer: %w", err)
	}

	n, err := item.TryInteger()
	if err != nil {
		return 0, fmt.Errorf("decode integer: %w", err)
	}

	return n.Int64(), nil
}

// SetInt puts integer into contract storage.
func SetInt(ctx KV, key []byte, n int64) error {
	return SetItem(ctx, key, stackitem.Make(n))
}

// HashID returns SHA256 of the concatenated parts. It is used to key records
// by arbitrary-length identifiers.
func HashID(parts ...[]byte) []byte {
	var buf []byte
	for i := range parts {
		buf = append(buf, parts[i]...)
	}

	return hash.Sha256(buf).BytesBE()
}

// BytesToUint160 decodes big-endian address from the byte array item.
func BytesToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}

	return util.Uint160DecodeBytesBE(b)
}
