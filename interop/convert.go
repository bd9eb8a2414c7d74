package interop

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
)

// ToStackItem converts Go value into stack item. Addresses are encoded as
// big-endian byte arrays, public keys in compressed form.
func ToStackItem(v any) stackitem.Item {
	switch x := v.(type) {
	case nil:
		return stackitem.Null{}
	case stackitem.Item:
		return x
	case util.Uint160:
		return stackitem.NewByteArray(x.BytesBE())
	case *keys.PublicKey:
		return stackitem.NewByteArray(x.Bytes())
	case int:
		return stackitem.NewBigInteger(big.NewInt(int64(x)))
	case int64:
		return stackitem.NewBigInteger(big.NewInt(x))
	case uint32:
		return stackitem.NewBigInteger(big.NewInt(int64(x)))
	case string:
		return stackitem.NewByteArray([]byte(x))
	case []byte:
		return stackitem.NewByteArray(x)
	case bool:
		return stackitem.NewBool(x)
	case []int64:
		items := make([]stackitem.Item, len(x))
		for i := range x {
			items[i] = stackitem.NewBigInteger(big.NewInt(x[i]))
		}
		return stackitem.NewArray(items)
	case []util.Uint160:
		items := make([]stackitem.Item, len(x))
		for i := range x {
			items[i] = stackitem.NewByteArray(x[i].BytesBE())
		}
		return stackitem.NewArray(items)
	default:
		return stackitem.Make(v)
	}
}

// ToUint160 converts stack item to address.
func ToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: address: %v", common.ErrInvalidArgument, err)
	}

	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: address: %v", common.ErrInvalidArgument, err)
	}

	return u, nil
}

// ToInt64 converts stack item to integer.
func ToInt64(item stackitem.Item) (int64, error) {
	n, err := item.TryInteger()
	if err != nil {
		return 0, fmt.Errorf("%w: integer: %v", common.ErrInvalidArgument, err)
	}

	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: integer %s overflows int64", common.ErrInvalidArgument, n)
	}

	return n.Int64(), nil
}

// ToBytes converts stack item to byte slice.
func ToBytes(item stackitem.Item) ([]byte, error) {
	b, err := item.TryBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: bytes: %v", common.ErrInvalidArgument, err)
	}
	return b, nil
}

// ToString converts stack item to string.
func ToString(item stackitem.Item) (string, error) {
	b, err := ToBytes(item)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPublicKey converts stack item to compressed secp256r1 public key.
func ToPublicKey(item stackitem.Item) (*keys.PublicKey, error) {
	b, err := ToBytes(item)
	if err != nil {
		return nil, err
	}

	pub, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", common.ErrInvalidArgument, err)
	}

	return pub, nil
}
