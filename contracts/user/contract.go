package user

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
)

const userPrefix = 'u'

// Register binds username to the calling identity. Each identity can be
// registered once.
func Register(ic *interop.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", common.ErrInvalidArgument)
	}

	ctx := ic.Storage()
	key := userKey(ic.Caller)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateUser, address.Uint160ToString(ic.Caller))
	}

	ctx.Put(key, []byte(username))

	return nil
}

// Exists checks whether identity is registered.
func Exists(ic *interop.Context, identity util.Uint160) bool {
	return ic.Storage().Get(userKey(identity)) != nil
}

// Username returns username of the registered identity.
func Username(ic *interop.Context, identity util.Uint160) (string, error) {
	v := ic.Storage().Get(userKey(identity))
	if v == nil {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownUser, address.Uint160ToString(identity))
	}

	return string(v), nil
}

func userKey(identity util.Uint160) []byte {
	return append([]byte{userPrefix}, identity.BytesBE()...)
}
