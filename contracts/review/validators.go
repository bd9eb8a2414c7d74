package review

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

// DefaultCommitteeSize is the number of validators chosen for each review
// unless configured otherwise.
const DefaultCommitteeSize = 5

const (
	validatorPrefix  = 'v'
	poolKey          = "V"
	committeeSizeKey = "c"
	ownerKey         = "o"
)

// Init stores network owner allowed to manage validators and committee size.
// Non-positive size is replaced with DefaultCommitteeSize.
func Init(ic *interop.Context, owner util.Uint160, committeeSize int) error {
	if committeeSize <= 0 {
		committeeSize = DefaultCommitteeSize
	}

	ctx := ic.Storage()
	ctx.Put([]byte(ownerKey), owner.BytesBE())

	return common.SetInt(ctx, []byte(committeeSizeKey), int64(committeeSize))
}

// Owner returns network owner. ok is false before Init.
func Owner(ic *interop.Context) (owner util.Uint160, ok bool) {
	v := ic.Storage().Get([]byte(ownerKey))
	if v == nil {
		return util.Uint160{}, false
	}

	owner, err := util.Uint160DecodeBytesBE(v)

	return owner, err == nil
}

// SetOwner passes the right to manage validators to another account.
func SetOwner(ic *interop.Context, owner util.Uint160) error {
	if _, ok := Owner(ic); !ok {
		return common.ErrNotInitialized
	}

	ic.Storage().Put([]byte(ownerKey), owner.BytesBE())
	ic.Log.Info("network owner changed", zap.String("owner", address.Uint160ToString(owner)))

	return nil
}

// CommitteeSize returns configured committee size.
func CommitteeSize(ic *interop.Context) (int, error) {
	n, err := common.GetInt(ic.Storage(), []byte(committeeSizeKey), DefaultCommitteeSize)
	if err != nil {
		return 0, fmt.Errorf("read committee size: %w", err)
	}

	return int(n), nil
}

// AddValidator appends identity to the validator pool. It can be invoked
// only by the network owner.
func AddValidator(ic *interop.Context, identity util.Uint160) error {
	owner, ok := Owner(ic)
	if !ok {
		return common.ErrNotInitialized
	}

	if err := common.CheckOwnerWitness(ic, owner); err != nil {
		return err
	}

	ctx := ic.Storage()
	key := append([]byte{validatorPrefix}, identity.BytesBE()...)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateValidator, address.Uint160ToString(identity))
	}

	pool, err := Validators(ic)
	if err != nil {
		return err
	}

	err = common.SetInt(ctx, key, int64(len(pool)))
	if err != nil {
		return err
	}

	return common.SetList(ctx, []byte(poolKey), append(pool, identity))
}

// Validators returns validator pool in registration order.
func Validators(ic *interop.Context) ([]util.Uint160, error) {
	pool, err := common.GetList(ic.Storage(), []byte(poolKey))
	if err != nil {
		return nil, fmt.Errorf("read validator pool: %w", err)
	}

	return pool, nil
}

// SelectCommittee returns min(len(pool), size) distinct validators drawn
// from the pool by partial Fisher-Yates shuffle. Each draw consumes one
// value of the context randomness source. The pool is not modified.
func SelectCommittee(ic *interop.Context, pool []util.Uint160, size int) []util.Uint160 {
	n := min(len(pool), size)
	if n <= 0 {
		return []util.Uint160{}
	}

	candidates := make([]util.Uint160, len(pool))
	copy(candidates, pool)

	for i := 0; i < n; i++ {
		j := i + int(ic.GetRandom()%uint64(len(candidates)-i))
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return candidates[:n]
}
