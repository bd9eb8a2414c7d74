package token_test

import (
	"math"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/token"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/tests"
	"github.com/stretchr/testify/require"
)

var (
	owner   = util.Uint160{0x01}
	alice   = util.Uint160{0xA1}
	bob     = util.Uint160{0xB0}
	network = util.Uint160{0xFE}
)

func newToken(t *testing.T) (*token.Token, *interop.Context) {
	tok := token.New()

	ic := tests.NewContext(t)
	ic.ID = tok.ID()
	ic.Hash = tok.Hash()
	ic.Caller = owner

	tok.Deploy(ic, owner)
	// repeated deploy keeps the owner
	tok.Deploy(ic, alice)
	cur, ok := tok.Owner(ic)
	require.True(t, ok)
	require.Equal(t, owner, cur)

	return tok, ic
}

func balance(t *testing.T, tok *token.Token, ic *interop.Context, acc util.Uint160) int64 {
	n, err := tok.BalanceOf(ic, acc)
	require.NoError(t, err)
	return n
}

func TestToken(t *testing.T) {
	tok, ic := newToken(t)

	require.Equal(t, "REW", tok.Symbol())
	require.Zero(t, tok.Decimals())

	ic.Caller = alice
	require.ErrorIs(t, tok.Mint(ic, alice, 100), common.ErrUnauthorized)

	ic.Caller = owner
	require.NoError(t, tok.Mint(ic, alice, 100))
	require.EqualValues(t, 100, balance(t, tok, ic, alice))

	supply, err := tok.TotalSupply(ic)
	require.NoError(t, err)
	require.EqualValues(t, 100, supply)

	require.ErrorIs(t, tok.Transfer(ic, alice, bob, 10), common.ErrUnauthorized)

	ic.Caller = alice
	require.ErrorIs(t, tok.Transfer(ic, alice, bob, 101), common.ErrInsufficientFunds)
	require.ErrorIs(t, tok.Transfer(ic, alice, bob, -1), common.ErrInvalidArgument)
	require.NoError(t, tok.Transfer(ic, alice, bob, 30))
	require.EqualValues(t, 70, balance(t, tok, ic, alice))
	require.EqualValues(t, 30, balance(t, tok, ic, bob))

	evs := ic.Notifications()
	tests.CheckNotification(t, evs[0], "Transfer", nil, alice, 100)
	tests.CheckNotification(t, evs[len(evs)-1], "Transfer", alice, bob, 30)
}

func TestMintLimits(t *testing.T) {
	t.Run("not deployed", func(t *testing.T) {
		tok := token.New()

		ic := tests.NewContext(t)
		ic.ID = tok.ID()
		ic.Hash = tok.Hash()

		_, ok := tok.Owner(ic)
		require.False(t, ok)
		require.ErrorIs(t, tok.Mint(ic, alice, 100), common.ErrNotInitialized)
		require.Zero(t, balance(t, tok, ic, alice))
	})

	t.Run("supply overflow", func(t *testing.T) {
		tok, ic := newToken(t)

		require.NoError(t, tok.Mint(ic, alice, math.MaxInt64))
		require.ErrorIs(t, tok.Mint(ic, alice, 2), common.ErrInvalidArgument)
		require.ErrorIs(t, tok.Mint(ic, bob, 1), common.ErrInvalidArgument)

		supply, err := tok.TotalSupply(ic)
		require.NoError(t, err)
		require.EqualValues(t, int64(math.MaxInt64), supply)
		require.EqualValues(t, int64(math.MaxInt64), balance(t, tok, ic, alice))
		require.Zero(t, balance(t, tok, ic, bob))
	})
}

func TestAllowance(t *testing.T) {
	tok, ic := newToken(t)
	require.NoError(t, tok.Mint(ic, alice, 100))

	ic.Caller = alice
	require.ErrorIs(t, tok.Approve(ic, alice, network, -1), common.ErrInvalidArgument)
	require.NoError(t, tok.Approve(ic, alice, network, 50))

	n, err := tok.Allowance(ic, alice, network)
	require.NoError(t, err)
	require.EqualValues(t, 50, n)

	require.ErrorIs(t, tok.TransferFrom(ic, network, alice, network, 10), common.ErrUnauthorized)

	ic.Caller = network
	require.ErrorIs(t, tok.TransferFrom(ic, network, alice, network, 51), common.ErrInsufficientAllowance)
	require.NoError(t, tok.TransferFrom(ic, network, alice, network, 20))

	n, err = tok.Allowance(ic, alice, network)
	require.NoError(t, err)
	require.EqualValues(t, 30, n)

	require.NoError(t, tok.TransferFrom(ic, network, alice, network, 30))
	n, err = tok.Allowance(ic, alice, network)
	require.NoError(t, err)
	require.Zero(t, n)

	require.EqualValues(t, 50, balance(t, tok, ic, alice))
	require.EqualValues(t, 50, balance(t, tok, ic, network))
}

func TestGateway(t *testing.T) {
	tok, tic := newToken(t)
	require.NoError(t, tok.Mint(tic, alice, 100))

	tic.Caller = alice
	require.NoError(t, tok.Approve(tic, alice, network, 40))

	// module context of the same call
	ic := *tic
	ic.ID = 1
	ic.Hash = network
	ic.Caller = alice

	g := token.Gateway{Token: tok}

	require.NoError(t, g.TransferFrom(&ic, alice, 40))
	require.ErrorIs(t, g.TransferFrom(&ic, alice, 1), common.ErrInsufficientAllowance)
	require.EqualValues(t, 40, g.BalanceOf(&ic, network))

	require.NoError(t, g.Transfer(&ic, bob, 15))
	require.ErrorIs(t, g.Transfer(&ic, bob, 26), common.ErrInsufficientFunds)

	require.EqualValues(t, 25, g.BalanceOf(&ic, network))
	require.EqualValues(t, 15, g.BalanceOf(&ic, bob))
	require.EqualValues(t, 60, g.BalanceOf(&ic, alice))
}

func TestMethods(t *testing.T) {
	tok, ic := newToken(t)

	call := func(method string, args ...any) (stackitem.Item, error) {
		items := make([]stackitem.Item, len(args))
		for i := range args {
			items[i] = interop.ToStackItem(args[i])
		}
		return interop.Call(ic, tok.Methods(), method, items)
	}

	_, err := call("mint", alice, 10)
	require.NoError(t, err)

	_, err = call("distribute", []util.Uint160{alice, bob}, []int64{1})
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	_, err = call("distribute", alice, 1)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	_, err = call("distribute", []util.Uint160{alice, bob}, []int64{1, 2})
	require.NoError(t, err)

	ic.Caller = alice
	_, err = call("distribute", []util.Uint160{alice}, []int64{1})
	require.ErrorIs(t, err, common.ErrUnauthorized)

	res, err := call("transfer", bob, 4)
	require.NoError(t, err)
	require.Equal(t, stackitem.NewBool(true), res)

	res, err = call("balanceOf", bob)
	require.NoError(t, err)
	n, err := res.TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 6, n.Int64())
	require.EqualValues(t, 7, balance(t, tok, ic, alice))

	res, err = call("symbol")
	require.NoError(t, err)
	b, err := res.TryBytes()
	require.NoError(t, err)
	require.Equal(t, "REW", string(b))

	_, err = call("burn", bob, 4)
	require.ErrorIs(t, err, common.ErrUnknownMethod)

	_, err = call("transfer", bob)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}
