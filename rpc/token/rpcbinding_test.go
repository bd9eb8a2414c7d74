package token_test

import (
	"testing"

	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/rpc/token"
	"github.com/reviewnet/reviewnet-contract/tests"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	n := tests.NewNetwork(t)

	var (
		reader = token.NewReader(n)
		owner  = token.New(n, n.Admin)
		alice  = token.New(n, tests.NewAccount(t))
		bob    = token.New(n, tests.NewAccount(t))
	)

	symbol, err := reader.Symbol()
	require.NoError(t, err)
	require.Equal(t, "REW", symbol)

	decimals, err := reader.Decimals()
	require.NoError(t, err)
	require.Zero(t, decimals)

	_, err = alice.Mint(alice.Caller(), 10)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = owner.Mint(alice.Caller(), 10)
	require.NoError(t, err)

	res, err := alice.Transfer(bob.Caller(), 3)
	require.NoError(t, err)
	require.Len(t, res.Notifications, 1)

	_, err = alice.Approve(bob.Caller(), 5)
	require.NoError(t, err)

	allowance, err := reader.Allowance(alice.Caller(), bob.Caller())
	require.NoError(t, err)
	require.EqualValues(t, 5, allowance)

	_, err = bob.TransferFrom(alice.Caller(), bob.Caller(), 4)
	require.NoError(t, err)

	for acc, exp := range map[*token.Contract]int64{alice: 3, bob: 7, owner: 0} {
		b, err := reader.BalanceOf(acc.Caller())
		require.NoError(t, err)
		require.Equal(t, exp, b)
	}

	supply, err := reader.TotalSupply()
	require.NoError(t, err)
	require.EqualValues(t, 10, supply)
}
