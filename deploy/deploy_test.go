package deploy_test

import (
	"context"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"github.com/reviewnet/reviewnet-contract/deploy"
	"github.com/reviewnet/reviewnet-contract/internal/testcontracts/nextgen"
	rpcreviewnet "github.com/reviewnet/reviewnet-contract/rpc/reviewnet"
	rpctoken "github.com/reviewnet/reviewnet-contract/rpc/token"
	"github.com/reviewnet/reviewnet-contract/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newDispatcher(t *testing.T) *proxy.Dispatcher {
	log := zaptest.NewLogger(t)

	st := store.NewMemory(log)
	t.Cleanup(func() { _ = st.Close() })

	reg, err := proxy.NewRegistry(reviewnet.New(3), nextgen.New())
	require.NoError(t, err)

	return proxy.NewDispatcher(st, reg, proxy.WithLogger(log))
}

func TestDeploy(t *testing.T) {
	d := newDispatcher(t)

	prm := deploy.Prm{
		Logger:      zaptest.NewLogger(t),
		Dispatcher:  d,
		Admin:       util.Uint160{1},
		Validators:  []util.Uint160{{2}, {3}},
		Allocations: []deploy.Allocation{{Account: util.Uint160{4}, Amount: 100}, {Account: util.Uint160{5}, Amount: 50}},
	}

	require.NoError(t, deploy.Deploy(context.Background(), prm))

	ref, version, err := d.Implementation()
	require.NoError(t, err)
	require.Equal(t, reviewnet.Name, ref)
	require.Equal(t, common.Version, version)

	nw := rpcreviewnet.NewReader(d)
	tok := rpctoken.NewReader(d)

	checkState := func() {
		pool, err := nw.GetValidators()
		require.NoError(t, err)
		require.Equal(t, prm.Validators, pool)

		supply, err := tok.TotalSupply()
		require.NoError(t, err)
		require.EqualValues(t, 150, supply)

		b, err := tok.BalanceOf(util.Uint160{4})
		require.NoError(t, err)
		require.EqualValues(t, 100, b)
	}

	checkState()

	t.Run("repeat", func(t *testing.T) {
		require.NoError(t, deploy.Deploy(context.Background(), prm))
		checkState()
	})

	t.Run("extend and swap", func(t *testing.T) {
		prm := prm
		prm.Implementation = nextgen.Name
		prm.Validators = append([]util.Uint160{{6}}, prm.Validators...)

		require.NoError(t, deploy.Deploy(context.Background(), prm))

		ref, _, err := d.Implementation()
		require.NoError(t, err)
		require.Equal(t, nextgen.Name, ref)

		pool, err := nw.GetValidators()
		require.NoError(t, err)
		require.Equal(t, []util.Uint160{{2}, {3}, {6}}, pool)
	})

	t.Run("foreign admin", func(t *testing.T) {
		prm := prm
		prm.Admin = util.Uint160{9}
		require.ErrorIs(t, deploy.Deploy(context.Background(), prm), common.ErrUnauthorized)
	})
}

func TestDeployAllocationsRetry(t *testing.T) {
	d := newDispatcher(t)
	tok := rpctoken.NewReader(d)

	prm := deploy.Prm{
		Logger:      zaptest.NewLogger(t),
		Dispatcher:  d,
		Admin:       util.Uint160{1},
		Allocations: []deploy.Allocation{{Account: util.Uint160{4}, Amount: 100}, {Account: util.Uint160{5}, Amount: -1}},
	}

	require.ErrorIs(t, deploy.Deploy(context.Background(), prm), common.ErrInvalidArgument)

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	require.Zero(t, supply)

	b, err := tok.BalanceOf(util.Uint160{4})
	require.NoError(t, err)
	require.Zero(t, b, "allocations must be minted all at once")

	prm.Allocations[1].Amount = 50
	require.NoError(t, deploy.Deploy(context.Background(), prm))

	for acc, exp := range map[util.Uint160]int64{{4}: 100, {5}: 50} {
		b, err := tok.BalanceOf(acc)
		require.NoError(t, err)
		require.Equal(t, exp, b)
	}

	supply, err = tok.TotalSupply()
	require.NoError(t, err)
	require.EqualValues(t, 150, supply)
}

func TestDeployCanceled(t *testing.T) {
	d := newDispatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := deploy.Deploy(ctx, deploy.Prm{Dispatcher: d, Admin: util.Uint160{1}})
	require.ErrorIs(t, err, context.Canceled)

	// administrator is installed before the first check
	admin, err := d.Admin()
	require.NoError(t, err)
	require.Equal(t, util.Uint160{1}, admin)

	_, _, err = d.Implementation()
	require.ErrorIs(t, err, common.ErrNoImplementation)

	require.Error(t, deploy.Deploy(context.Background(), deploy.Prm{}))
}
