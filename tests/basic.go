package tests

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/random"
	"github.com/reviewnet/reviewnet-contract/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Network is the review network over an in-memory store with the reviewnet
// module activated by Admin.
type Network struct {
	*proxy.Dispatcher

	Store *store.Store
	Admin util.Uint160
}

type networkOptions struct {
	modules       []interop.Module
	random        interop.RandomnessSource
	metrics       *proxy.Metrics
	committeeSize int
	noActivation  bool
}

// NetworkOption configures NewNetwork.
type NetworkOption func(*networkOptions)

// WithModules registers additional logic modules.
func WithModules(modules ...interop.Module) NetworkOption {
	return func(o *networkOptions) { o.modules = append(o.modules, modules...) }
}

// WithRandomness sets randomness source of the network.
func WithRandomness(src interop.RandomnessSource) NetworkOption {
	return func(o *networkOptions) { o.random = src }
}

// WithMetrics enables dispatcher metrics.
func WithMetrics(m *proxy.Metrics) NetworkOption {
	return func(o *networkOptions) { o.metrics = m }
}

// WithCommitteeSize sets committee size of the reviewnet module.
func WithCommitteeSize(n int) NetworkOption {
	return func(o *networkOptions) { o.committeeSize = n }
}

// WithoutImplementation leaves the network without active module.
func WithoutImplementation() NetworkOption {
	return func(o *networkOptions) { o.noActivation = true }
}

// NewNetwork creates new network instance and setups cleanup functions.
func NewNetwork(t testing.TB, opts ...NetworkOption) *Network {
	var o networkOptions
	for _, f := range opts {
		f(&o)
	}

	log := zaptest.NewLogger(t)

	st := store.NewMemory(log)
	t.Cleanup(func() { _ = st.Close() })

	reg, err := proxy.NewRegistry(append([]interop.Module{reviewnet.New(o.committeeSize)}, o.modules...)...)
	require.NoError(t, err)

	dOpts := []proxy.Option{proxy.WithLogger(log)}
	if o.random != nil {
		dOpts = append(dOpts, proxy.WithRandomness(o.random))
	}
	if o.metrics != nil {
		dOpts = append(dOpts, proxy.WithMetrics(o.metrics))
	}

	n := &Network{
		Dispatcher: proxy.NewDispatcher(st, reg, dOpts...),
		Store:      st,
		Admin:      NewAccount(t),
	}

	require.NoError(t, n.Init(n.Admin))

	if !o.noActivation {
		require.NoError(t, n.SetImplementation(n.Admin, reviewnet.Name))
	}

	return n
}

// NewAccount generates new random account.
func NewAccount(t testing.TB) util.Uint160 {
	return NewKey(t).GetScriptHash()
}

// NewKey generates new private key.
func NewKey(t testing.TB) *keys.PrivateKey {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	return k
}

// InvokeOK tests that the call succeeds and returns its result.
func (n *Network) InvokeOK(t testing.TB, caller util.Uint160, method string, args ...any) *proxy.Result {
	res, err := n.Invoke(caller, method, args...)
	require.NoError(t, err, "method '%s'", method)
	return res
}

// InvokeFail tests that the call fails with the target error.
func (n *Network) InvokeFail(t testing.TB, target error, caller util.Uint160, method string, args ...any) {
	_, err := n.Invoke(caller, method, args...)
	require.Error(t, err, "method '%s'", method)
	require.True(t, errors.Is(err, target), "method '%s': unexpected error %v", method, err)
}

// Query tests that the read-only call succeeds and returns its result item.
func (n *Network) Query(t testing.TB, method string, args ...any) stackitem.Item {
	res, err := n.TestInvoke(util.Uint160{}, method, args...)
	require.NoError(t, err, "method '%s'", method)
	return res.Item
}

// Balance returns REW balance of the account.
func (n *Network) Balance(t testing.TB, acc util.Uint160) int64 {
	res, err := n.TestInvokeToken(util.Uint160{}, "balanceOf", acc)
	require.NoError(t, err)

	b, err := res.Item.TryInteger()
	require.NoError(t, err)

	return b.Int64()
}

// Fund mints amount of REW to acc and lets the network spend it.
func (n *Network) Fund(t testing.TB, acc util.Uint160, amount int64) {
	_, err := n.InvokeToken(n.Admin, "mint", acc, amount)
	require.NoError(t, err)

	_, err = n.InvokeToken(acc, "approve", n.Hash(), amount)
	require.NoError(t, err)
}

// CheckNotification tests that the notification has the given name and
// arguments. Arguments are converted with interop.ToStackItem.
func CheckNotification(t testing.TB, ev state.NotificationEvent, name string, args ...any) {
	require.Equal(t, name, ev.Name)

	items, ok := ev.Item.Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, items, len(args), "notification '%s'", name)

	for i := range args {
		exp := interop.ToStackItem(args[i])
		require.True(t, exp.Equals(items[i]), "notification '%s' argument #%d: expected %v, got %v",
			name, i, exp.Value(), items[i].Value())
	}
}

// NotificationNames returns names of the notifications in the emission order.
func NotificationNames(res *proxy.Result) []string {
	names := make([]string, len(res.Notifications))
	for i := range res.Notifications {
		names[i] = res.Notifications[i].Name
	}
	return names
}

// NewContext returns context of the network namespace over a fresh
// in-memory storage. Values of src are used as randomness.
func NewContext(t testing.TB, src ...uint64) *interop.Context {
	ic := interop.NewContext(storage.NewMemCachedStore(storage.NewMemoryStore()), zaptest.NewLogger(t))
	ic.ID = proxy.ID
	ic.Random = random.NewSequence(src...)
	return ic
}
