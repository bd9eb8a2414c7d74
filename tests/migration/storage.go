package migration

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/store"
	"github.com/reviewnet/reviewnet-contract/tests/dump"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Network provides the review network under test. Initial state of the
// network is loaded from the dump of the store in which it has already been
// deployed. After preparing the network from the input data, its logic module
// can be swapped using the appropriate methods. Network also provides data
// access interfaces that can be used to ensure that records are still
// readable.
//
// Network instances must be constructed using NewNetwork.
type Network struct {
	store *store.Store
	d     *proxy.Dispatcher
	admin util.Uint160
}

// NetworkOptions groups various options of NewNetwork.
type NetworkOptions struct {
	// Logic modules available for activation. Defaults to reviewnet module
	// with default committee size.
	Modules []interop.Module

	// Listener of the network namespace dump. Useful for working with raw
	// values that can not be accessed by the module API.
	StorageDumpHandler func(key, value []byte)
}

// NewNetwork constructs Network from provided dump.Reader.
//
// The Network is initialized with all namespaces from the dump.Reader. If you
// need to process storage items of the network namespace before the network
// is initialized, use NetworkOptions.StorageDumpHandler. If set, NewNetwork
// passes each key-value item into the function.
func NewNetwork(tb testing.TB, d *dump.Reader, opts NetworkOptions) *Network {
	var networkName string
	d.IterateNamespaces(func(ns dump.Namespace) {
		if ns.ID == proxy.ID {
			networkName = ns.Name
		}
	})
	require.NotEmpty(tb, networkName, "network namespace is missing in the dump")

	if opts.StorageDumpHandler != nil {
		err := d.IterateStorages(func(name string, key, value []byte) {
			if name == networkName {
				opts.StorageDumpHandler(key, value)
			}
		})
		require.NoError(tb, err)
	}

	log := zaptest.NewLogger(tb)
	st := store.NewMemory(log)
	tb.Cleanup(func() { _ = st.Close() })

	require.NoError(tb, dump.Load(d, st))

	if len(opts.Modules) == 0 {
		opts.Modules = []interop.Module{reviewnet.New(0)}
	}

	reg, err := proxy.NewRegistry(opts.Modules...)
	require.NoError(tb, err)

	dispatcher := proxy.NewDispatcher(st, reg, proxy.WithLogger(log))

	admin, err := dispatcher.Admin()
	require.NoError(tb, err)

	return &Network{
		store: st,
		d:     dispatcher,
		admin: admin,
	}
}

// Dispatcher returns dispatcher of the network.
func (x *Network) Dispatcher() *proxy.Dispatcher {
	return x.d
}

// Admin returns administrator of the network recorded in the dump.
func (x *Network) Admin() util.Uint160 {
	return x.admin
}

// CheckUpdateSuccess tests that the administrator activates referenced
// module successfully.
func (x *Network) CheckUpdateSuccess(tb testing.TB, ref string) {
	require.NoError(tb, x.d.SetImplementation(x.admin, ref))

	active, _, err := x.d.Implementation()
	require.NoError(tb, err)
	require.Equal(tb, ref, active)
}

// CheckUpdateFail tests that activation of the referenced module fails with
// the given error.
//
// See also CheckUpdateSuccess.
func (x *Network) CheckUpdateFail(tb testing.TB, ref string, target error) {
	err := x.d.SetImplementation(x.admin, ref)
	require.True(tb, errors.Is(err, target), "unexpected error %v", err)
}

// Call tests that calling the active module method with optional arguments
// succeeds and returns its result.
//
// Note that Call doesn't change the network state, so only read (aka safe)
// methods should be used.
func (x *Network) Call(tb testing.TB, method string, args ...any) stackitem.Item {
	return makeTestInvoke(tb, x.d, method, args...)
}

// GetStorageItem returns value stored in the network namespace by key.
func (x *Network) GetStorageItem(key []byte) []byte {
	var res []byte

	prefix := interop.Namespace(proxy.ID)
	x.store.Iterate(append(prefix, key...), func(k, v []byte) bool {
		if len(k) == len(prefix)+len(key) {
			res = append([]byte(nil), v...)
			return false
		}
		return true
	})

	return res
}
