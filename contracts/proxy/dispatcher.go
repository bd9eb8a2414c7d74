package proxy

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/token"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/random"
	"github.com/reviewnet/reviewnet-contract/store"
	"go.uber.org/zap"
)

const (
	// ID is the storage namespace of the network data. It does not depend on
	// the active module.
	ID int32 = 1
	// RegistryID is the storage namespace of the implementation registry.
	RegistryID int32 = -1

	// Name is the network contract name used to derive its address.
	Name = "ReviewNetwork"

	registryName = "ReviewNetworkRegistry"
)

// contract is a namespace with an address and no own methods.
type contract struct {
	id   int32
	hash util.Uint160
}

func newContract(id int32, name string) contract {
	return contract{id: id, hash: state.CreateContractHash(util.Uint160{}, 0, name)}
}

func (c contract) ID() int32 { return c.id }

func (c contract) Hash() util.Uint160 { return c.hash }

func (c contract) Methods() []interop.Method { return nil }

// Result is the outcome of a successful call.
type Result struct {
	// ID of the call.
	ID uuid.UUID
	// Number of calls committed before this one.
	Height uint32
	// Returned value, stackitem.Null if method returns nothing.
	Item stackitem.Item
	// Notifications emitted by the call in the emission order.
	Notifications []state.NotificationEvent
}

// Option configures Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets logger. Default is no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithRandomness sets randomness source of the logic modules. Default is
// random.Seeded.
func WithRandomness(src interop.RandomnessSource) Option {
	return func(d *Dispatcher) { d.random = src }
}

// WithMetrics enables metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithToken sets reward token. Default is token.New().
func WithToken(t *token.Token) Option {
	return func(d *Dispatcher) { d.token = t }
}

// Dispatcher is the single entry point of the network. It routes calls to
// the active logic module and executes them atomically against the store.
//
// Dispatcher must be constructed using NewDispatcher.
type Dispatcher struct {
	log      *zap.Logger
	store    *store.Store
	registry *Registry
	token    *token.Token
	random   interop.RandomnessSource
	metrics  *Metrics

	network          contract
	registryContract contract
}

// NewDispatcher returns Dispatcher executing calls against st with modules
// from reg.
func NewDispatcher(st *store.Store, reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		log:              zap.NewNop(),
		store:            st,
		registry:         reg,
		token:            token.New(),
		random:           new(random.Seeded),
		network:          newContract(ID, Name),
		registryContract: newContract(RegistryID, registryName),
	}

	for _, o := range opts {
		o(d)
	}

	return d
}

// Hash returns address of the network.
func (d *Dispatcher) Hash() util.Uint160 {
	return d.network.hash
}

// Token returns reward token of the network.
func (d *Dispatcher) Token() *token.Token {
	return d.token
}

// Registry returns implementation registry of the network.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Init installs the administrator and the reward token owner. Repeated
// calls with the same administrator are no-op.
func (d *Dispatcher) Init(admin util.Uint160) error {
	_, err := d.execute(admin, "init", d.registryContract, true, func(ic *interop.Context) (stackitem.Item, bool, error) {
		err := InitAdmin(ic, admin)
		if err != nil {
			return nil, false, err
		}

		d.token.Deploy(ic.With(d.token), admin)

		return nil, false, nil
	})

	return err
}

// SetImplementation activates registered module on behalf of caller.
func (d *Dispatcher) SetImplementation(caller util.Uint160, ref string) error {
	_, err := d.execute(caller, "setImplementation", d.registryContract, true, func(ic *interop.Context) (stackitem.Item, bool, error) {
		return nil, false, d.registry.SetImplementation(ic, d.network, ref)
	})

	return err
}

// TransferAdmin passes the administrator role on behalf of caller. If the
// active module implements interop.AdminListener, it is notified within the
// same call.
func (d *Dispatcher) TransferAdmin(caller, newAdmin util.Uint160) error {
	_, err := d.execute(caller, "transferAdmin", d.registryContract, true, func(ic *interop.Context) (stackitem.Item, bool, error) {
		err := TransferAdmin(ic, newAdmin)
		if err != nil {
			return nil, false, err
		}

		m, err := d.registry.Active(ic)
		if errors.Is(err, common.ErrNoImplementation) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}

		if l, ok := m.(interop.AdminListener); ok {
			err = l.OnAdminChange(ic.With(d.network), newAdmin)
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", m.Name(), err)
			}
		}

		return nil, false, nil
	})

	return err
}

// Implementation returns reference and version of the active module. It
// returns common.ErrNoImplementation if nothing is active.
func (d *Dispatcher) Implementation() (string, int, error) {
	var (
		ref     string
		version int
	)

	_, err := d.execute(util.Uint160{}, "implementation", d.registryContract, false, func(ic *interop.Context) (stackitem.Item, bool, error) {
		var ok bool

		ref, version, ok = Implementation(ic)
		if !ok {
			return nil, true, common.ErrNoImplementation
		}

		return nil, true, nil
	})

	return ref, version, err
}

// Admin returns the administrator. It returns common.ErrNotInitialized
// before Init.
func (d *Dispatcher) Admin() (util.Uint160, error) {
	var admin util.Uint160

	_, err := d.execute(util.Uint160{}, "admin", d.registryContract, false, func(ic *interop.Context) (stackitem.Item, bool, error) {
		var ok bool

		admin, ok = Admin(ic)
		if !ok {
			return nil, true, common.ErrNotInitialized
		}

		return nil, true, nil
	})

	return admin, err
}

// Height returns number of committed calls.
func (d *Dispatcher) Height() (uint32, error) {
	var h uint32

	_, err := d.execute(util.Uint160{}, "height", d.registryContract, false, func(ic *interop.Context) (stackitem.Item, bool, error) {
		h = ic.Height
		return nil, true, nil
	})

	return h, err
}

// Invoke calls method of the active module on behalf of caller. Arguments
// are converted with interop.ToStackItem. Changes are committed unless the
// method is safe.
func (d *Dispatcher) Invoke(caller util.Uint160, method string, args ...any) (*Result, error) {
	return d.execute(caller, method, d.network, true, d.moduleCall(method, args))
}

// TestInvoke is Invoke which never commits.
func (d *Dispatcher) TestInvoke(caller util.Uint160, method string, args ...any) (*Result, error) {
	return d.execute(caller, method, d.network, false, d.moduleCall(method, args))
}

// InvokeToken calls method of the reward token on behalf of caller.
func (d *Dispatcher) InvokeToken(caller util.Uint160, method string, args ...any) (*Result, error) {
	return d.execute(caller, method, d.token, true, contractCall(d.token, method, args))
}

// TestInvokeToken is InvokeToken which never commits.
func (d *Dispatcher) TestInvokeToken(caller util.Uint160, method string, args ...any) (*Result, error) {
	return d.execute(caller, method, d.token, false, contractCall(d.token, method, args))
}

type callFunc func(ic *interop.Context) (res stackitem.Item, safe bool, err error)

func (d *Dispatcher) moduleCall(method string, args []any) callFunc {
	return func(ic *interop.Context) (stackitem.Item, bool, error) {
		m, err := d.registry.Active(ic.With(d.registryContract))
		if err != nil {
			return nil, false, err
		}

		return call(ic, m.Methods(), method, args)
	}
}

func contractCall(c interop.Contract, method string, args []any) callFunc {
	return func(ic *interop.Context) (stackitem.Item, bool, error) {
		return call(ic, c.Methods(), method, args)
	}
}

func call(ic *interop.Context, methods []interop.Method, name string, args []any) (stackitem.Item, bool, error) {
	m, _ := interop.FindMethod(methods, name)

	items := make([]stackitem.Item, len(args))
	for i := range args {
		items[i] = interop.ToStackItem(args[i])
	}

	res, err := interop.Call(ic, methods, name, items)

	return res, m.Safe, err
}

func (d *Dispatcher) execute(caller util.Uint160, method string, target interop.Contract, commit bool, f callFunc) (*Result, error) {
	var (
		start   = time.Now()
		res     *Result
		persist bool
	)

	err := d.store.Transact(func(dao *storage.MemCachedStore) (bool, error) {
		ic := interop.NewContext(dao, nil)
		ic.Caller = caller
		ic.Random = d.random
		ic.Rewards = token.Gateway{Token: d.token}
		ic.Log = d.log.With(
			zap.Stringer("invocation", ic.InvocationID),
			zap.String("caller", address.Uint160ToString(caller)),
			zap.String("method", method))

		reg := ic.With(d.registryContract)
		reg.Height = Height(reg)
		ic.Height = reg.Height

		ic = ic.With(target)

		item, safe, err := f(ic)
		if err != nil {
			return false, err
		}

		persist = commit && !safe
		if persist {
			err = setHeight(reg, ic.Height+1)
			if err != nil {
				return false, err
			}
		}

		res = &Result{
			ID:            ic.InvocationID,
			Height:        ic.Height,
			Item:          item,
			Notifications: ic.Notifications(),
		}

		return persist, nil
	})

	d.metrics.observe(method, time.Since(start), err)

	if err != nil {
		d.log.Debug("call failed", zap.String("method", method), zap.Error(err))
		return nil, err
	}

	if persist {
		d.metrics.setHeight(res.Height + 1)
	}

	return res, nil
}
