package proxy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

const (
	activeKey  = "i"
	versionKey = "n"
	adminKey   = "a"
	heightKey  = "h"
)

// Registry is the implementation registry of the network. Known modules are
// kept in memory, the active module reference and the administrator are
// stored in the registry namespace.
type Registry struct {
	mtx     sync.RWMutex
	modules map[string]interop.Module
}

// NewRegistry returns Registry knowing the given modules.
func NewRegistry(modules ...interop.Module) (*Registry, error) {
	r := &Registry{modules: make(map[string]interop.Module, len(modules))}

	for i := range modules {
		if err := r.Register(modules[i]); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register makes module available for activation by its name.
func (r *Registry) Register(m interop.Module) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.modules[m.Name()]; ok {
		return fmt.Errorf("%w: module %s is already registered", common.ErrInvalidArgument, m.Name())
	}

	r.modules[m.Name()] = m

	return nil
}

// Module returns registered module by its reference.
func (r *Registry) Module(ref string) (interop.Module, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	m, ok := r.modules[ref]
	return m, ok
}

// Modules returns sorted references of all registered modules.
func (r *Registry) Modules() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := make([]string, 0, len(r.modules))
	for ref := range r.modules {
		res = append(res, ref)
	}

	sort.Strings(res)

	return res
}

// Active returns active module. ic must be in the registry namespace.
func (r *Registry) Active(ic *interop.Context) (interop.Module, error) {
	ref := ic.Storage().Get([]byte(activeKey))
	if ref == nil {
		return nil, common.ErrNoImplementation
	}

	m, ok := r.Module(string(ref))
	if !ok {
		return nil, fmt.Errorf("%w: active module %s", common.ErrUnknownModule, ref)
	}

	return m, nil
}

// SetImplementation activates registered module. It can be invoked only by
// the administrator. The deploy hook of the module is executed in the
// network namespace, in the same call.
func (r *Registry) SetImplementation(ic *interop.Context, network interop.Contract, ref string) error {
	if err := checkAdmin(ic); err != nil {
		return err
	}

	m, ok := r.Module(ref)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownModule, ref)
	}

	ctx := ic.Storage()

	prev, err := common.GetInt(ctx, []byte(versionKey), 0)
	if err != nil {
		return fmt.Errorf("read active version: %w", err)
	}

	isUpdate := ctx.Get([]byte(activeKey)) != nil

	// the deploy hook runs on behalf of the administrator
	nic := ic.With(network)
	nic.Log = ic.Log.With(zap.String("module", ref))

	err = m.OnDeploy(nic, isUpdate, int(prev))
	if err != nil {
		return fmt.Errorf("deploy %s: %w", ref, err)
	}

	ctx.Put([]byte(activeKey), []byte(ref))

	err = common.SetInt(ctx, []byte(versionKey), int64(m.Version()))
	if err != nil {
		return err
	}

	ic.Log.Info("implementation set",
		zap.String("module", ref),
		zap.String("version", common.VersionString(m.Version())),
		zap.Bool("update", isUpdate))

	return nil
}

// Implementation returns reference and version of the active module. ok is
// false if nothing is active.
func Implementation(ic *interop.Context) (ref string, version int, ok bool) {
	ctx := ic.Storage()

	v := ctx.Get([]byte(activeKey))
	if v == nil {
		return "", 0, false
	}

	n, _ := common.GetInt(ctx, []byte(versionKey), 0)

	return string(v), int(n), true
}

// Admin returns the administrator. ok is false before InitAdmin.
func Admin(ic *interop.Context) (admin util.Uint160, ok bool) {
	v := ic.Storage().Get([]byte(adminKey))
	if v == nil {
		return util.Uint160{}, false
	}

	admin, err := util.Uint160DecodeBytesBE(v)

	return admin, err == nil
}

func checkAdmin(ic *interop.Context) error {
	admin, ok := Admin(ic)
	if !ok {
		return common.ErrNotInitialized
	}

	return common.CheckOwnerWitness(ic, admin)
}

// InitAdmin installs the first administrator. Repeated calls with the same
// account are no-op.
func InitAdmin(ic *interop.Context, admin util.Uint160) error {
	if admin.Equals(util.Uint160{}) {
		return fmt.Errorf("%w: zero administrator", common.ErrInvalidArgument)
	}

	ctx := ic.Storage()

	if cur, ok := Admin(ic); ok {
		if cur.Equals(admin) {
			return nil
		}
		return fmt.Errorf("%w: administrator is already set", common.ErrUnauthorized)
	}

	ctx.Put([]byte(adminKey), admin.BytesBE())
	ic.Log.Info("administrator set", zap.String("admin", address.Uint160ToString(admin)))

	return nil
}

// TransferAdmin passes the administrator role to another account. It can be
// invoked only by the administrator.
func TransferAdmin(ic *interop.Context, newAdmin util.Uint160) error {
	if err := checkAdmin(ic); err != nil {
		return err
	}

	if newAdmin.Equals(util.Uint160{}) {
		return fmt.Errorf("%w: zero administrator", common.ErrInvalidArgument)
	}

	ic.Storage().Put([]byte(adminKey), newAdmin.BytesBE())
	ic.Log.Info("administrator changed", zap.String("admin", address.Uint160ToString(newAdmin)))

	return nil
}

// Height returns number of committed calls.
func Height(ic *interop.Context) uint32 {
	n, _ := common.GetInt(ic.Storage(), []byte(heightKey), 0)
	return uint32(n)
}

func setHeight(ic *interop.Context, h uint32) error {
	return common.SetInt(ic.Storage(), []byte(heightKey), int64(h))
}
