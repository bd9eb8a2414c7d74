package interop

import (
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"go.uber.org/zap"
)

// Context is the execution context of a single external call. It binds the
// executing contract to the storage snapshot of the call and carries the
// identity of the caller explicitly through every call boundary.
//
// Context values must be constructed using NewContext.
type Context struct {
	// Caller is the account or contract that invoked the executing contract.
	Caller util.Uint160
	// Hash is the address of the executing contract.
	Hash util.Uint160
	// ID is the storage namespace of the executing contract.
	ID int32

	// InvocationID identifies the external call this context belongs to.
	InvocationID uuid.UUID
	// Height is the number of calls committed before the current one.
	Height uint32

	// Random provides pseudo-random numbers to the executing contract.
	Random RandomnessSource
	// Rewards is the token gateway available to the executing contract.
	Rewards RewardGateway

	Log *zap.Logger

	dao           *storage.MemCachedStore
	notifications *[]state.NotificationEvent
	draws         *uint32
}

// NewContext returns Context operating on the given snapshot. Nil logger is
// replaced with a no-op one.
func NewContext(dao *storage.MemCachedStore, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}

	return &Context{
		InvocationID:  uuid.New(),
		Log:           log,
		dao:           dao,
		notifications: new([]state.NotificationEvent),
		draws:         new(uint32),
	}
}

// Storage returns storage context of the executing contract.
func (ic *Context) Storage() *StorageContext {
	return &StorageContext{id: ic.ID, dao: ic.dao}
}

// StorageOf returns storage context of the contract with the given ID. It is
// meant for infrastructure code (registry, tooling), contracts use Storage.
func (ic *Context) StorageOf(id int32) *StorageContext {
	return &StorageContext{id: id, dao: ic.dao}
}

// CheckWitness checks whether h is the direct caller of the executing
// contract.
func (ic *Context) CheckWitness(h util.Uint160) bool {
	return ic.Caller.Equals(h)
}

// Enter returns context for the call of c made by the executing contract.
// Storage snapshot and notifications are shared with ic, the caller becomes
// the executing contract.
func (ic *Context) Enter(c Contract) *Context {
	sub := *ic
	sub.Caller = ic.Hash
	sub.Hash = c.Hash()
	sub.ID = c.ID()
	sub.Log = ic.Log.With(zap.Int32("contract", c.ID()))
	return &sub
}

// With returns context of the same call for c executed on behalf of the same
// caller. It is meant for infrastructure code switching between namespaces.
func (ic *Context) With(c Contract) *Context {
	sub := *ic
	sub.Hash = c.Hash()
	sub.ID = c.ID()
	return &sub
}

// Notify emits named notification of the executing contract. Arguments are
// converted with ToStackItem.
func (ic *Context) Notify(name string, args ...any) {
	items := make([]stackitem.Item, len(args))
	for i := range args {
		items[i] = ToStackItem(args[i])
	}

	*ic.notifications = append(*ic.notifications, state.NotificationEvent{
		ScriptHash: ic.Hash,
		Name:       name,
		Item:       stackitem.NewArray(items),
	})
}

// Notifications returns all notifications emitted within the call so far.
func (ic *Context) Notifications() []state.NotificationEvent {
	return *ic.notifications
}

// Draw returns the number of random values drawn within the call so far and
// counts one more draw. The counter is shared by all contexts of the call.
func (ic *Context) Draw() uint32 {
	if ic.draws == nil {
		ic.draws = new(uint32)
	}

	n := *ic.draws
	*ic.draws++

	return n
}

// GetRandom returns next pseudo-random value of the call.
func (ic *Context) GetRandom() uint64 {
	return ic.Random.GetRandom(ic)
}
