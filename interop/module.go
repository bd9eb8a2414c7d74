package interop

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
)

// Function is a method implementation. Nil result is returned to the caller
// as stackitem.Null.
type Function func(ic *Context, args []stackitem.Item) (stackitem.Item, error)

// Method describes a callable method of a contract or logic module.
type Method struct {
	Name       string
	ParamCount int
	// Safe methods do not change state, their invocations are never
	// committed.
	Safe bool
	Func Function
}

// Contract is a contract with its own storage namespace and address.
type Contract interface {
	ID() int32
	Hash() util.Uint160
	Methods() []Method
}

// Module is a swappable logic module. Modules have neither storage nor
// address of their own: they are executed in the context of the proxy
// contract which owns the data, so any module version sees the records
// written by the previous ones.
type Module interface {
	// Name returns reference name of the module.
	Name() string
	// Version returns version of the module code.
	Version() int
	// Methods returns method table of the module.
	Methods() []Method
	// OnDeploy is called when the module becomes active. isUpdate is false for
	// the very first activation, otherwise prevVersion holds the version of
	// the replaced module.
	OnDeploy(ic *Context, isUpdate bool, prevVersion int) error
}

// AdminListener is implemented by modules which keep their own copy of the
// network administrator.
type AdminListener interface {
	// OnAdminChange is called in the network context when the administrator
	// role passes to newAdmin.
	OnAdminChange(ic *Context, newAdmin util.Uint160) error
}

// RandomnessSource provides pseudo-random numbers to the logic modules.
// Implementations are free to derive values from the call data (see Context)
// so that the sequence is reproducible.
type RandomnessSource interface {
	// GetRandom returns next pseudo-random value for the call.
	GetRandom(ic *Context) uint64
}

// RewardGateway is the fungible reward token as seen by the logic modules.
// All amounts move between the given account and the account of the calling
// contract (ic.Hash).
type RewardGateway interface {
	// TransferFrom moves amount from payer to the calling contract within
	// the allowance payer gave to it.
	TransferFrom(ic *Context, payer util.Uint160, amount int64) error
	// Transfer moves amount from the calling contract to recipient.
	Transfer(ic *Context, recipient util.Uint160, amount int64) error
	// BalanceOf returns token balance of the account.
	BalanceOf(ic *Context, account util.Uint160) int64
}

// FindMethod looks up method by name.
func FindMethod(methods []Method, name string) (Method, bool) {
	for i := range methods {
		if methods[i].Name == name {
			return methods[i], true
		}
	}
	return Method{}, false
}

// Call invokes named method from the table with the given arguments.
func Call(ic *Context, methods []Method, name string, args []stackitem.Item) (stackitem.Item, error) {
	m, ok := FindMethod(methods, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownMethod, name)
	}

	if len(args) != m.ParamCount {
		return nil, fmt.Errorf("%w: method %s expects %d parameters, got %d",
			common.ErrInvalidArgument, name, m.ParamCount, len(args))
	}

	res, err := m.Func(ic, args)
	if err != nil {
		return nil, err
	}

	if res == nil {
		res = stackitem.Null{}
	}

	return res, nil
}
