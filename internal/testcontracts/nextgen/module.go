// Package nextgen provides an upgraded review network module used to test
// implementation swaps.
package nextgen

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"github.com/reviewnet/reviewnet-contract/contracts/user"
	"github.com/reviewnet/reviewnet-contract/interop"
)

// Name is the reference name of the module.
const Name = "reviewnet-nextgen"

// Version is one minor version ahead of common.Version.
const Version = common.Version + 1_000

// TestMethodResult is returned by newTestMethod.
const TestMethodResult = 123

// Module extends reviewnet.Module with new methods.
type Module struct {
	*reviewnet.Module
}

// New returns Module.
func New() *Module {
	return &Module{Module: reviewnet.New(0)}
}

// Name implements interop.Module.
func (m *Module) Name() string {
	return Name
}

// Version implements interop.Module.
func (m *Module) Version() int {
	return Version
}

// OnDeploy implements interop.Module. Module can only replace
// common.Version.
func (m *Module) OnDeploy(ic *interop.Context, isUpdate bool, prevVersion int) error {
	if !isUpdate {
		return m.Module.OnDeploy(ic, false, 0)
	}

	if prevVersion != common.Version {
		return fmt.Errorf("%w: expected %d, got %d", common.ErrVersionMismatch, common.Version, prevVersion)
	}

	return nil
}

// Methods implements interop.Module.
func (m *Module) Methods() []interop.Method {
	return append(m.Module.Methods(),
		interop.Method{Name: "newTestMethod", Safe: true, Func: func(*interop.Context, []stackitem.Item) (stackitem.Item, error) {
			return stackitem.Make(TestMethodResult), nil
		}},
		interop.Method{Name: "getUsernameLength", ParamCount: 1, Safe: true, Func: getUsernameLength},
	)
}

func getUsernameLength(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	id, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	name, err := user.Username(ic, id)
	if err != nil {
		return nil, err
	}

	return stackitem.Make(len(name)), nil
}
