package reviewnet

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/review"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

// Name is the reference name of the module.
const Name = "reviewnet"

// Module is the review network logic module.
type Module struct {
	committeeSize int
}

// New returns Module selecting committees of the given size. Non-positive
// size means review.DefaultCommitteeSize.
func New(committeeSize int) *Module {
	return &Module{committeeSize: committeeSize}
}

// Name implements interop.Module.
func (m *Module) Name() string {
	return Name
}

// Version implements interop.Module.
func (m *Module) Version() int {
	return common.Version
}

// OnDeploy implements interop.Module. On the first activation the caller
// becomes the network owner. Updates are accepted from common.PrevVersion
// and newer, existing records are kept as is.
func (m *Module) OnDeploy(ic *interop.Context, isUpdate bool, prevVersion int) error {
	if isUpdate {
		if err := common.CheckVersion(prevVersion); err != nil {
			return err
		}

		ic.Log.Info("review network module updated",
			zap.String("from", common.VersionString(prevVersion)),
			zap.String("to", common.VersionString(m.Version())))

		return nil
	}

	err := review.Init(ic, ic.Caller, m.committeeSize)
	if err != nil {
		return err
	}

	ic.Log.Info("review network module initialized")

	return nil
}

// OnAdminChange implements interop.AdminListener. The network owner follows
// the administrator.
func (m *Module) OnAdminChange(ic *interop.Context, newAdmin util.Uint160) error {
	return review.SetOwner(ic, newAdmin)
}
