package migration

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/stretchr/testify/require"
)

func makeTestInvoke(tb testing.TB, d *proxy.Dispatcher, method string, args ...any) stackitem.Item {
	res, err := d.TestInvoke(util.Uint160{}, method, args...)
	require.NoError(tb, err, "method '%s'", method)

	item, err := unwrap.Item(&result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{res.Item},
	}, nil)
	require.NoError(tb, err)

	return item
}
