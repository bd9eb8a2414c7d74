package token

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/interop"
)

// Gateway exposes Token to the logic modules as interop.RewardGateway. The
// calling contract acts as the spender and the paying account.
type Gateway struct {
	Token *Token
}

// TransferFrom implements interop.RewardGateway.
func (g Gateway) TransferFrom(ic *interop.Context, payer util.Uint160, amount int64) error {
	return g.Token.TransferFrom(ic.Enter(g.Token), ic.Hash, payer, ic.Hash, amount)
}

// Transfer implements interop.RewardGateway.
func (g Gateway) Transfer(ic *interop.Context, recipient util.Uint160, amount int64) error {
	return g.Token.Transfer(ic.Enter(g.Token), ic.Hash, recipient, amount)
}

// BalanceOf implements interop.RewardGateway. Unreadable accounts are
// reported as empty.
func (g Gateway) BalanceOf(ic *interop.Context, account util.Uint160) int64 {
	n, _ := g.Token.BalanceOf(ic.Enter(g.Token), account)
	return n
}
