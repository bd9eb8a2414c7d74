// Package token contains typed wrappers for the REW token methods served by
// proxy.Dispatcher.
package token

import (
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
)

// Invoker is used by ContractReader to call read-only methods.
type Invoker interface {
	TestInvokeToken(caller util.Uint160, method string, args ...any) (*proxy.Result, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	InvokeToken(caller util.Uint160, method string, args ...any) (*proxy.Result, error)
}

// ContractReader implements safe REW token methods.
type ContractReader struct {
	invoker Invoker
}

// Contract implements all REW token methods on behalf of a single account.
type Contract struct {
	ContractReader
	actor  Actor
	caller util.Uint160
}

// NewReader creates an instance of ContractReader using the given Invoker.
func NewReader(invoker Invoker) *ContractReader {
	return &ContractReader{invoker}
}

// New creates an instance of Contract calling methods on behalf of caller.
func New(actor Actor, caller util.Uint160) *Contract {
	return &Contract{ContractReader{actor}, actor, caller}
}

// Caller returns account the Contract acts on behalf of.
func (c *Contract) Caller() util.Uint160 {
	return c.caller
}

func (c *ContractReader) call(method string, args ...any) (*result.Invoke, error) {
	res, err := c.invoker.TestInvokeToken(util.Uint160{}, method, args...)
	if err != nil {
		return nil, err
	}

	return &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{res.Item},
	}, nil
}

// Symbol invokes `symbol` method of contract.
func (c *ContractReader) Symbol() (string, error) {
	return unwrap.PrintableASCIIString(c.call("symbol"))
}

// Decimals invokes `decimals` method of contract.
func (c *ContractReader) Decimals() (int, error) {
	n, err := unwrap.Int64(c.call("decimals"))
	return int(n), err
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (int64, error) {
	return unwrap.Int64(c.call("totalSupply"))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(account util.Uint160) (int64, error) {
	return unwrap.Int64(c.call("balanceOf", account))
}

// Allowance invokes `allowance` method of contract.
func (c *ContractReader) Allowance(owner, spender util.Uint160) (int64, error) {
	return unwrap.Int64(c.call("allowance", owner, spender))
}

// Transfer invokes `transfer` method of contract.
func (c *Contract) Transfer(to util.Uint160, amount int64) (*proxy.Result, error) {
	return c.actor.InvokeToken(c.caller, "transfer", to, amount)
}

// Approve invokes `approve` method of contract.
func (c *Contract) Approve(spender util.Uint160, amount int64) (*proxy.Result, error) {
	return c.actor.InvokeToken(c.caller, "approve", spender, amount)
}

// TransferFrom invokes `transferFrom` method of contract.
func (c *Contract) TransferFrom(from, to util.Uint160, amount int64) (*proxy.Result, error) {
	return c.actor.InvokeToken(c.caller, "transferFrom", from, to, amount)
}

// Distribute invokes `distribute` method of contract.
func (c *Contract) Distribute(accounts []util.Uint160, amounts []int64) (*proxy.Result, error) {
	return c.actor.InvokeToken(c.caller, "distribute", accounts, amounts)
}

// Mint invokes `mint` method of contract.
func (c *Contract) Mint(to util.Uint160, amount int64) (*proxy.Result, error) {
	return c.actor.InvokeToken(c.caller, "mint", to, amount)
}
