package token

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
)

// Methods implements interop.Contract. Transfers are made on behalf of the
// caller.
func (t *Token) Methods() []interop.Method {
	return []interop.Method{
		{Name: "symbol", Safe: true, Func: func(*interop.Context, []stackitem.Item) (stackitem.Item, error) {
			return stackitem.Make(t.Symbol()), nil
		}},
		{Name: "decimals", Safe: true, Func: func(*interop.Context, []stackitem.Item) (stackitem.Item, error) {
			return stackitem.Make(t.Decimals()), nil
		}},
		{Name: "totalSupply", Safe: true, Func: func(ic *interop.Context, _ []stackitem.Item) (stackitem.Item, error) {
			n, err := t.TotalSupply(ic)
			if err != nil {
				return nil, err
			}
			return stackitem.Make(n), nil
		}},
		{Name: "balanceOf", ParamCount: 1, Safe: true, Func: t.balanceOfMethod},
		{Name: "allowance", ParamCount: 2, Safe: true, Func: t.allowanceMethod},
		{Name: "transfer", ParamCount: 2, Func: t.transferMethod},
		{Name: "approve", ParamCount: 2, Func: t.approveMethod},
		{Name: "transferFrom", ParamCount: 3, Func: t.transferFromMethod},
		{Name: "mint", ParamCount: 2, Func: t.mintMethod},
		{Name: "distribute", ParamCount: 2, Func: t.distributeMethod},
	}
}

func (t *Token) balanceOfMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	acc, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	n, err := t.BalanceOf(ic, acc)
	if err != nil {
		return nil, err
	}

	return stackitem.Make(n), nil
}

func (t *Token) allowanceMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	owner, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	spender, err := interop.ToUint160(args[1])
	if err != nil {
		return nil, err
	}

	n, err := t.Allowance(ic, owner, spender)
	if err != nil {
		return nil, err
	}

	return stackitem.Make(n), nil
}

func (t *Token) transferMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	to, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	amount, err := interop.ToInt64(args[1])
	if err != nil {
		return nil, err
	}

	return stackitem.NewBool(true), t.Transfer(ic, ic.Caller, to, amount)
}

func (t *Token) approveMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	spender, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	amount, err := interop.ToInt64(args[1])
	if err != nil {
		return nil, err
	}

	return stackitem.NewBool(true), t.Approve(ic, ic.Caller, spender, amount)
}

func (t *Token) transferFromMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	from, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	to, err := interop.ToUint160(args[1])
	if err != nil {
		return nil, err
	}

	amount, err := interop.ToInt64(args[2])
	if err != nil {
		return nil, err
	}

	return stackitem.NewBool(true), t.TransferFrom(ic, ic.Caller, from, to, amount)
}

func (t *Token) mintMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	to, err := interop.ToUint160(args[0])
	if err != nil {
		return nil, err
	}

	amount, err := interop.ToInt64(args[1])
	if err != nil {
		return nil, err
	}

	return nil, t.Mint(ic, to, amount)
}

func (t *Token) distributeMethod(ic *interop.Context, args []stackitem.Item) (stackitem.Item, error) {
	accs, ok := args[0].Value().([]stackitem.Item)
	if !ok {
		return nil, fmt.Errorf("%w: accounts must be an array", common.ErrInvalidArgument)
	}

	amounts, ok := args[1].Value().([]stackitem.Item)
	if !ok {
		return nil, fmt.Errorf("%w: amounts must be an array", common.ErrInvalidArgument)
	}

	if len(accs) != len(amounts) {
		return nil, fmt.Errorf("%w: %d accounts, %d amounts", common.ErrInvalidArgument, len(accs), len(amounts))
	}

	to := make([]util.Uint160, len(accs))
	n := make([]int64, len(amounts))

	for i := range accs {
		var err error

		if to[i], err = interop.ToUint160(accs[i]); err != nil {
			return nil, fmt.Errorf("account #%d: %w", i, err)
		}

		if n[i], err = interop.ToInt64(amounts[i]); err != nil {
			return nil, fmt.Errorf("amount #%d: %w", i, err)
		}
	}

	return nil, t.Distribute(ic, to, n)
}
