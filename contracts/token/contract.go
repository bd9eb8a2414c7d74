package token

import (
	"errors"
	"fmt"
	"math"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

// Account structure stores balance of each REW account.
type Account struct {
	// Active balance
	Balance int64
}

const (
	// ID is the storage namespace of the token.
	ID int32 = -2

	// Name is the token contract name used to derive its address.
	Name = "REWToken"

	symbol   = "REW"
	decimals = 0

	accPrefix       = 'a'
	allowancePrefix = 'l'
	supplyKey       = 't'
	ownerKey        = 'o'
)

// Token is the REW token contract.
type Token struct {
	hash util.Uint160
}

// New returns Token.
func New() *Token {
	return &Token{
		hash: state.CreateContractHash(util.Uint160{}, 0, Name),
	}
}

// ID implements interop.Contract.
func (t *Token) ID() int32 {
	return ID
}

// Hash implements interop.Contract.
func (t *Token) Hash() util.Uint160 {
	return t.hash
}

// Deploy initializes the token with the owner allowed to mint. It does
// nothing if the token has already been initialized.
func (t *Token) Deploy(ic *interop.Context, owner util.Uint160) {
	ctx := ic.Storage()
	if ctx.Get([]byte{ownerKey}) != nil {
		return
	}

	ctx.Put([]byte{ownerKey}, owner.BytesBE())
	ic.Log.Info("token contract initialized", zap.Stringer("owner", owner))
}

// Owner returns the account allowed to mint. ok is false before Deploy.
func (t *Token) Owner(ic *interop.Context) (owner util.Uint160, ok bool) {
	v := ic.Storage().Get([]byte{ownerKey})
	if v == nil {
		return util.Uint160{}, false
	}

	owner, err := util.Uint160DecodeBytesBE(v)

	return owner, err == nil
}

// Symbol is a NEP-17 standard method that returns REW token symbol.
func (t *Token) Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns precision of REW
// balances.
func (t *Token) Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns total amount of minted
// tokens.
func (t *Token) TotalSupply(ic *interop.Context) (int64, error) {
	return common.GetInt(ic.Storage(), []byte{supplyKey}, 0)
}

// BalanceOf is a NEP-17 standard method that returns REW balance of the
// specified account.
func (t *Token) BalanceOf(ic *interop.Context, account util.Uint160) (int64, error) {
	acc, err := getAccount(ic.Storage(), account)
	if err != nil {
		return 0, err
	}

	return acc.Balance, nil
}

// Transfer is a NEP-17 standard method that transfers REW balance from one
// account to another. It can be invoked only by the account owner.
//
// It produces Transfer notification.
func (t *Token) Transfer(ic *interop.Context, from, to util.Uint160, amount int64) error {
	if err := common.CheckOwnerWitness(ic, from); err != nil {
		return err
	}

	return t.transfer(ic, &from, &to, amount)
}

// Approve allows spender to transfer up to amount from the calling account.
// Previous allowance is replaced.
//
// It produces Approval notification.
func (t *Token) Approve(ic *interop.Context, owner, spender util.Uint160, amount int64) error {
	if err := common.CheckOwnerWitness(ic, owner); err != nil {
		return err
	}

	if amount < 0 {
		return fmt.Errorf("%w: negative allowance", common.ErrInvalidArgument)
	}

	ctx := ic.Storage()
	key := allowanceKey(owner, spender)

	if amount == 0 {
		ctx.Delete(key)
	} else if err := common.SetInt(ctx, key, amount); err != nil {
		return err
	}

	ic.Notify("Approval", owner, spender, amount)

	return nil
}

// Allowance returns amount spender can still transfer from owner.
func (t *Token) Allowance(ic *interop.Context, owner, spender util.Uint160) (int64, error) {
	return common.GetInt(ic.Storage(), allowanceKey(owner, spender), 0)
}

// TransferFrom transfers amount from one account to another within the
// allowance given to the spender. It can be invoked only by the spender.
//
// It produces Transfer notification.
func (t *Token) TransferFrom(ic *interop.Context, spender, from, to util.Uint160, amount int64) error {
	if err := common.CheckOwnerWitness(ic, spender); err != nil {
		return err
	}

	ctx := ic.Storage()
	key := allowanceKey(from, spender)

	allowance, err := common.GetInt(ctx, key, 0)
	if err != nil {
		return err
	}

	if allowance < amount {
		return fmt.Errorf("%w: %d allowed, %d requested", common.ErrInsufficientAllowance, allowance, amount)
	}

	err = t.transfer(ic, &from, &to, amount)
	if err != nil {
		return err
	}

	if allowance == amount {
		ctx.Delete(key)
		return nil
	}

	return common.SetInt(ctx, key, allowance-amount)
}

// Mint is a method that transfers assets to a user account from an empty
// account. It can be invoked only by the token owner. Mint increases total
// supply of the token.
//
// It produces Transfer notification.
func (t *Token) Mint(ic *interop.Context, to util.Uint160, amount int64) error {
	owner, ok := t.Owner(ic)
	if !ok {
		return common.ErrNotInitialized
	}

	if err := common.CheckOwnerWitness(ic, owner); err != nil {
		return err
	}

	supply, err := t.TotalSupply(ic)
	if err != nil {
		return err
	}

	if amount > 0 && supply > math.MaxInt64-amount {
		return fmt.Errorf("%w: total supply %d can't grow by %d", common.ErrInvalidArgument, supply, amount)
	}

	err = t.transfer(ic, nil, &to, amount)
	if err != nil {
		return fmt.Errorf("can't transfer assets: %w", err)
	}

	ic.Log.Debug("assets were minted", zap.Int64("amount", amount))

	return common.SetInt(ic.Storage(), []byte{supplyKey}, supply+amount)
}

// Distribute mints amounts[i] to accounts[i] for every i. It can be invoked
// only by the token owner. Either all amounts are minted or none, as long as
// the call is executed in a single snapshot.
//
// It produces Transfer notification per account.
func (t *Token) Distribute(ic *interop.Context, accounts []util.Uint160, amounts []int64) error {
	if len(accounts) != len(amounts) {
		return fmt.Errorf("%w: %d accounts, %d amounts", common.ErrInvalidArgument, len(accounts), len(amounts))
	}

	for i := range accounts {
		if err := t.Mint(ic, accounts[i], amounts[i]); err != nil {
			return fmt.Errorf("mint to %s: %w", accounts[i].StringLE(), err)
		}
	}

	return nil
}

func (t *Token) transfer(ic *interop.Context, from, to *util.Uint160, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount", common.ErrInvalidArgument)
	}

	ctx := ic.Storage()

	if from != nil {
		amountFrom, err := getAccount(ctx, *from)
		if err != nil {
			return err
		}

		if amountFrom.Balance < amount {
			return fmt.Errorf("%w: %d available, %d requested", common.ErrInsufficientFunds, amountFrom.Balance, amount)
		}

		fromKey := append([]byte{accPrefix}, from.BytesBE()...)

		if amountFrom.Balance == amount {
			ctx.Delete(fromKey)
		} else {
			amountFrom.Balance -= amount
			if err := common.SetSerialized(ctx, fromKey, &amountFrom); err != nil {
				return err
			}
		}
	}

	if to != nil {
		amountTo, err := getAccount(ctx, *to)
		if err != nil {
			return err
		}

		if amountTo.Balance > math.MaxInt64-amount {
			return fmt.Errorf("%w: balance %d can't grow by %d", common.ErrInvalidArgument, amountTo.Balance, amount)
		}

		amountTo.Balance += amount

		err = common.SetSerialized(ctx, append([]byte{accPrefix}, to.BytesBE()...), &amountTo)
		if err != nil {
			return err
		}
	}

	ic.Notify("Transfer", optHash(from), optHash(to), amount)

	return nil
}

func optHash(h *util.Uint160) any {
	if h == nil {
		return nil
	}
	return *h
}

func allowanceKey(owner, spender util.Uint160) []byte {
	key := make([]byte, 0, 1+2*util.Uint160Size)
	key = append(key, allowancePrefix)
	key = append(key, owner.BytesBE()...)
	return append(key, spender.BytesBE()...)
}

func getAccount(ctx common.KV, holder util.Uint160) (Account, error) {
	var acc Account

	_, err := common.GetSerialized(ctx, append([]byte{accPrefix}, holder.BytesBE()...), &acc)
	if err != nil {
		return Account{}, fmt.Errorf("read account: %w", err)
	}

	return acc, nil
}

// ToStackItem implements stackitem.Convertible.
func (a *Account) ToStackItem() (stackitem.Item, error) {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(a.Balance),
	}), nil
}

// FromStackItem implements stackitem.Convertible.
func (a *Account) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 1 {
		return errors.New("invalid account structure")
	}

	n, err := fields[0].TryInteger()
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}

	a.Balance = n.Int64()

	return nil
}
