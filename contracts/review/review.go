package review

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/catalog"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

// Review statuses.
const (
	StatusPending  = 0
	StatusApproved = 1
	StatusRejected = 2
)

// Score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Review is a product review under committee validation.
type Review struct {
	Address util.Uint160
	Product util.Uint160
	Author  util.Uint160
	Score   int64
	// Content hash of the off-network review text.
	Hash   string
	Status int64

	// Committee and its vote ledger.
	Ballot common.Ballot
}

const reviewPrefix = 'r'

// Create saves new pending review of the registered product, selects its
// validation committee from the validator pool and records the caller as the
// author.
//
// It produces ReviewAdded notification followed by ValidatorChosen
// notification per committee member.
func Create(ic *interop.Context, address, product util.Uint160, score int64, hash string) error {
	if !catalog.ProductExists(ic, product) {
		return fmt.Errorf("%w: %s", common.ErrUnknownProduct, product.StringLE())
	}

	ctx := ic.Storage()
	key := reviewKey(address)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateReview, address.StringLE())
	}

	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: %d is out of [%d, %d]", common.ErrInvalidScore, score, MinScore, MaxScore)
	}

	pool, err := Validators(ic)
	if err != nil {
		return err
	}

	size, err := CommitteeSize(ic)
	if err != nil {
		return err
	}

	committee := SelectCommittee(ic, pool, size)

	r := Review{
		Address: address,
		Product: product,
		Author:  ic.Caller,
		Score:   score,
		Hash:    hash,
		Status:  StatusPending,
		Ballot:  common.NewBallot(committee),
	}

	err = common.SetSerialized(ctx, key, &r)
	if err != nil {
		return err
	}

	ic.Notify("ReviewAdded", address, product)

	for i := range committee {
		ic.Notify("ValidatorChosen", address, committee[i])
	}

	if len(committee) == 0 {
		ic.Log.Warn("review created with empty committee", zap.Stringer("review", address))
	}

	return nil
}

// Vote records the decision of the calling committee member. The review
// becomes approved or rejected once one direction collects a strict majority
// of the committee.
//
// It produces ReviewApproved or ReviewRejected notification once, when the
// review is resolved.
func Vote(ic *interop.Context, address util.Uint160, direction int64) error {
	r, err := Get(ic, address)
	if err != nil {
		return err
	}

	i, err := r.Ballot.CheckVoter(ic.Caller)
	if err != nil {
		return fmt.Errorf("review %s: %w", address.StringLE(), err)
	}

	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s", common.ErrReviewAlreadyResolved, address.StringLE())
	}

	if err := r.Ballot.Cast(i, direction); err != nil {
		return fmt.Errorf("%w: %d", err, direction)
	}

	switch r.Ballot.Decision() {
	case common.VoteApprove:
		r.Status = StatusApproved
		ic.Notify("ReviewApproved", address)
	case common.VoteReject:
		r.Status = StatusRejected
		ic.Notify("ReviewRejected", address)
	}

	return common.SetSerialized(ic.Storage(), reviewKey(address), &r)
}

// Status returns review status.
func Status(ic *interop.Context, address util.Uint160) (int64, error) {
	r, err := Get(ic, address)
	if err != nil {
		return 0, err
	}

	return r.Status, nil
}

// Get returns review by its address.
func Get(ic *interop.Context, address util.Uint160) (Review, error) {
	var r Review

	ok, err := common.GetSerialized(ic.Storage(), reviewKey(address), &r)
	if err != nil {
		return Review{}, fmt.Errorf("read review: %w", err)
	}

	if !ok {
		return Review{}, fmt.Errorf("%w: %s", common.ErrUnknownReview, address.StringLE())
	}

	return r, nil
}

func reviewKey(address util.Uint160) []byte {
	return append([]byte{reviewPrefix}, address.BytesBE()...)
}

// ToStackItem implements stackitem.Convertible.
func (r *Review) ToStackItem() (stackitem.Item, error) {
	ballot, err := r.Ballot.ToStackItem()
	if err != nil {
		return nil, err
	}

	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(r.Address.BytesBE()),
		stackitem.NewByteArray(r.Product.BytesBE()),
		stackitem.NewByteArray(r.Author.BytesBE()),
		stackitem.Make(r.Score),
		stackitem.NewByteArray([]byte(r.Hash)),
		stackitem.Make(r.Status),
		ballot,
	}), nil
}

// FromStackItem implements stackitem.Convertible. Trailing fields unknown to
// the current layout are ignored.
func (r *Review) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 7 {
		return errors.New("invalid review structure")
	}

	var err error

	if r.Address, err = common.BytesToUint160(fields[0]); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if r.Product, err = common.BytesToUint160(fields[1]); err != nil {
		return fmt.Errorf("product: %w", err)
	}
	if r.Author, err = common.BytesToUint160(fields[2]); err != nil {
		return fmt.Errorf("author: %w", err)
	}
	if r.Score, err = interop.ToInt64(fields[3]); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if r.Hash, err = interop.ToString(fields[4]); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if r.Status, err = interop.ToInt64(fields[5]); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if err = r.Ballot.FromStackItem(fields[6]); err != nil {
		return fmt.Errorf("ballot: %w", err)
	}

	return nil
}
