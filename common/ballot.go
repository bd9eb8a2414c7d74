package common

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Vote ledger values.
const (
	NotYetVoted = 0
	VoteApprove = 1
	VoteReject  = -1
)

// Ballot is a vote ledger of a fixed committee.
type Ballot struct {
	// Committee members in selection order.
	Voters []util.Uint160

	// Ledger values of the members, same order as Voters.
	Votes []int64
}

// NewBallot returns Ballot with NotYetVoted entries for all voters.
func NewBallot(voters []util.Uint160) Ballot {
	return Ballot{
		Voters: voters,
		Votes:  make([]int64, len(voters)),
	}
}

// ToStackItem implements stackitem.Convertible.
func (b *Ballot) ToStackItem() (stackitem.Item, error) {
	voters := make([]stackitem.Item, len(b.Voters))
	votes := make([]stackitem.Item, len(b.Votes))
	for i := range b.Voters {
		voters[i] = stackitem.NewByteArray(b.Voters[i].BytesBE())
		votes[i] = stackitem.Make(b.Votes[i])
	}

	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewArray(voters),
		stackitem.NewArray(votes),
	}), nil
}

// FromStackItem implements stackitem.Convertible.
func (b *Ballot) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 2 {
		return errors.New("invalid ballot structure")
	}

	voters, ok := fields[0].Value().([]stackitem.Item)
	if !ok {
		return errors.New("invalid ballot voters")
	}

	votes, ok := fields[1].Value().([]stackitem.Item)
	if !ok || len(votes) != len(voters) {
		return errors.New("invalid ballot votes")
	}

	b.Voters = make([]util.Uint160, len(voters))
	b.Votes = make([]int64, len(votes))

	for i := range voters {
		var err error

		b.Voters[i], err = BytesToUint160(voters[i])
		if err != nil {
			return fmt.Errorf("voter #%d: %w", i, err)
		}

		n, err := votes[i].TryInteger()
		if err != nil {
			return fmt.Errorf("vote #%d: %w", i, err)
		}

		b.Votes[i] = n.Int64()
	}

	return nil
}
