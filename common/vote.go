package common

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Threshold returns number of same votes deciding for the committee of n
// members: strict majority, N/2+1.
func Threshold(n int) int {
	return n/2 + 1
}

// CheckVoter returns position of the voter in the ballot. It fails with
// ErrNotCommitteeMember if voter is not in the committee and with
// ErrAlreadyVoted if the voter has already cast a vote.
func (b *Ballot) CheckVoter(voter util.Uint160) (int, error) {
	for i := range b.Voters {
		if !b.Voters[i].Equals(voter) {
			continue
		}

		if b.Votes[i] != NotYetVoted {
			return -1, ErrAlreadyVoted
		}

		return i, nil
	}

	return -1, ErrNotCommitteeMember
}

// Cast records direction of the voter at position i returned by CheckVoter.
func (b *Ballot) Cast(i int, direction int64) error {
	if direction != VoteApprove && direction != VoteReject {
		return ErrInvalidVote
	}

	b.Votes[i] = direction

	return nil
}

// Tally returns number of approving and rejecting votes.
func (b *Ballot) Tally() (approve, reject int) {
	for i := range b.Votes {
		switch b.Votes[i] {
		case VoteApprove:
			approve++
		case VoteReject:
			reject++
		}
	}

	return approve, reject
}

// Decision returns VoteApprove or VoteReject once the corresponding votes
// reach Threshold of the committee size. Otherwise NotYetVoted is returned.
func (b *Ballot) Decision() int64 {
	var (
		approve, reject = b.Tally()
		threshold       = Threshold(len(b.Voters))
	)

	switch {
	case approve >= threshold:
		return VoteApprove
	case reject >= threshold:
		return VoteReject
	default:
		return NotYetVoted
	}
}
