package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestThreshold(t *testing.T) {
	for n, exp := range map[int]int{0: 1, 1: 1, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4} {
		require.Equal(t, exp, Threshold(n), "committee of %d", n)
	}
}

func TestBallot(t *testing.T) {
	voters := []util.Uint160{{1}, {2}, {3}}
	b := NewBallot(voters)

	_, err := b.CheckVoter(util.Uint160{4})
	require.ErrorIs(t, err, ErrNotCommitteeMember)

	i, err := b.CheckVoter(voters[1])
	require.NoError(t, err)
	require.Equal(t, 1, i)

	require.ErrorIs(t, b.Cast(i, 0), ErrInvalidVote)
	require.ErrorIs(t, b.Cast(i, 2), ErrInvalidVote)
	require.NoError(t, b.Cast(i, VoteReject))
	require.EqualValues(t, NotYetVoted, b.Decision())

	_, err = b.CheckVoter(voters[1])
	require.ErrorIs(t, err, ErrAlreadyVoted)

	i, err = b.CheckVoter(voters[0])
	require.NoError(t, err)
	require.NoError(t, b.Cast(i, VoteApprove))
	require.EqualValues(t, NotYetVoted, b.Decision())

	approve, reject := b.Tally()
	require.Equal(t, 1, approve)
	require.Equal(t, 1, reject)

	i, err = b.CheckVoter(voters[2])
	require.NoError(t, err)
	require.NoError(t, b.Cast(i, VoteApprove))
	require.EqualValues(t, VoteApprove, b.Decision())

	t.Run("encoding", func(t *testing.T) {
		item, err := b.ToStackItem()
		require.NoError(t, err)

		var res Ballot
		require.NoError(t, res.FromStackItem(item))
		require.Equal(t, b, res)
	})

	t.Run("empty committee", func(t *testing.T) {
		b := NewBallot([]util.Uint160{})
		require.EqualValues(t, NotYetVoted, b.Decision())
	})
}

func TestErrorClass(t *testing.T) {
	require.Equal(t, ClassUnknown, ClassOf(nil))
	require.Equal(t, ClassUnknown, ClassOf(errors.New("some error")))
	require.Equal(t, ClassNotFound, ClassOf(fmt.Errorf("context: %w", ErrUnknownSurvey)))
	require.Equal(t, ClassDependency, ClassOf(fmt.Errorf("%w: %w", ErrFundingFailed, ErrInsufficientFunds)))
	require.Equal(t, ClassAuthorization, ClassOf(ErrNotCommitteeMember))

	require.Equal(t, "invalid_state", ClassInvalidState.String())
	require.Equal(t, "unknown", Class(100).String())
}

func TestCheckVersion(t *testing.T) {
	require.NoError(t, CheckVersion(PrevVersion))
	require.ErrorIs(t, CheckVersion(PrevVersion-1), ErrVersionMismatch)
	require.ErrorIs(t, CheckVersion(Version), ErrAlreadyUpdated)

	require.Equal(t, "1.0.0", VersionString(Version))
	require.Equal(t, "0.9.0", VersionString(PrevVersion))
}

type kv map[string][]byte

func (m kv) Get(key []byte) []byte { return m[string(key)] }

func (m kv) Put(key, value []byte) { m[string(key)] = value }

func TestStorageHelpers(t *testing.T) {
	ctx := make(kv)

	list, err := GetList(ctx, []byte("l"))
	require.NoError(t, err)
	require.Empty(t, list)

	exp := []util.Uint160{{1}, {2}}
	require.NoError(t, SetList(ctx, []byte("l"), exp))

	list, err = GetList(ctx, []byte("l"))
	require.NoError(t, err)
	require.Equal(t, exp, list)

	n, err := GetInt(ctx, []byte("n"), 42)
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	require.NoError(t, SetInt(ctx, []byte("n"), -7))
	n, err = GetInt(ctx, []byte("n"), 42)
	require.NoError(t, err)
	require.EqualValues(t, -7, n)

	require.Equal(t, HashID([]byte("ab")), HashID([]byte("a"), []byte("b")))
	require.Len(t, HashID([]byte("a")), 32)
}

type witness util.Uint160

func (w witness) CheckWitness(h util.Uint160) bool { return util.Uint160(w).Equals(h) }

func TestCheckOwnerWitness(t *testing.T) {
	owner := util.Uint160{1}

	require.NoError(t, CheckOwnerWitness(witness(owner), owner))
	require.ErrorIs(t, CheckOwnerWitness(witness(util.Uint160{2}), owner), ErrUnauthorized)
}
