package review_test

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/catalog"
	"github.com/reviewnet/reviewnet-contract/contracts/review"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/tests"
	"github.com/stretchr/testify/require"
)

var (
	owner   = util.Uint160{0xAA}
	brand   = util.Uint160{0xB0}
	product = util.Uint160{0xC0}
)

func newContext(t *testing.T, committeeSize int, validators int, src ...uint64) (*interop.Context, []util.Uint160) {
	ic := tests.NewContext(t, src...)
	ic.Caller = owner

	require.NoError(t, review.Init(ic, owner, committeeSize))
	require.NoError(t, catalog.CreateBrand(ic, catalog.Brand{Address: brand, Name: "Acme"}))
	require.NoError(t, catalog.CreateProduct(ic, catalog.Product{Address: product, Brand: brand, Name: "Anvil"}))

	pool := make([]util.Uint160, validators)
	for i := range pool {
		pool[i] = util.Uint160{byte(i + 1)}
		require.NoError(t, review.AddValidator(ic, pool[i]))
	}

	return ic, pool
}

func TestSelectCommittee(t *testing.T) {
	pool := []util.Uint160{{1}, {2}, {3}, {4}, {5}}

	t.Run("identity", func(t *testing.T) {
		ic := tests.NewContext(t, 0)
		require.Equal(t, pool[:3], review.SelectCommittee(ic, pool, 3))
	})

	t.Run("swaps", func(t *testing.T) {
		// 1st draw swaps 0 and 4, 2nd swaps 1 and 2
		ic := tests.NewContext(t, 4, 1)
		require.Equal(t, []util.Uint160{{5}, {3}}, review.SelectCommittee(ic, pool, 2))
		require.Equal(t, []util.Uint160{{1}, {2}, {3}, {4}, {5}}, pool, "pool must not be modified")
	})

	t.Run("distinct", func(t *testing.T) {
		ic := tests.NewContext(t, 1<<63, 17, 3, 999, 5)
		committee := review.SelectCommittee(ic, pool, 5)
		require.ElementsMatch(t, pool, committee)
	})

	t.Run("small pool", func(t *testing.T) {
		ic := tests.NewContext(t, 7)
		require.ElementsMatch(t, pool[:2], review.SelectCommittee(ic, pool[:2], 5))
	})

	t.Run("empty", func(t *testing.T) {
		ic := tests.NewContext(t)
		require.Empty(t, review.SelectCommittee(ic, nil, 5))
		require.Empty(t, review.SelectCommittee(ic, pool, 0))
	})
}

func TestValidators(t *testing.T) {
	ic, pool := newContext(t, 0, 3)

	n, err := review.CommitteeSize(ic)
	require.NoError(t, err)
	require.Equal(t, review.DefaultCommitteeSize, n)
	cur, ok := review.Owner(ic)
	require.True(t, ok)
	require.Equal(t, owner, cur)

	res, err := review.Validators(ic)
	require.NoError(t, err)
	require.Equal(t, pool, res)

	require.ErrorIs(t, review.AddValidator(ic, pool[0]), common.ErrDuplicateValidator)

	ic.Caller = pool[0]
	require.ErrorIs(t, review.AddValidator(ic, util.Uint160{0xFF}), common.ErrUnauthorized)

	t.Run("owner change", func(t *testing.T) {
		newOwner := util.Uint160{0xAB}
		require.NoError(t, review.SetOwner(ic, newOwner))

		ic.Caller = owner
		require.ErrorIs(t, review.AddValidator(ic, util.Uint160{0xFF}), common.ErrUnauthorized)

		ic.Caller = newOwner
		require.NoError(t, review.AddValidator(ic, util.Uint160{0xFF}))
	})

	t.Run("not initialized", func(t *testing.T) {
		ic := tests.NewContext(t)

		_, ok := review.Owner(ic)
		require.False(t, ok)
		require.ErrorIs(t, review.AddValidator(ic, util.Uint160{0xFF}), common.ErrNotInitialized)
		require.ErrorIs(t, review.SetOwner(ic, owner), common.ErrNotInitialized)
	})
}

func TestCreate(t *testing.T) {
	ic, pool := newContext(t, 3, 4, 0)
	author := util.Uint160{0xDD}
	addr := util.Uint160{0xEE}
	ic.Caller = author

	require.ErrorIs(t, review.Create(ic, addr, util.Uint160{0xCC}, 3, "h"), common.ErrUnknownProduct)
	require.ErrorIs(t, review.Create(ic, addr, product, review.MinScore-1, "h"), common.ErrInvalidScore)
	require.ErrorIs(t, review.Create(ic, addr, product, review.MaxScore+1, "h"), common.ErrInvalidScore)

	before := len(ic.Notifications())
	require.NoError(t, review.Create(ic, addr, product, review.MaxScore, "h"))

	evs := ic.Notifications()[before:]
	require.Len(t, evs, 4)
	tests.CheckNotification(t, evs[0], "ReviewAdded", addr, product)
	for i := 0; i < 3; i++ {
		tests.CheckNotification(t, evs[1+i], "ValidatorChosen", addr, pool[i])
	}

	// duplicate is checked before the score
	require.ErrorIs(t, review.Create(ic, addr, product, 0, "h"), common.ErrDuplicateReview)

	r, err := review.Get(ic, addr)
	require.NoError(t, err)
	require.Equal(t, author, r.Author)
	require.EqualValues(t, review.StatusPending, r.Status)
	require.Equal(t, pool[:3], r.Ballot.Voters)
	require.Equal(t, []int64{0, 0, 0}, r.Ballot.Votes)

	_, err = review.Status(ic, util.Uint160{0xEF})
	require.ErrorIs(t, err, common.ErrUnknownReview)
}

func TestVote(t *testing.T) {
	ic, pool := newContext(t, 3, 3, 0)
	addr := util.Uint160{0xEE}

	require.NoError(t, review.Create(ic, addr, product, 2, "h"))

	vote := func(voter util.Uint160, direction int64) error {
		ic.Caller = voter
		return review.Vote(ic, addr, direction)
	}

	require.ErrorIs(t, review.Vote(ic, util.Uint160{0xEF}, common.VoteApprove), common.ErrUnknownReview)
	require.ErrorIs(t, vote(owner, common.VoteApprove), common.ErrNotCommitteeMember)
	require.ErrorIs(t, vote(pool[0], 0), common.ErrInvalidVote)

	require.NoError(t, vote(pool[0], common.VoteReject))
	require.ErrorIs(t, vote(pool[0], common.VoteApprove), common.ErrAlreadyVoted)
	require.NoError(t, vote(pool[1], common.VoteApprove))

	st, err := review.Status(ic, addr)
	require.NoError(t, err)
	require.EqualValues(t, review.StatusPending, st)

	before := len(ic.Notifications())
	require.NoError(t, vote(pool[2], common.VoteReject))

	evs := ic.Notifications()[before:]
	require.Len(t, evs, 1)
	tests.CheckNotification(t, evs[0], "ReviewRejected", addr)

	st, err = review.Status(ic, addr)
	require.NoError(t, err)
	require.EqualValues(t, review.StatusRejected, st)

	// membership and repeated vote are reported before the resolution
	require.ErrorIs(t, vote(pool[2], common.VoteApprove), common.ErrAlreadyVoted)
	require.ErrorIs(t, vote(owner, common.VoteApprove), common.ErrNotCommitteeMember)
}

func TestVoteResolvedReview(t *testing.T) {
	ic, pool := newContext(t, 3, 3, 0)
	addr := util.Uint160{0xEE}

	require.NoError(t, review.Create(ic, addr, product, 5, "h"))

	for _, v := range pool[:2] {
		ic.Caller = v
		require.NoError(t, review.Vote(ic, addr, common.VoteApprove))
	}

	ic.Caller = pool[2]
	require.ErrorIs(t, review.Vote(ic, addr, common.VoteApprove), common.ErrReviewAlreadyResolved)

	st, err := review.Status(ic, addr)
	require.NoError(t, err)
	require.EqualValues(t, review.StatusApproved, st)
}

// permutations returns all orderings of [0, n).
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}

	var res [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			res = append(res, q)
		}
	}

	return res
}

func TestVoteOrder(t *testing.T) {
	const (
		approve = common.VoteApprove
		reject  = common.VoteReject
	)

	for _, tc := range []struct {
		name       string
		directions []int64
		status     int64
		event      string
	}{
		{name: "approved", directions: []int64{approve, reject, approve, reject, approve}, status: review.StatusApproved, event: "ReviewApproved"},
		{name: "rejected", directions: []int64{reject, approve, reject, reject, approve}, status: review.StatusRejected, event: "ReviewRejected"},
		{name: "unanimous", directions: []int64{reject, reject, reject, reject, reject}, status: review.StatusRejected, event: "ReviewRejected"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ic, pool := newContext(t, 5, 5, 0)

			for k, order := range permutations(len(pool)) {
				addr := util.Uint160{0xE0, byte(k)}
				require.NoError(t, review.Create(ic, addr, product, 4, "h"))

				before := len(ic.Notifications())
				resolved := false

				for _, i := range order {
					ic.Caller = pool[i]
					err := review.Vote(ic, addr, tc.directions[i])
					if resolved {
						require.ErrorIs(t, err, common.ErrReviewAlreadyResolved, "order %v", order)
						continue
					}
					require.NoError(t, err, "order %v", order)

					st, err := review.Status(ic, addr)
					require.NoError(t, err)
					resolved = st != review.StatusPending
				}

				evs := ic.Notifications()[before:]
				require.Len(t, evs, 1, "order %v", order)
				tests.CheckNotification(t, evs[0], tc.event, addr)

				st, err := review.Status(ic, addr)
				require.NoError(t, err)
				require.Equal(t, tc.status, st, "order %v", order)
			}
		})
	}
}
