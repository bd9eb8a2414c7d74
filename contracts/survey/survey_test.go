package survey_test

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/survey"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/tests"
	"github.com/stretchr/testify/require"
)

// gateway keeps balances in memory.
type gateway struct {
	balances map[util.Uint160]int64
	fail     error
}

func (g *gateway) TransferFrom(ic *interop.Context, payer util.Uint160, amount int64) error {
	return g.move(payer, ic.Hash, amount)
}

func (g *gateway) Transfer(ic *interop.Context, recipient util.Uint160, amount int64) error {
	return g.move(ic.Hash, recipient, amount)
}

func (g *gateway) BalanceOf(_ *interop.Context, account util.Uint160) int64 {
	return g.balances[account]
}

func (g *gateway) move(from, to util.Uint160, amount int64) error {
	if g.fail != nil {
		return g.fail
	}
	if g.balances[from] < amount {
		return common.ErrInsufficientFunds
	}
	g.balances[from] -= amount
	g.balances[to] += amount
	return nil
}

const hash = "QmSurvey"

var (
	network = util.Uint160{0xFE}
	author  = util.Uint160{0xA0}
)

func newContext(t *testing.T) (*interop.Context, *gateway, *keys.PublicKey) {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)

	g := &gateway{balances: map[util.Uint160]int64{author: 100}}

	ic := tests.NewContext(t)
	ic.Hash = network
	ic.Caller = author
	ic.Rewards = g

	return ic, g, k.PublicKey()
}

func TestCreate(t *testing.T) {
	ic, _, pub := newContext(t)

	require.ErrorIs(t, survey.Create(ic, nil, "t", hash, 1, 1), common.ErrInvalidArgument)
	require.ErrorIs(t, survey.Create(ic, pub, "t", "", 1, 1), common.ErrInvalidArgument)
	require.ErrorIs(t, survey.Create(ic, pub, "t", hash, 0, 1), common.ErrInvalidArgument)
	require.ErrorIs(t, survey.Create(ic, pub, "t", hash, 1, -1), common.ErrInvalidArgument)

	require.NoError(t, survey.Create(ic, pub, "Cats or dogs?", hash, 5, 10))
	require.ErrorIs(t, survey.Create(ic, pub, "t", hash, 1, 1), common.ErrDuplicateSurvey)

	s, err := survey.Get(ic, hash)
	require.NoError(t, err)
	require.True(t, pub.Equal(s.Author))

	s.Author = nil
	require.Equal(t, survey.Survey{
		Hash:       hash,
		Title:      "Cats or dogs?",
		Creator:    author,
		Reward:     5,
		MaxAnswers: 10,
		Status:     survey.StatusCreated,
	}, s)

	evs := ic.Notifications()
	require.Len(t, evs, 1)
	tests.CheckNotification(t, evs[0], "SurveyAdded", hash, "Cats or dogs?")

	_, err = survey.Status(ic, "QmUnknown")
	require.ErrorIs(t, err, common.ErrUnknownSurvey)
	require.False(t, survey.IsAnsweredBy(ic, "QmUnknown", author))
}

func TestLifecycle(t *testing.T) {
	ic, g, pub := newContext(t)

	require.NoError(t, survey.Create(ic, pub, "t", hash, 10, 3))

	require.ErrorIs(t, survey.Start(ic, hash), common.ErrWrongState)
	require.ErrorIs(t, survey.Complete(ic, hash), common.ErrWrongState)
	require.ErrorIs(t, survey.Fund(ic, hash, 0), common.ErrInvalidArgument)
	require.ErrorIs(t, survey.Fund(ic, hash, 1000), common.ErrFundingFailed)

	require.NoError(t, survey.Fund(ic, hash, 25))
	require.EqualValues(t, 75, g.balances[author])
	require.EqualValues(t, 25, g.balances[network])
	require.ErrorIs(t, survey.Fund(ic, hash, 25), common.ErrWrongState)

	answer := func(who util.Uint160, data string) error {
		ic.Caller = who
		return survey.Answer(ic, hash, []byte(data))
	}

	require.ErrorIs(t, answer(util.Uint160{1}, "a"), common.ErrSurveyNotActive)

	ic.Caller = author
	require.NoError(t, survey.Start(ic, hash))

	require.ErrorIs(t, answer(util.Uint160{1}, ""), common.ErrInvalidArgument)
	require.NoError(t, answer(util.Uint160{1}, "a"))
	require.ErrorIs(t, answer(util.Uint160{1}, "b"), common.ErrAlreadyAnswered)
	require.NoError(t, answer(util.Uint160{2}, "b"))

	// 5 left, 10 required
	require.ErrorIs(t, answer(util.Uint160{3}, "c"), common.ErrRewardTransferFailed)
	require.False(t, survey.IsAnsweredBy(ic, hash, util.Uint160{3}))

	require.EqualValues(t, 10, g.balances[util.Uint160{1}])
	require.EqualValues(t, 10, g.balances[util.Uint160{2}])
	require.EqualValues(t, 5, g.balances[network])

	require.True(t, survey.IsAnsweredBy(ic, hash, util.Uint160{1}))

	s, err := survey.Get(ic, hash)
	require.NoError(t, err)
	require.EqualValues(t, survey.StatusStarted, s.Status)
	require.EqualValues(t, 25, s.Funded)
	require.EqualValues(t, 20, s.Paid)
	require.EqualValues(t, 2, s.Answers)

	ic.Caller = author
	require.NoError(t, survey.Complete(ic, hash))
	require.ErrorIs(t, answer(util.Uint160{3}, "c"), common.ErrSurveyNotActive)

	st, err := survey.Status(ic, hash)
	require.NoError(t, err)
	require.EqualValues(t, survey.StatusCompleted, st)

	var names []string
	for _, ev := range ic.Notifications() {
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{"SurveyAdded", "SurveyFunded", "SurveyStarted", "SurveyAnswered", "SurveyAnswered", "SurveyCompleted"}, names)
}

func TestAnswerCap(t *testing.T) {
	ic, g, pub := newContext(t)

	require.NoError(t, survey.Create(ic, pub, "t", hash, 1, 1))
	require.NoError(t, survey.Fund(ic, hash, 50))
	require.NoError(t, survey.Start(ic, hash))

	ic.Caller = util.Uint160{1}
	require.NoError(t, survey.Answer(ic, hash, []byte("a")))

	ic.Caller = util.Uint160{2}
	require.ErrorIs(t, survey.Answer(ic, hash, []byte("b")), common.ErrAnswerCapReached)

	t.Run("gateway failure", func(t *testing.T) {
		ic, g, pub := newContext(t)

		require.NoError(t, survey.Create(ic, pub, "t", hash, 1, 5))
		require.NoError(t, survey.Fund(ic, hash, 5))
		require.NoError(t, survey.Start(ic, hash))

		errGateway := errors.New("gateway is down")
		g.fail = errGateway

		ic.Caller = util.Uint160{1}
		err := survey.Answer(ic, hash, []byte("a"))
		require.ErrorIs(t, err, common.ErrRewardTransferFailed)
		require.ErrorIs(t, err, errGateway)
	})

	require.EqualValues(t, 1, g.balances[util.Uint160{1}])
}
