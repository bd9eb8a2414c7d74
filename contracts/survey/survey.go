package survey

import (
	"crypto/elliptic"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
	"go.uber.org/zap"
)

// Survey statuses.
const (
	StatusCreated   = 0
	StatusFunded    = 1
	StatusStarted   = 2
	StatusCompleted = 3
)

// Survey is a paid survey. Answerers are rewarded from the funds provided by
// the survey author.
type Survey struct {
	// Content hash of the off-network survey text. It identifies the survey.
	Hash   string
	Title  string
	Author *keys.PublicKey
	// Account which created the survey.
	Creator util.Uint160

	// Amount paid for each answer.
	Reward int64
	// Maximum number of paid answers.
	MaxAnswers int64

	Status int64

	// Total amount provided by the author.
	Funded int64
	// Total amount paid to the answerers.
	Paid int64
	// Number of received answers.
	Answers int64
}

const (
	surveyPrefix = 's'
	answerPrefix = 'a'
)

// Create saves new survey in StatusCreated.
//
// It produces SurveyAdded notification.
func Create(ic *interop.Context, author *keys.PublicKey, title, hash string, reward, maxAnswers int64) error {
	if author == nil {
		return fmt.Errorf("%w: missing author key", common.ErrInvalidArgument)
	}

	if hash == "" {
		return fmt.Errorf("%w: empty survey hash", common.ErrInvalidArgument)
	}

	if reward <= 0 || maxAnswers <= 0 {
		return fmt.Errorf("%w: reward %d and answer cap %d must be positive", common.ErrInvalidArgument, reward, maxAnswers)
	}

	ctx := ic.Storage()
	key := surveyKey(hash)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateSurvey, hash)
	}

	s := Survey{
		Hash:       hash,
		Title:      title,
		Author:     author,
		Creator:    ic.Caller,
		Reward:     reward,
		MaxAnswers: maxAnswers,
		Status:     StatusCreated,
	}

	err := common.SetSerialized(ctx, key, &s)
	if err != nil {
		return err
	}

	ic.Notify("SurveyAdded", hash, title)

	return nil
}

// Fund transfers amount from the caller to the network and moves the survey
// to StatusFunded. The caller must have approved the transfer to the network
// in the reward token beforehand.
//
// It produces SurveyFunded notification.
func Fund(ic *interop.Context, hash string, amount int64) error {
	s, err := Get(ic, hash)
	if err != nil {
		return err
	}

	if s.Status != StatusCreated {
		return wrongState(s, StatusCreated)
	}

	if amount <= 0 {
		return fmt.Errorf("%w: funding amount %d", common.ErrInvalidArgument, amount)
	}

	err = ic.Rewards.TransferFrom(ic, ic.Caller, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrFundingFailed, err)
	}

	s.Funded += amount
	s.Status = StatusFunded

	err = put(ic, &s)
	if err != nil {
		return err
	}

	ic.Notify("SurveyFunded", hash, amount)

	return nil
}

// Start opens funded survey for answers.
//
// It produces SurveyStarted notification.
func Start(ic *interop.Context, hash string) error {
	return advance(ic, hash, StatusFunded, StatusStarted, "SurveyStarted")
}

// Complete closes started survey.
//
// It produces SurveyCompleted notification.
func Complete(ic *interop.Context, hash string) error {
	return advance(ic, hash, StatusStarted, StatusCompleted, "SurveyCompleted")
}

// Answer records the answer of the caller and pays the survey reward to it.
//
// It produces SurveyAnswered notification.
func Answer(ic *interop.Context, hash string, answerHash []byte) error {
	if len(answerHash) == 0 {
		return fmt.Errorf("%w: empty answer hash", common.ErrInvalidArgument)
	}

	s, err := Get(ic, hash)
	if err != nil {
		return err
	}

	if s.Status != StatusStarted {
		return fmt.Errorf("%w: %s", common.ErrSurveyNotActive, hash)
	}

	ctx := ic.Storage()
	key := answerKey(hash, ic.Caller)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrAlreadyAnswered, hash)
	}

	if s.Answers >= s.MaxAnswers {
		return fmt.Errorf("%w: %d answers", common.ErrAnswerCapReached, s.Answers)
	}

	if s.Funded-s.Paid < s.Reward {
		return fmt.Errorf("%w: %d left, %d required", common.ErrRewardTransferFailed, s.Funded-s.Paid, s.Reward)
	}

	err = ic.Rewards.Transfer(ic, ic.Caller, s.Reward)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRewardTransferFailed, err)
	}

	s.Paid += s.Reward
	s.Answers++

	err = put(ic, &s)
	if err != nil {
		return err
	}

	ctx.Put(key, answerHash)

	ic.Notify("SurveyAnswered", hash, ic.Caller, answerHash)

	return nil
}

// Status returns survey status.
func Status(ic *interop.Context, hash string) (int64, error) {
	s, err := Get(ic, hash)
	if err != nil {
		return 0, err
	}

	return s.Status, nil
}

// IsAnsweredBy checks whether identity has answered the survey. It returns
// false for unknown surveys.
func IsAnsweredBy(ic *interop.Context, hash string, identity util.Uint160) bool {
	return ic.Storage().Get(answerKey(hash, identity)) != nil
}

// Get returns survey by its hash.
func Get(ic *interop.Context, hash string) (Survey, error) {
	var s Survey

	ok, err := common.GetSerialized(ic.Storage(), surveyKey(hash), &s)
	if err != nil {
		return Survey{}, fmt.Errorf("read survey: %w", err)
	}

	if !ok {
		return Survey{}, fmt.Errorf("%w: %s", common.ErrUnknownSurvey, hash)
	}

	return s, nil
}

func advance(ic *interop.Context, hash string, from, to int64, event string) error {
	s, err := Get(ic, hash)
	if err != nil {
		return err
	}

	if s.Status != from {
		return wrongState(s, from)
	}

	s.Status = to

	err = put(ic, &s)
	if err != nil {
		return err
	}

	ic.Log.Debug("survey status changed", zap.String("survey", hash), zap.Int64("status", to))
	ic.Notify(event, hash)

	return nil
}

func wrongState(s Survey, expected int64) error {
	return fmt.Errorf("%w: survey %s has status %d, %d expected", common.ErrWrongState, s.Hash, s.Status, expected)
}

func put(ic *interop.Context, s *Survey) error {
	return common.SetSerialized(ic.Storage(), surveyKey(s.Hash), s)
}

func surveyKey(hash string) []byte {
	return append([]byte{surveyPrefix}, common.HashID([]byte(hash))...)
}

func answerKey(hash string, identity util.Uint160) []byte {
	key := append([]byte{answerPrefix}, common.HashID([]byte(hash))...)
	return append(key, identity.BytesBE()...)
}

// ToStackItem implements stackitem.Convertible.
func (s *Survey) ToStackItem() (stackitem.Item, error) {
	if s.Author == nil {
		return nil, errors.New("missing survey author")
	}

	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte(s.Hash)),
		stackitem.NewByteArray([]byte(s.Title)),
		stackitem.NewByteArray(s.Author.Bytes()),
		stackitem.NewByteArray(s.Creator.BytesBE()),
		stackitem.Make(s.Reward),
		stackitem.Make(s.MaxAnswers),
		stackitem.Make(s.Status),
		stackitem.Make(s.Funded),
		stackitem.Make(s.Paid),
		stackitem.Make(s.Answers),
	}), nil
}

// FromStackItem implements stackitem.Convertible. Trailing fields unknown to
// the current layout are ignored.
func (s *Survey) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 10 {
		return errors.New("invalid survey structure")
	}

	var err error

	if s.Hash, err = interop.ToString(fields[0]); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if s.Title, err = interop.ToString(fields[1]); err != nil {
		return fmt.Errorf("title: %w", err)
	}

	key, err := fields[2].TryBytes()
	if err != nil {
		return fmt.Errorf("author: %w", err)
	}
	if s.Author, err = keys.NewPublicKeyFromBytes(key, elliptic.P256()); err != nil {
		return fmt.Errorf("author: %w", err)
	}

	if s.Creator, err = common.BytesToUint160(fields[3]); err != nil {
		return fmt.Errorf("creator: %w", err)
	}

	ints := []*int64{&s.Reward, &s.MaxAnswers, &s.Status, &s.Funded, &s.Paid, &s.Answers}
	for i := range ints {
		if *ints[i], err = interop.ToInt64(fields[4+i]); err != nil {
			return fmt.Errorf("field #%d: %w", 4+i, err)
		}
	}

	return nil
}
