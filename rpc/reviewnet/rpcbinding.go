// Package reviewnet contains typed wrappers for the review network methods
// served by proxy.Dispatcher.
package reviewnet

import (
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/reviewnet/reviewnet-contract/contracts/catalog"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/review"
	"github.com/reviewnet/reviewnet-contract/contracts/survey"
)

// Invoker is used by ContractReader to call read-only methods.
type Invoker interface {
	TestInvoke(caller util.Uint160, method string, args ...any) (*proxy.Result, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	Invoke(caller util.Uint160, method string, args ...any) (*proxy.Result, error)
}

// ContractReader implements safe review network methods.
type ContractReader struct {
	invoker Invoker
}

// Contract implements all review network methods on behalf of a single
// account.
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
	res, err := c.invoker.TestInvoke(util.Uint160{}, method, args...)
	if err != nil {
		return nil, err
	}

	return &result.Invoke{
		State:         vmstate.Halt.String(),
		Stack:         []stackitem.Item{res.Item},
		Notifications: res.Notifications,
	}, nil
}

// GetBrand invokes `getBrand` method of contract.
func (c *ContractReader) GetBrand(address util.Uint160) (catalog.Brand, error) {
	item, err := unwrap.Item(c.call("getBrand", address))
	if err != nil {
		return catalog.Brand{}, err
	}

	var b catalog.Brand
	err = b.FromStackItem(item)

	return b, err
}

// GetProduct invokes `getProduct` method of contract.
func (c *ContractReader) GetProduct(address util.Uint160) (catalog.Product, error) {
	item, err := unwrap.Item(c.call("getProduct", address))
	if err != nil {
		return catalog.Product{}, err
	}

	var p catalog.Product
	err = p.FromStackItem(item)

	return p, err
}

// UserExists invokes `userExists` method of contract.
func (c *ContractReader) UserExists(identity util.Uint160) (bool, error) {
	return unwrap.Bool(c.call("userExists", identity))
}

// GetUsername invokes `getUsername` method of contract.
func (c *ContractReader) GetUsername(identity util.Uint160) (string, error) {
	return unwrap.UTF8String(c.call("getUsername", identity))
}

// GetValidators invokes `getValidators` method of contract.
func (c *ContractReader) GetValidators() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.call("getValidators"))
}

// GetReviewStatus invokes `getReviewStatus` method of contract.
func (c *ContractReader) GetReviewStatus(address util.Uint160) (int64, error) {
	return unwrap.Int64(c.call("getReviewStatus", address))
}

// GetReview invokes `getReview` method of contract.
func (c *ContractReader) GetReview(address util.Uint160) (review.Review, error) {
	item, err := unwrap.Item(c.call("getReview", address))
	if err != nil {
		return review.Review{}, err
	}

	var r review.Review
	err = r.FromStackItem(item)

	return r, err
}

// GetSurveyStatus invokes `getSurveyStatus` method of contract.
func (c *ContractReader) GetSurveyStatus(hash string) (int64, error) {
	return unwrap.Int64(c.call("getSurveyStatus", hash))
}

// IsSurveyAnsweredBy invokes `isSurveyAnsweredBy` method of contract.
func (c *ContractReader) IsSurveyAnsweredBy(hash string, identity util.Uint160) (bool, error) {
	return unwrap.Bool(c.call("isSurveyAnsweredBy", hash, identity))
}

// GetSurvey invokes `getSurvey` method of contract.
func (c *ContractReader) GetSurvey(hash string) (survey.Survey, error) {
	item, err := unwrap.Item(c.call("getSurvey", hash))
	if err != nil {
		return survey.Survey{}, err
	}

	var s survey.Survey
	err = s.FromStackItem(item)

	return s, err
}

// CreateBrand invokes `createBrand` method of contract. Creator is ignored.
func (c *Contract) CreateBrand(b catalog.Brand) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "createBrand", b.Address, b.Name, b.Logo, b.Hash)
}

// CreateProduct invokes `createProduct` method of contract. Creator is
// ignored.
func (c *Contract) CreateProduct(p catalog.Product) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "createProduct", p.Address, p.Brand, p.Category, p.Subcategory,
		p.Name, p.Image, p.Description, p.Hash)
}

// RegisterUser invokes `registerUser` method of contract.
func (c *Contract) RegisterUser(username string) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "registerUser", username)
}

// AddValidator invokes `addValidator` method of contract.
func (c *Contract) AddValidator(identity util.Uint160) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "addValidator", identity)
}

// CreateReview invokes `createReview` method of contract.
func (c *Contract) CreateReview(address, product util.Uint160, score int64, hash string) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "createReview", address, product, score, hash)
}

// ValidatorVote invokes `validatorVote` method of contract.
func (c *Contract) ValidatorVote(address util.Uint160, direction int64) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "validatorVote", address, direction)
}

// CreateSurvey invokes `createSurvey` method of contract.
func (c *Contract) CreateSurvey(author *keys.PublicKey, title, hash string, reward, maxAnswers int64) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "createSurvey", author, title, hash, reward, maxAnswers)
}

// FundSurvey invokes `fundSurvey` method of contract.
func (c *Contract) FundSurvey(hash string, amount int64) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "fundSurvey", hash, amount)
}

// StartSurvey invokes `startSurvey` method of contract.
func (c *Contract) StartSurvey(hash string) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "startSurvey", hash)
}

// CompleteSurvey invokes `completeSurvey` method of contract.
func (c *Contract) CompleteSurvey(hash string) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "completeSurvey", hash)
}

// AnswerSurvey invokes `answerSurvey` method of contract.
func (c *Contract) AnswerSurvey(hash string, answerHash []byte) (*proxy.Result, error) {
	return c.actor.Invoke(c.caller, "answerSurvey", hash, answerHash)
}
