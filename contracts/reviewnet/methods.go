package reviewnet

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/contracts/catalog"
	"github.com/reviewnet/reviewnet-contract/contracts/review"
	"github.com/reviewnet/reviewnet-contract/contracts/survey"
	"github.com/reviewnet/reviewnet-contract/contracts/user"
	"github.com/reviewnet/reviewnet-contract/interop"
)

// Methods implements interop.Module.
func (m *Module) Methods() []interop.Method {
	return []interop.Method{
		{Name: "createBrand", ParamCount: 4, Func: createBrand},
		{Name: "createProduct", ParamCount: 8, Func: createProduct},
		{Name: "getBrand", ParamCount: 1, Safe: true, Func: getBrand},
		{Name: "getProduct", ParamCount: 1, Safe: true, Func: getProduct},

		{Name: "registerUser", ParamCount: 1, Func: registerUser},
		{Name: "userExists", ParamCount: 1, Safe: true, Func: userExists},
		{Name: "getUsername", ParamCount: 1, Safe: true, Func: getUsername},

		{Name: "addValidator", ParamCount: 1, Func: addValidator},
		{Name: "getValidators", Safe: true, Func: getValidators},
		{Name: "createReview", ParamCount: 4, Func: createReview},
		{Name: "validatorVote", ParamCount: 2, Func: validatorVote},
		{Name: "getReviewStatus", ParamCount: 1, Safe: true, Func: getReviewStatus},
		{Name: "getReview", ParamCount: 1, Safe: true, Func: getReview},

		{Name: "createSurvey", ParamCount: 5, Func: createSurvey},
		{Name: "fundSurvey", ParamCount: 2, Func: fundSurvey},
		{Name: "startSurvey", ParamCount: 1, Func: startSurvey},
		{Name: "completeSurvey", ParamCount: 1, Func: completeSurvey},
		{Name: "answerSurvey", ParamCount: 2, Func: answerSurvey},
		{Name: "getSurveyStatus", ParamCount: 1, Safe: true, Func: getSurveyStatus},
		{Name: "isSurveyAnsweredBy", ParamCount: 2, Safe: true, Func: isSurveyAnsweredBy},
		{Name: "getSurvey", ParamCount: 1, Safe: true, Func: getSurvey},
	}
}

// args decodes method arguments one by one and keeps the first error.
type args struct {
	items []stackitem.Item
	err   error
}

func (a *args) address(i int) (res util.Uint160) {
	if a.err == nil {
		res, a.err = interop.ToUint160(a.items[i])
	}
	return
}

func (a *args) integer(i int) (res int64) {
	if a.err == nil {
		res, a.err = interop.ToInt64(a.items[i])
	}
	return
}

func (a *args) str(i int) (res string) {
	if a.err == nil {
		res, a.err = interop.ToString(a.items[i])
	}
	return
}

func (a *args) raw(i int) (res []byte) {
	if a.err == nil {
		res, a.err = interop.ToBytes(a.items[i])
	}
	return
}

func createBrand(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	b := catalog.Brand{
		Address: a.address(0),
		Name:    a.str(1),
		Logo:    a.str(2),
		Hash:    a.str(3),
	}
	if a.err != nil {
		return nil, a.err
	}

	return nil, catalog.CreateBrand(ic, b)
}

func createProduct(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	p := catalog.Product{
		Address:     a.address(0),
		Brand:       a.address(1),
		Category:    a.integer(2),
		Subcategory: a.integer(3),
		Name:        a.str(4),
		Image:       a.str(5),
		Description: a.str(6),
		Hash:        a.str(7),
	}
	if a.err != nil {
		return nil, a.err
	}

	return nil, catalog.CreateProduct(ic, p)
}

func getBrand(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	addr := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	b, err := catalog.GetBrand(ic, addr)
	if err != nil {
		return nil, err
	}

	return b.ToStackItem()
}

func getProduct(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	addr := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	p, err := catalog.GetProduct(ic, addr)
	if err != nil {
		return nil, err
	}

	return p.ToStackItem()
}

func registerUser(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	name := a.str(0)
	if a.err != nil {
		return nil, a.err
	}

	return nil, user.Register(ic, name)
}

func userExists(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	id := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	return stackitem.NewBool(user.Exists(ic, id)), nil
}

func getUsername(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	id := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	name, err := user.Username(ic, id)
	if err != nil {
		return nil, err
	}

	return stackitem.NewByteArray([]byte(name)), nil
}

func addValidator(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	id := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	return nil, review.AddValidator(ic, id)
}

func getValidators(ic *interop.Context, _ []stackitem.Item) (stackitem.Item, error) {
	pool, err := review.Validators(ic)
	if err != nil {
		return nil, err
	}

	return interop.ToStackItem(pool), nil
}

func createReview(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	var (
		addr    = a.address(0)
		product = a.address(1)
		score   = a.integer(2)
		hash    = a.str(3)
	)
	if a.err != nil {
		return nil, a.err
	}

	return nil, review.Create(ic, addr, product, score, hash)
}

func validatorVote(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	var (
		addr      = a.address(0)
		direction = a.integer(1)
	)
	if a.err != nil {
		return nil, a.err
	}

	return nil, review.Vote(ic, addr, direction)
}

func getReviewStatus(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	addr := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	status, err := review.Status(ic, addr)
	if err != nil {
		return nil, err
	}

	return stackitem.Make(status), nil
}

func getReview(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	addr := a.address(0)
	if a.err != nil {
		return nil, a.err
	}

	r, err := review.Get(ic, addr)
	if err != nil {
		return nil, err
	}

	return r.ToStackItem()
}

func createSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	author, err := interop.ToPublicKey(items[0])
	if err != nil {
		return nil, err
	}

	a := args{items: items}
	var (
		title      = a.str(1)
		hash       = a.str(2)
		reward     = a.integer(3)
		maxAnswers = a.integer(4)
	)
	if a.err != nil {
		return nil, a.err
	}

	return nil, survey.Create(ic, author, title, hash, reward, maxAnswers)
}

func fundSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	var (
		hash   = a.str(0)
		amount = a.integer(1)
	)
	if a.err != nil {
		return nil, a.err
	}

	return nil, survey.Fund(ic, hash, amount)
}

func startSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	hash := a.str(0)
	if a.err != nil {
		return nil, a.err
	}

	return nil, survey.Start(ic, hash)
}

func completeSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	hash := a.str(0)
	if a.err != nil {
		return nil, a.err
	}

	return nil, survey.Complete(ic, hash)
}

func answerSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	var (
		hash   = a.str(0)
		answer = a.raw(1)
	)
	if a.err != nil {
		return nil, a.err
	}

	return nil, survey.Answer(ic, hash, answer)
}

func getSurveyStatus(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	hash := a.str(0)
	if a.err != nil {
		return nil, a.err
	}

	status, err := survey.Status(ic, hash)
	if err != nil {
		return nil, err
	}

	return stackitem.Make(status), nil
}

func isSurveyAnsweredBy(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	var (
		hash = a.str(0)
		id   = a.address(1)
	)
	if a.err != nil {
		return nil, a.err
	}

	return stackitem.NewBool(survey.IsAnsweredBy(ic, hash, id)), nil
}

func getSurvey(ic *interop.Context, items []stackitem.Item) (stackitem.Item, error) {
	a := args{items: items}
	hash := a.str(0)
	if a.err != nil {
		return nil, a.err
	}

	s, err := survey.Get(ic, hash)
	if err != nil {
		return nil, err
	}

	return s.ToStackItem()
}
