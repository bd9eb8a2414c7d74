package common

import "errors"

// Class groups network errors by their cause.
type Class int

const (
	// ClassUnknown is returned by ClassOf for errors not produced by the network.
	ClassUnknown Class = iota
	// ClassAuthorization means the caller is not allowed to perform the call.
	ClassAuthorization
	// ClassNotFound means a referenced entity does not exist.
	ClassNotFound
	// ClassDuplicate means the entity being created already exists.
	ClassDuplicate
	// ClassInvalidInput means call arguments are malformed or out of range.
	ClassInvalidInput
	// ClassInvalidState means the entity state does not allow the call.
	ClassInvalidState
	// ClassDependency means a collaborator (reward token) refused the request.
	ClassDependency
)

var classNames = [...]string{
	ClassUnknown:       "unknown",
	ClassAuthorization: "authorization",
	ClassNotFound:      "not_found",
	ClassDuplicate:     "duplicate",
	ClassInvalidInput:  "invalid_input",
	ClassInvalidState:  "invalid_state",
	ClassDependency:    "dependency",
}

// String implements fmt.Stringer.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return classNames[ClassUnknown]
}

// Error is a network failure of a particular kind. Values are compared by
// identity, so callers branch on them with errors.Is.
type Error struct {
	class Class
	msg   string
}

func newError(c Class, msg string) *Error {
	return &Error{class: c, msg: msg}
}

// Error implements error.
func (e *Error) Error() string {
	return e.msg
}

// Class returns error class.
func (e *Error) Class() Class {
	return e.class
}

// ClassOf returns class of the first Error in err's chain.
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.class
	}
	return ClassUnknown
}

var (
	// ErrUnauthorized appears when the caller lacks rights for the call.
	ErrUnauthorized = newError(ClassAuthorization, "unauthorized")
)

var (
	ErrUnknownBrand   = newError(ClassNotFound, "unknown brand")
	ErrUnknownProduct = newError(ClassNotFound, "unknown product")
	ErrUnknownReview  = newError(ClassNotFound, "unknown review")
	ErrUnknownSurvey  = newError(ClassNotFound, "unknown survey")
	ErrUnknownUser    = newError(ClassNotFound, "unknown user")
	// ErrUnknownModule appears when the implementation reference is not
	// registered.
	ErrUnknownModule = newError(ClassNotFound, "unknown logic module")
	// ErrUnknownMethod appears when the active module does not expose the
	// requested method.
	ErrUnknownMethod = newError(ClassNotFound, "unknown method")
)

var (
	ErrDuplicateBrand     = newError(ClassDuplicate, "brand already exists")
	ErrDuplicateProduct   = newError(ClassDuplicate, "product already exists")
	ErrDuplicateUser      = newError(ClassDuplicate, "user already registered")
	ErrDuplicateValidator = newError(ClassDuplicate, "validator already registered")
	ErrDuplicateReview    = newError(ClassDuplicate, "review already exists")
	ErrDuplicateSurvey    = newError(ClassDuplicate, "survey already exists")
)

var (
	ErrInvalidScore = newError(ClassInvalidInput, "score out of range")
	ErrInvalidVote  = newError(ClassInvalidInput, "invalid vote direction")
	// ErrInvalidArgument appears on argument count or type mismatch and on
	// malformed values.
	ErrInvalidArgument = newError(ClassInvalidInput, "invalid argument")
)

var (
	ErrNoImplementation      = newError(ClassInvalidState, "no implementation set")
	ErrNotInitialized        = newError(ClassInvalidState, "network is not initialized")
	ErrWrongState            = newError(ClassInvalidState, "wrong survey state")
	ErrReviewAlreadyResolved = newError(ClassInvalidState, "review already resolved")
	ErrNotCommitteeMember    = newError(ClassAuthorization, "caller is not a committee member")
	ErrAlreadyVoted          = newError(ClassInvalidState, "validator already voted")
	ErrAlreadyAnswered       = newError(ClassInvalidState, "survey already answered")
	ErrAnswerCapReached      = newError(ClassInvalidState, "survey answer cap reached")
	ErrSurveyNotActive       = newError(ClassInvalidState, "survey is not active")
	// ErrVersionMismatch is returned by CheckVersion in case of error.
	ErrVersionMismatch = newError(ClassInvalidState, "previous version mismatch")
	// ErrAlreadyUpdated is returned by CheckVersion if current version equals
	// to version module is being updated from.
	ErrAlreadyUpdated = newError(ClassInvalidState, "module is already of the latest version")
)

var (
	ErrFundingFailed         = newError(ClassDependency, "survey funding failed")
	ErrRewardTransferFailed  = newError(ClassDependency, "reward transfer failed")
	ErrInsufficientFunds     = newError(ClassDependency, "insufficient funds")
	ErrInsufficientAllowance = newError(ClassDependency, "insufficient allowance")
)
