/*
Package reviewnet implements the review network logic module.

Module composes brand and product catalog, user registration, review
validation and paid surveys into a single method table served by
proxy.Dispatcher. Method names are:

	createBrand(address, name, logo, hash)
	createProduct(address, brand, category, subcategory, name, image, description, hash)
	getBrand(address)
	getProduct(address)
	registerUser(username)
	userExists(identity)
	getUsername(identity)
	addValidator(identity)
	getValidators()
	createReview(address, product, score, hash)
	validatorVote(address, direction)
	getReviewStatus(address)
	getReview(address)
	createSurvey(authorKey, title, hash, reward, maxAnswers)
	fundSurvey(hash, amount)
	startSurvey(hash)
	completeSurvey(hash)
	answerSurvey(hash, answerHash)
	getSurveyStatus(hash)
	isSurveyAnsweredBy(hash, identity)
	getSurvey(hash)

The caller of every method is provided by the dispatcher. The account which
activates the module for the first time becomes the network owner allowed to
add validators. The owner follows the administrator on every administrator
transfer.

Notifications and storage layout are documented in the catalog, review and
survey packages.
*/
package reviewnet
