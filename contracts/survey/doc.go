/*
Package survey implements paid surveys of the review network.

A survey goes through Created, Funded, Started and Completed statuses in this
order. The author funds the survey with reward tokens which are then paid to
the answerers, one reward per answer, up to the answer cap. Each identity
can answer a survey once.

# Contract notifications

SurveyAdded notification. This notification is produced when a survey is
created.

	SurveyAdded:
	  - name: hash
	    type: String
	  - name: title
	    type: String

SurveyFunded notification. This notification is produced when the author
funds the survey.

	SurveyFunded:
	  - name: hash
	    type: String
	  - name: amount
	    type: Integer

SurveyStarted and SurveyCompleted notifications. These notifications are
produced when the survey is opened for answers and closed respectively.

	SurveyStarted:
	  - name: hash
	    type: String

	SurveyCompleted:
	  - name: hash
	    type: String

SurveyAnswered notification. This notification is produced when an answer
is accepted and rewarded.

	SurveyAnswered:
	  - name: hash
	    type: String
	  - name: identity
	    type: Hash160
	  - name: answerHash
	    type: ByteArray
*/
package survey

/*
Contract storage model.

# Summary
Key-value storage format:
 - 's'<sha256(hash)> -> std.Serialize(Survey)
   surveys (here Survey is a structure defined in current package)
 - 'a'<sha256(hash)><interop.Hash160> -> []byte
   answer hash of the identity which answered the survey
*/
