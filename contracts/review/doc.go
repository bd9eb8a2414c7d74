/*
Package review implements review submission and committee validation of the
review network.

Every review is validated by a committee drawn at random from the validator
pool when the review is created. Committee members vote once; the first
direction supported by a strict majority of the committee resolves the
review, later votes are refused.

# Contract notifications

ReviewAdded notification. This notification is produced when a review is
created.

	ReviewAdded:
	  - name: address
	    type: Hash160
	  - name: product
	    type: Hash160

ValidatorChosen notification. This notification is produced for each member
of the review committee right after ReviewAdded.

	ValidatorChosen:
	  - name: address
	    type: Hash160
	  - name: validator
	    type: Hash160

ReviewApproved and ReviewRejected notifications. One of them is produced
exactly once, when the review is resolved.

	ReviewApproved:
	  - name: address
	    type: Hash160

	ReviewRejected:
	  - name: address
	    type: Hash160
*/
package review

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   network owner allowed to add validators
 - 'c' -> int
   committee size
 - 'V' -> std.Serialize([]interop.Hash160)
   validator pool in registration order
 - 'v'<interop.Hash160> -> int
   position of the validator in the pool
 - 'r'<interop.Hash160> -> std.Serialize(Review)
   reviews with their committees and vote ledgers (here Review is a
   structure defined in current package)
*/
