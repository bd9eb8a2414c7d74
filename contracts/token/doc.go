/*
Package token implements REW token contract.

REW token is the fungible reward of the review network. It is a NEP-17 shaped
ledger: survey authors approve the network to spend their tokens when funding
surveys, and the network pays survey answerers from its own account. The
token owner mints new tokens, one account at a time or a batch of allocations
with distribute. Balances and total supply never exceed the int64 range.

Token storage lives in the same storage snapshot as the network call which
moves the tokens, so a failed network call leaves balances untouched.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification is produced when an account changes the allowance of
a spender.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
 - 't' -> int
   total amount of minted tokens
 - 'o' -> interop.Hash160
   account allowed to mint
 - 'a'<interop.Hash160> -> std.Serialize(Account)
   balance sheet of all REW holders (here Account is a structure defined in current package)
 - 'l'<owner><spender> -> int
   amount spender is allowed to transfer from owner
*/
