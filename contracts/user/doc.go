/*
Package user implements user registration of the review network.

Each identity can be bound to a single non-empty username. Registration
produces no notifications.
*/
package user

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'u'<interop.Hash160> -> []byte
   username of the registered identity
*/
