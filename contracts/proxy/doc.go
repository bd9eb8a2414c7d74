/*
Package proxy implements the entry point of the review network.

All external calls go through Dispatcher. It resolves the active logic module
in the Registry and executes the requested method against the network
storage namespace. The namespace belongs to the proxy, not to the module, so
records written by one module version stay valid and addressable for the
next one. Modules are swapped by the administrator with SetImplementation,
which runs the deploy hook of the new module within the same atomic call.
The administrator is set once with Init and moved with TransferAdmin; active
modules implementing interop.AdminListener are told about every transfer
within the same call. Until Init, administrative operations fail with
common.ErrNotInitialized.

Every call is executed against a snapshot of the store: the changes of a
successful call are committed at once, the changes of a failed call are
dropped entirely. Calls are serialized. Safe methods and test invocations are
never committed.

# Contract notifications

Proxy contract does not produce notifications itself. Notifications of the
active module are emitted on behalf of the network address (see Dispatcher.Hash).
*/
package proxy

/*
Contract storage model.

# Summary
Key-value storage format of the registry namespace:
 - 'i' -> []byte
   reference of the active logic module
 - 'n' -> int
   version of the active logic module
 - 'a' -> interop.Hash160
   administrator allowed to swap logic modules
 - 'h' -> int
   number of committed calls

Network namespace layout is defined by the logic modules.
*/
