/*
Package migration provides framework to test logic module swaps of the review
network.

The network stores all records in the namespace of the proxy, and logic
modules are swapped on the fly, so every new module must keep reading the
records written by the previous ones. The package provides the network
initialized from a storage dump (see package dump) with custom logic modules
registered, so that a test can read records, swap the implementation and
read them again.
*/
package migration
