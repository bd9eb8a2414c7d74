/*
Package dump saves storage of the review network to disk and reads it back.

A dump captures selected storage namespaces at some network height. It lets
tests run new logic modules against the state of a real deployment without
the deployment itself. Each dump with ID '<label>-<height>' consists of two
files in one directory:

	<label>-<height>.json: manifest with the ID and dumped namespaces
	<label>-<height>.csv:  storage items as 'namespace ID,key,value' records

Keys are base58-encoded without the namespace prefix, values are
base64-encoded. The manifest records the number of items of every namespace,
so truncated dumps are detected on read.
*/
package dump
