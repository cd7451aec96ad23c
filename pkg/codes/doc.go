/*
Package codes is the status code registry model shared by the server runtime
and the client SDK.

A registry is an ordered, append-only list of records:

	codes:
	  - name: success
	    internal: "0x00000000"
	    http: 200
	    desc: Operation succeeded.

	  - name: fail
	    internal: "0x80000001"
	    http: 500
	    desc: Generic operation failed.

Bit 31 of an internal code marks the failure class; exactly one record holds
the zero code. Names and internal codes are unique for the lifetime of the
registry and are never renumbered, so a deployed client keeps interpreting a
code the same way regardless of when it was built.

Decoding happens in two steps. Parse produces a Document that keeps every
internal code as written (quoted hex string or bare integer). Document.Registry
decodes the codes strictly; Document.NextCode tolerates malformed entries.

Errors:

	var (
	    ErrRegistryNotFound   = errors.New("registry not found")
	    ErrDuplicateName      = errors.New("status code name already exists")
	    ErrMalformedCode      = errors.New("malformed internal code")
	    ErrInvalidRegistry    = errors.New("invalid registry")
	    ErrInvalidArguments   = errors.New("invalid arguments")
	    ErrStaleArtifact      = errors.New("generated artifact is stale")
	    ErrCodeSpaceExhausted = errors.New("internal code space exhausted")
	)

Each sentinel has a typed counterpart carrying the offending name, value or
path, matched with errors.Is.
*/
package codes
