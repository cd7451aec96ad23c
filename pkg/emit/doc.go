// Package emit renders the status code registry into the source files consumed
// by the two runtimes:
//
//   - Native: a C++ header of status_code_definition constants plus the
//     failed/succeeded predicates, used by the server.
//   - Dynamic: a Python Enum with a from_code reverse lookup, used by the
//     client SDK.
//
// Emitters are pure and deterministic; they expect a registry that already
// passed validation and keep registry order in their output. Both outputs are
// always regenerated in full, never patched.
package emit
