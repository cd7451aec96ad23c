// Package store reads the status code registry file and appends new records
// to it.
//
// Appends are a read-modify-write of the whole file without locking. The
// registry is operated by one developer or one CI job at a time; two
// concurrent appends can lose an update. Append re-reads the file right
// before writing and fails with ErrConcurrentModification when it changed,
// which narrows that window without closing it. Each rewrite goes through a
// temporary file and a rename, so a crash never leaves a half-written
// registry behind.
//
// Internal codes are always written as quoted, zero padded, lowercase 8-digit
// hex literals ("0x80000005"), whatever form the caller or a hand edit used.
package store
