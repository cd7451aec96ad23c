// Package notify publishes registry change events.
//
// After a successful append or regeneration the compiler hands an
// envelope.RegistryEvent to a Notifier. Backends are Kafka (through
// kafka.Manager) and Redis pub/sub; the default backend discards events.
// Each event carries the trace context of the run and, when a signing
// secret is configured, an HS256 JWT over its kind, digest and code.
package notify
