// Package keystore provides durable, encrypted-at-rest storage of secret
// strings for Keyden.
//
// # Architecture
//
// A single 256-bit master key encrypts every stored secret with AES-256-GCM
// (12-byte random IV, 16-byte authentication tag). The master key lives in
// the OS credential store when one is available — macOS Keychain, Windows
// Credential Manager, the freedesktop Secret Service — and otherwise in a
// file with owner-only permissions next to the keystore document. A boolean
// in the document records which location holds the authoritative key.
//
// The document at <dir>/keystore.json is the single source of truth: every
// operation reads it in full and every mutation rewrites it in full. There
// is no in-memory cache that could drift from disk.
//
// # Key lifecycle
//
// The master key is created lazily on the first store or read that needs
// it. Backends are tried in order: the OS vault first, then the key file.
// Vault failures other than "not found" are absorbed and logged at debug
// level; they trigger the file fallback and are never surfaced to callers.
// Once created the key is immutable for the lifetime of the install — there
// is no rotation path, and losing it makes all stored secrets permanently
// unrecoverable.
//
// # Failure semantics
//
// GetSecret fails safe-closed: a missing record and a record whose
// authentication tag does not verify both return ErrSecretNotFound. Callers
// cannot distinguish corruption from absence; re-adding the secret is
// always a valid remedy. A malformed keystore document, by contrast, is a
// hard error that is never masked.
//
// # Concurrency
//
// Every operation runs under an advisory file lock (shared for reads,
// exclusive for read-modify-write cycles), and document writes are atomic
// temp-file-plus-rename. Master-key generation in particular must not race
// across processes: two fresh installs generating keys concurrently would
// each be unable to decrypt the other's secrets.
//
// # Identifiers
//
// Identifiers are opaque strings. By convention callers use
// "<projectName>:<providerId>", but the keystore imposes no structure
// beyond string equality.
package keystore
