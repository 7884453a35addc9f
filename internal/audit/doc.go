// Package audit provides an audit trail for Keyden keystore operations.
//
// Every mutation (store, delete, sync, export, import) is recorded as one
// JSON object per line in <config dir>/audit.jsonl. Entries carry secret
// identifiers and operation metadata, never secret values.
//
// Logging is best-effort: if an append fails (permissions, disk full) the
// operation proceeds without error. Use ReadEntries() for display;
// malformed lines from partial writes are skipped.
package audit
