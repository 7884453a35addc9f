// Package errors provides typed error values for the Keyden application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Keystore errors: secret lookup and document state (ErrSecretNotFound, ErrKeystoreCorrupt)
//   - Archive errors: portable export/import (ErrInvalidArchive, ErrWrongPassphrase)
//   - Provider errors: registry and generation (ErrUnknownProvider)
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, ok := doc.Secrets[id]; !ok {
//	    return "", errors.ErrSecretNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	value, err := ks.GetSecret(id)
//	if errors.Is(err, kerrors.ErrSecretNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading keystore document at %s: %w", path, errors.ErrKeystoreCorrupt)
//
// Note the deliberate merging of "never stored" and "failed to decrypt" into
// ErrSecretNotFound: the keystore fails safe-closed, and callers treat an
// absent secret as "needs re-entry" rather than a fatal condition.
package errors
