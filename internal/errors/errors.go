package errors

import "errors"

// Keystore errors indicate problems with the encrypted secret store.
var (
	// ErrSecretNotFound indicates no decryptable secret exists for the identifier.
	// Decryption and authentication failures map to this error as well: a record
	// that cannot be verified is treated the same as one that was never stored.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrKeystoreCorrupt indicates the persisted keystore document could not be parsed.
	ErrKeystoreCorrupt = errors.New("keystore document is corrupt")

	// ErrInvalidMasterKey indicates the stored master key is malformed.
	ErrInvalidMasterKey = errors.New("invalid master key")
)

// Archive errors indicate problems with portable export/import archives.
var (
	// ErrInvalidArchive indicates the archive structure is invalid.
	ErrInvalidArchive = errors.New("invalid archive structure")

	// ErrWrongPassphrase indicates the archive could not be opened with the given passphrase.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted archive")
)

// Provider and generation errors.
var (
	// ErrUnknownProvider indicates the provider is not in the registry.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnsupportedLanguage indicates no client template exists for the language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")
)
