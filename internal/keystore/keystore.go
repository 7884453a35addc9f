package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
	logger "github.com/keyden-cli/keyden/internal/logging"
)

const (
	// DefaultService is the fixed service name of the vault entry.
	DefaultService = "keyden"

	// DefaultAccount is the fixed account name of the vault entry. The vault
	// holds exactly one master key per user, shared across all projects.
	DefaultAccount = "master-key"

	documentFile = "keystore.json"
	keyFile      = "master.key"
	lockFile     = "keystore.lock"
)

// Options configures a Keystore. Zero values select production defaults.
type Options struct {
	// Dir is the directory holding the keystore document, the fallback key
	// file, and the lock file. Defaults to DefaultDir().
	Dir string

	// Service and Account identify the master-key entry in the OS vault.
	Service string
	Account string

	// Vault overrides the OS credential store integration. Leave nil for
	// the platform default.
	Vault Vault

	// DisableVault skips the OS vault entirely, forcing file-based key
	// storage. Used when the platform store is known to be absent.
	DisableVault bool

	Logger logger.Logger
}

// Keystore provides durable, encrypted-at-rest storage of secret strings
// keyed by caller-chosen identifiers. All state lives in the constructed
// value; there are no process-wide singletons.
type Keystore struct {
	path     string
	keyPath  string
	lockPath string
	service  string
	account  string
	vault    Vault
	log      logger.Logger
}

// Info reports diagnostic details about the keystore.
type Info struct {
	// Path is the location of the on-disk keystore document.
	Path string

	// UsingKeychain is true when the master key lives in the OS vault.
	UsingKeychain bool

	// SecretCount is the number of stored entries.
	SecretCount int
}

// DefaultDir returns the per-user keystore directory.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "keyden"), nil
}

// New constructs a Keystore from the given options.
func New(opts Options) (*Keystore, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	service := opts.Service
	if service == "" {
		service = DefaultService
	}
	account := opts.Account
	if account == "" {
		account = DefaultAccount
	}

	var vault Vault
	if !opts.DisableVault {
		vault = opts.Vault
		if vault == nil {
			vault = systemVault{}
		}
	}

	return &Keystore{
		path:     filepath.Join(dir, documentFile),
		keyPath:  filepath.Join(dir, keyFile),
		lockPath: filepath.Join(dir, lockFile),
		service:  service,
		account:  account,
		vault:    vault,
		log:      opts.Logger,
	}, nil
}

// StoreSecret encrypts plaintext under the master key and persists it,
// replacing any existing entry for id. Overwriting is not an error.
func (k *Keystore) StoreSecret(id, plaintext string) error {
	return k.withLock(true, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}

		key, _, err := k.masterKey(doc)
		if err != nil {
			return err
		}

		entry, err := encryptSecret(key, plaintext)
		if err != nil {
			return fmt.Errorf("failed to encrypt secret %q: %w", id, err)
		}

		doc.Secrets[id] = entry
		return k.saveDocument(doc)
	})
}

// GetSecret returns the decrypted plaintext for id. A missing entry and a
// failed decryption both yield kerrors.ErrSecretNotFound: the keystore fails
// safe-closed, and re-adding the key is always a valid remedy.
func (k *Keystore) GetSecret(id string) (string, error) {
	var plaintext string
	err := k.withLock(true, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}

		entry, ok := doc.Secrets[id]
		if !ok {
			return kerrors.ErrSecretNotFound
		}

		key, changed, err := k.masterKey(doc)
		if err != nil {
			return err
		}
		if changed {
			if err := k.saveDocument(doc); err != nil {
				return err
			}
		}

		plaintext, err = decryptSecret(key, entry)
		if err != nil {
			k.log.Debugf("decryption failed for %q, treating as absent: %v", id, err)
			return kerrors.ErrSecretNotFound
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return plaintext, nil
}

// DeleteSecret removes the entry for id, reporting whether one existed.
// The document is only rewritten when a removal occurred.
func (k *Keystore) DeleteSecret(id string) (bool, error) {
	removed := false
	err := k.withLock(true, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}

		if _, ok := doc.Secrets[id]; !ok {
			return nil
		}
		delete(doc.Secrets, id)
		removed = true
		return k.saveDocument(doc)
	})
	return removed, err
}

// HasSecret reports whether a record exists for id. It does not attempt
// decryption, so it answers "is a record present", not "is it decryptable".
func (k *Keystore) HasSecret(id string) (bool, error) {
	found := false
	err := k.withLock(false, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}
		_, found = doc.Secrets[id]
		return nil
	})
	return found, err
}

// ListSecretKeys returns all known identifiers, sorted.
func (k *Keystore) ListSecretKeys() ([]string, error) {
	var keys []string
	err := k.withLock(false, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}
		for id := range doc.Secrets {
			keys = append(keys, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Info reports the document path and whether the master key is vault-backed.
// Read-only, no side effects.
func (k *Keystore) Info() (Info, error) {
	info := Info{Path: k.path}
	err := k.withLock(false, func() error {
		doc, err := k.loadDocument()
		if err != nil {
			return err
		}
		info.UsingKeychain = doc.MasterKeyInKeychain
		info.SecretCount = len(doc.Secrets)
		return nil
	})
	return info, err
}

// masterKey obtains or creates the master key, mutating doc's keychain flag
// as needed. The boolean reports whether doc changed and must be persisted.
// Must be called while holding the exclusive lock: concurrent generation by
// two processes would leave each unable to decrypt the other's secrets.
func (k *Keystore) masterKey(doc *document) ([]byte, bool, error) {
	fileBk := &fileBackend{path: k.keyPath}
	var vaultBk *vaultBackend
	if k.vault != nil {
		vaultBk = &vaultBackend{vault: k.vault, service: k.service, account: k.account}
	}

	// The document's flag is the sole disambiguator on read.
	if vaultBk != nil && doc.MasterKeyInKeychain {
		key, err := vaultBk.load()
		if err == nil {
			return key, false, nil
		}
		if errors.Is(err, errKeyNotFound) {
			k.log.Debugf("document claims master key in keychain but vault entry is missing")
		} else {
			k.log.Debugf("%s unavailable for read: %v", vaultBk.name(), err)
		}
	}

	key, err := newMasterKey()
	if err != nil {
		return nil, false, err
	}

	if vaultBk != nil {
		if err := vaultBk.save(key); err == nil {
			doc.MasterKeyInKeychain = true
			return key, true, nil
		} else {
			k.log.Debugf("%s unavailable for write, falling back to %s: %v", vaultBk.name(), fileBk.name(), err)
		}
	}

	// A file-based key established earlier wins over the newly generated
	// one; this covers a transiently unavailable vault.
	existing, err := fileBk.load()
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errKeyNotFound) {
		return nil, false, err
	}

	if err := fileBk.save(key); err != nil {
		return nil, false, err
	}
	doc.MasterKeyInKeychain = false
	return key, true, nil
}

// withLock runs fn under the keystore's advisory file lock, exclusive for
// read-modify-write cycles and shared for pure reads. This serializes
// concurrent CLI and tool-server processes that would otherwise race on the
// whole-document write.
func (k *Keystore) withLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(k.lockPath), 0700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}

	lock := flock.New(k.lockPath)
	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("failed to acquire keystore lock: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			k.log.Debugf("failed to release keystore lock: %v", err)
		}
	}()

	return fn()
}
