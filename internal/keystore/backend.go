package keystore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

// errKeyNotFound is the typed "no key here" outcome from a backend's load.
// Any other error means the backend is unavailable for this operation.
var errKeyNotFound = errors.New("master key not found")

// Vault abstracts the OS-native credential store so tests can substitute
// a mock or a deliberately failing implementation.
type Vault interface {
	// Get returns the stored value, or keyring.ErrNotFound when absent.
	Get(service, account string) (string, error)
	// Set stores the value, replacing any existing entry.
	Set(service, account, value string) error
}

// systemVault is the production Vault backed by the platform credential
// store: macOS Keychain, Windows Credential Manager, or the freedesktop
// Secret Service on Linux.
type systemVault struct{}

func (systemVault) Get(service, account string) (string, error) {
	return keyring.Get(service, account)
}

func (systemVault) Set(service, account, value string) error {
	return keyring.Set(service, account, value)
}

// keyBackend is one strategy for holding the master key. Backends are tried
// in a fixed order: OS vault first, owner-only key file as the fallback.
type keyBackend interface {
	name() string
	load() ([]byte, error)
	save(key []byte) error
}

// vaultBackend stores the hex-encoded master key in the OS credential store
// under a fixed service and account name. One entry exists per user,
// shared across every project managed by the tool.
type vaultBackend struct {
	vault   Vault
	service string
	account string
}

func (b *vaultBackend) name() string { return "os-vault" }

func (b *vaultBackend) load() ([]byte, error) {
	value, err := b.vault.Get(b.service, b.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, errKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("vault read failed: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vault master key: %w", kerrors.ErrInvalidMasterKey)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("vault master key has %d bytes, expected %d: %w", len(key), masterKeySize, kerrors.ErrInvalidMasterKey)
	}
	return key, nil
}

func (b *vaultBackend) save(key []byte) error {
	if err := b.vault.Set(b.service, b.account, hex.EncodeToString(key)); err != nil {
		return fmt.Errorf("vault write failed: %w", err)
	}
	return nil
}

// fileBackend stores the hex-encoded master key in a file with owner-only
// permissions, used when the OS vault is unavailable.
type fileBackend struct {
	path string
}

func (b *fileBackend) name() string { return "key-file" }

func (b *fileBackend) load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, errKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read master key file: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key file at %s: %w", b.path, kerrors.ErrInvalidMasterKey)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("master key file has %d bytes, expected %d: %w", len(key), masterKeySize, kerrors.ErrInvalidMasterKey)
	}
	return key, nil
}

func (b *fileBackend) save(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(b.path, []byte(hex.EncodeToString(key)), 0600); err != nil {
		return fmt.Errorf("failed to write master key file: %w", err)
	}
	return nil
}
