package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

// mockVault is an in-memory Vault for tests.
type mockVault struct {
	entries map[string]string
}

func newMockVault() *mockVault {
	return &mockVault{entries: make(map[string]string)}
}

func (v *mockVault) Get(service, account string) (string, error) {
	value, ok := v.entries[service+"/"+account]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return value, nil
}

func (v *mockVault) Set(service, account, value string) error {
	v.entries[service+"/"+account] = value
	return nil
}

// brokenVault simulates a locked or unavailable credential store.
type brokenVault struct{}

func (brokenVault) Get(service, account string) (string, error) {
	return "", errors.New("vault is locked")
}

func (brokenVault) Set(service, account, value string) error {
	return errors.New("vault is locked")
}

func newTestKeystore(t *testing.T, opts Options) *Keystore {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	ks, err := New(opts)
	require.NoError(t, err)
	return ks
}

func TestStoreAndGetSecret(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	value, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestGetSecretMissing(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	_, err := ks.GetSecret("proj:never-stored")
	assert.ErrorIs(t, err, kerrors.ErrSecretNotFound)
}

func TestOverwriteIsIdempotentReplace(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "first"))
	require.NoError(t, ks.StoreSecret("proj:openai", "second"))

	value, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	keys, err := ks.ListSecretKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"proj:openai"}, keys)
}

func TestDeleteSecret(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	removed, err := ks.DeleteSecret("proj:openai")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = ks.GetSecret("proj:openai")
	assert.ErrorIs(t, err, kerrors.ErrSecretNotFound)

	// Deleting a non-existent id is a no-op.
	removed, err = ks.DeleteSecret("proj:openai")
	require.NoError(t, err)
	assert.False(t, removed)

	keys, err := ks.ListSecretKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestHasSecret(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	found, err := ks.HasSecret("proj:openai")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	found, err = ks.HasSecret("proj:openai")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestListSecretKeysSorted(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:stripe", "sk_live_1"))
	require.NoError(t, ks.StoreSecret("proj:anthropic", "sk-ant-1"))
	require.NoError(t, ks.StoreSecret("other:openai", "sk-2"))

	keys, err := ks.ListSecretKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"other:openai", "proj:anthropic", "proj:stripe"}, keys)
}

func TestTamperDetection(t *testing.T) {
	corrupt := func(t *testing.T, mutate func(*SecretEntry)) {
		t.Helper()
		dir := t.TempDir()
		ks := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
		require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

		doc, err := ks.loadDocument()
		require.NoError(t, err)
		entry := doc.Secrets["proj:openai"]
		mutate(&entry)
		doc.Secrets["proj:openai"] = entry
		require.NoError(t, ks.saveDocument(doc))

		_, err = ks.GetSecret("proj:openai")
		assert.ErrorIs(t, err, kerrors.ErrSecretNotFound)
	}

	t.Run("corrupted ciphertext", func(t *testing.T) {
		corrupt(t, func(e *SecretEntry) {
			e.Ciphertext = flipHexByte(e.Ciphertext)
		})
	})

	t.Run("corrupted auth tag", func(t *testing.T) {
		corrupt(t, func(e *SecretEntry) {
			e.AuthTag = flipHexByte(e.AuthTag)
		})
	})

	t.Run("non-hex ciphertext", func(t *testing.T) {
		corrupt(t, func(e *SecretEntry) {
			e.Ciphertext = "zz" + e.Ciphertext[2:]
		})
	})
}

// flipHexByte flips one bit of the first encoded byte, keeping valid hex.
func flipHexByte(s string) string {
	if s == "" {
		return "00"
	}
	replacement := "0"
	if s[0] == '0' {
		replacement = "1"
	}
	return replacement + s[1:]
}

func TestKeyPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
	require.NoError(t, first.StoreSecret("proj:openai", "sk-test-123"))

	// A second process instance reloads everything from disk.
	second := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
	value, err := second.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestFileFallbackWhenVaultDisabled(t *testing.T) {
	dir := t.TempDir()
	ks := newTestKeystore(t, Options{Dir: dir, DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	info, err := ks.Info()
	require.NoError(t, err)
	assert.False(t, info.UsingKeychain)
	assert.Equal(t, 1, info.SecretCount)
	assert.Equal(t, filepath.Join(dir, documentFile), info.Path)

	// The fallback key file exists with owner-only permissions.
	stat, err := os.Stat(filepath.Join(dir, keyFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
}

func TestFileFallbackWhenVaultFails(t *testing.T) {
	ks := newTestKeystore(t, Options{Vault: brokenVault{}})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	value, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)

	info, err := ks.Info()
	require.NoError(t, err)
	assert.False(t, info.UsingKeychain)
}

func TestVaultBackedKey(t *testing.T) {
	dir := t.TempDir()
	vault := newMockVault()
	ks := newTestKeystore(t, Options{Dir: dir, Vault: vault})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	info, err := ks.Info()
	require.NoError(t, err)
	assert.True(t, info.UsingKeychain)

	// No fallback key file should have been written.
	_, err = os.Stat(filepath.Join(dir, keyFile))
	assert.True(t, os.IsNotExist(err))

	// A second instance sharing the vault decrypts fine.
	second := newTestKeystore(t, Options{Dir: dir, Vault: vault})
	value, err := second.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestVaultTransientlyUnavailableKeepsFileKey(t *testing.T) {
	dir := t.TempDir()

	// Establish a file-based key first.
	first := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
	require.NoError(t, first.StoreSecret("proj:openai", "sk-test-123"))

	// Now the vault errors on every call; the established file key wins
	// over the freshly generated one.
	second := newTestKeystore(t, Options{Dir: dir, Vault: brokenVault{}})
	value, err := second.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestVaultDriftRegeneratesKey(t *testing.T) {
	dir := t.TempDir()
	vault := newMockVault()
	ks := newTestKeystore(t, Options{Dir: dir, Vault: vault})
	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	// Simulate the drift condition: the document claims the key is in the
	// keychain, but the vault entry has vanished.
	vault.entries = make(map[string]string)

	// Old entries are no longer decryptable, but nothing crashes and new
	// stores succeed under the regenerated key.
	_, err := ks.GetSecret("proj:openai")
	assert.ErrorIs(t, err, kerrors.ErrSecretNotFound)

	require.NoError(t, ks.StoreSecret("proj:anthropic", "sk-ant-1"))
	value, err := ks.GetSecret("proj:anthropic")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-1", value)
}

func TestSequentialStoresShareOneKey(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-1"))
	require.NoError(t, ks.StoreSecret("proj:anthropic", "sk-2"))

	v1, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	v2, err := ks.GetSecret("proj:anthropic")
	require.NoError(t, err)
	assert.Equal(t, "sk-1", v1)
	assert.Equal(t, "sk-2", v2)
}

func TestCorruptDocumentIsHardError(t *testing.T) {
	dir := t.TempDir()
	ks := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, documentFile), []byte("{not json"), 0600))

	_, err := ks.GetSecret("proj:openai")
	assert.ErrorIs(t, err, kerrors.ErrKeystoreCorrupt)

	err = ks.StoreSecret("proj:openai", "sk-new")
	assert.ErrorIs(t, err, kerrors.ErrKeystoreCorrupt)

	_, err = ks.ListSecretKeys()
	assert.ErrorIs(t, err, kerrors.ErrKeystoreCorrupt)
}

func TestSystemVaultViaMockKeyring(t *testing.T) {
	keyring.MockInit()

	ks := newTestKeystore(t, Options{Service: "keyden-test", Account: "master-key-test"})
	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	info, err := ks.Info()
	require.NoError(t, err)
	assert.True(t, info.UsingKeychain)

	value, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestScenarioLifecycle(t *testing.T) {
	ks := newTestKeystore(t, Options{DisableVault: true})

	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	found, err := ks.HasSecret("proj:openai")
	require.NoError(t, err)
	assert.True(t, found)

	value, err := ks.GetSecret("proj:openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)

	removed, err := ks.DeleteSecret("proj:openai")
	require.NoError(t, err)
	assert.True(t, removed)

	found, err = ks.HasSecret("proj:openai")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDocumentPermissions(t *testing.T) {
	dir := t.TempDir()
	ks := newTestKeystore(t, Options{Dir: dir, DisableVault: true})
	require.NoError(t, ks.StoreSecret("proj:openai", "sk-test-123"))

	stat, err := os.Stat(filepath.Join(dir, documentFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
}
