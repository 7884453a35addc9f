package keystore

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := newMasterKey()
	require.NoError(t, err)
	require.Len(t, key, masterKeySize)
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey(t)

	for _, plaintext := range []string{
		"sk-test-123",
		"value with spaces and = signs",
		"unicode: kākāpō 🔑",
		"x",
	} {
		entry, err := encryptSecret(key, plaintext)
		require.NoError(t, err)

		got, err := decryptSecret(key, entry)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncryptGeneratesFreshIV(t *testing.T) {
	key := testKey(t)

	first, err := encryptSecret(key, "same plaintext")
	require.NoError(t, err)
	second, err := encryptSecret(key, "same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
}

func TestEntryFieldSizes(t *testing.T) {
	key := testKey(t)

	entry, err := encryptSecret(key, "sk-test-123")
	require.NoError(t, err)

	iv, err := hex.DecodeString(entry.IV)
	require.NoError(t, err)
	assert.Len(t, iv, ivSize)

	tag, err := hex.DecodeString(entry.AuthTag)
	require.NoError(t, err)
	assert.Len(t, tag, tagSize)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	entry, err := encryptSecret(testKey(t), "sk-test-123")
	require.NoError(t, err)

	_, err = decryptSecret(testKey(t), entry)
	assert.Error(t, err)
}

func TestDecryptRejectsBadEntry(t *testing.T) {
	key := testKey(t)
	entry, err := encryptSecret(key, "sk-test-123")
	require.NoError(t, err)

	t.Run("bad IV length", func(t *testing.T) {
		bad := entry
		bad.IV = "0011"
		_, err := decryptSecret(key, bad)
		assert.Error(t, err)
	})

	t.Run("truncated tag", func(t *testing.T) {
		bad := entry
		bad.AuthTag = bad.AuthTag[:8]
		_, err := decryptSecret(key, bad)
		assert.Error(t, err)
	})

	t.Run("non-hex fields", func(t *testing.T) {
		bad := entry
		bad.Ciphertext = "not hex at all"
		_, err := decryptSecret(key, bad)
		assert.Error(t, err)
	})
}

func TestEncryptRejectsShortKey(t *testing.T) {
	_, err := encryptSecret(make([]byte, 16), "sk-test-123")
	assert.Error(t, err)

	_, err = decryptSecret(make([]byte, 16), SecretEntry{})
	assert.Error(t, err)
}
