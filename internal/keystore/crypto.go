package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// masterKeySize is 32 bytes for AES-256.
	masterKeySize = 32

	// ivSize is the standard 96-bit GCM nonce length.
	ivSize = 12

	// tagSize is the 128-bit GCM authentication tag length.
	tagSize = 16
)

// newMasterKey generates a fresh 32-byte master key.
func newMasterKey() ([]byte, error) {
	key := make([]byte, masterKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// encryptSecret seals a plaintext string under the master key with a freshly
// generated IV. IV uniqueness relies on the random generator's negligible
// collision probability; IVs are never reused deliberately.
func encryptSecret(key []byte, plaintext string) (SecretEntry, error) {
	if len(key) != masterKeySize {
		return SecretEntry{}, fmt.Errorf("invalid master key length: expected %d bytes, got %d bytes", masterKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return SecretEntry{}, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return SecretEntry{}, fmt.Errorf("failed to create GCM: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return SecretEntry{}, fmt.Errorf("failed to generate IV: %w", err)
	}

	// Seal appends the authentication tag to the ciphertext; the persisted
	// format stores the tag as a separate field.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - tagSize

	return SecretEntry{
		IV:         hex.EncodeToString(iv),
		AuthTag:    hex.EncodeToString(sealed[split:]),
		Ciphertext: hex.EncodeToString(sealed[:split]),
	}, nil
}

// decryptSecret opens a secret entry, verifying the authentication tag
// before returning the plaintext.
func decryptSecret(key []byte, entry SecretEntry) (string, error) {
	if len(key) != masterKeySize {
		return "", fmt.Errorf("invalid master key length: expected %d bytes, got %d bytes", masterKeySize, len(key))
	}

	iv, err := hex.DecodeString(entry.IV)
	if err != nil {
		return "", fmt.Errorf("failed to decode IV: %w", err)
	}
	if len(iv) != ivSize {
		return "", fmt.Errorf("invalid IV length: expected %d bytes, got %d bytes", ivSize, len(iv))
	}
	tag, err := hex.DecodeString(entry.AuthTag)
	if err != nil {
		return "", fmt.Errorf("failed to decode auth tag: %w", err)
	}
	ciphertext, err := hex.DecodeString(entry.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt secret: %w", err)
	}
	return string(plaintext), nil
}
