package keystore

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

// archiveVersion tags the portable archive format.
const archiveVersion = 1

// Argon2id parameters for deriving the archive key from a passphrase.
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	kdfSaltLen = 16
)

// portableArchive is the passphrase-protected export format. The payload is
// a JSON map of identifier to plaintext, sealed with ChaCha20-Poly1305 under
// an Argon2id-derived key.
type portableArchive struct {
	Version    int    `json:"version"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

func deriveArchiveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, kdfTime, kdfMemory, kdfThreads, chacha20poly1305.KeySize)
}

// ExportSecrets decrypts the secrets named by ids (all stored secrets when
// ids is empty) and seals them into a portable archive protected by the
// passphrase. Identifiers that are missing or undecryptable are skipped;
// the returned slice names what was actually exported.
func (k *Keystore) ExportSecrets(ids []string, passphrase []byte) ([]byte, []string, error) {
	if len(passphrase) == 0 {
		return nil, nil, fmt.Errorf("passphrase must not be empty")
	}

	if len(ids) == 0 {
		var err error
		ids, err = k.ListSecretKeys()
		if err != nil {
			return nil, nil, err
		}
	}

	payload := make(map[string]string, len(ids))
	var exported []string
	for _, id := range ids {
		value, err := k.GetSecret(id)
		if err != nil {
			k.log.Debugf("skipping %q during export: %v", id, err)
			continue
		}
		payload[id] = value
		exported = append(exported, id)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode archive payload: %w", err)
	}

	salt := make([]byte, kdfSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := chacha20poly1305.New(deriveArchiveKey(passphrase, salt))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create archive cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	archive := portableArchive{
		Version:    archiveVersion,
		Salt:       hex.EncodeToString(salt),
		Nonce:      hex.EncodeToString(nonce),
		Ciphertext: hex.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode archive: %w", err)
	}
	return data, exported, nil
}

// ImportSecrets opens a portable archive and stores every contained secret,
// overwriting existing entries. Returns the imported identifiers.
func (k *Keystore) ImportSecrets(data, passphrase []byte) ([]string, error) {
	var archive portableArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", kerrors.ErrInvalidArchive)
	}
	if archive.Version != archiveVersion {
		return nil, fmt.Errorf("unsupported archive version %d: %w", archive.Version, kerrors.ErrInvalidArchive)
	}

	salt, err := hex.DecodeString(archive.Salt)
	if err != nil || len(salt) != kdfSaltLen {
		return nil, fmt.Errorf("bad archive salt: %w", kerrors.ErrInvalidArchive)
	}
	nonce, err := hex.DecodeString(archive.Nonce)
	if err != nil {
		return nil, fmt.Errorf("bad archive nonce: %w", kerrors.ErrInvalidArchive)
	}
	ciphertext, err := hex.DecodeString(archive.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("bad archive ciphertext: %w", kerrors.ErrInvalidArchive)
	}

	aead, err := chacha20poly1305.New(deriveArchiveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create archive cipher: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("bad archive nonce length: %w", kerrors.ErrInvalidArchive)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrWrongPassphrase
	}

	var payload map[string]string
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse archive payload: %w", kerrors.ErrInvalidArchive)
	}

	imported := make([]string, 0, len(payload))
	for id, value := range payload {
		if err := k.StoreSecret(id, value); err != nil {
			return imported, fmt.Errorf("failed to store %q from archive: %w", id, err)
		}
		imported = append(imported, id)
	}
	return imported, nil
}
