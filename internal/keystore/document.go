package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

// documentVersion is the current schema tag of the persisted document.
const documentVersion = 1

// SecretEntry is one authenticated-encryption record. All fields are
// hex-encoded: a 12-byte IV, a 16-byte GCM authentication tag, and the
// encrypted payload.
type SecretEntry struct {
	IV         string `json:"iv"`
	AuthTag    string `json:"authTag"`
	Ciphertext string `json:"ciphertext"`
}

// document is the on-disk persisted structure. MasterKeyInKeychain records
// the last successful write location of the master key; it is the sole
// disambiguator on read since both storage mechanisms hold the same binary
// key format.
type document struct {
	Version             int                    `json:"version"`
	MasterKeyInKeychain bool                   `json:"masterKeyInKeychain"`
	Secrets             map[string]SecretEntry `json:"secrets"`
}

// newDocument returns an empty document at the current schema version.
func newDocument() *document {
	return &document{
		Version: documentVersion,
		Secrets: make(map[string]SecretEntry),
	}
}

// loadDocument reads the keystore document from disk, synthesizing an empty
// one when none exists. Malformed JSON is a hard failure: the document is
// the source of truth and corruption must not be masked.
func (k *Keystore) loadDocument() (*document, error) {
	data, err := os.ReadFile(k.path)
	if os.IsNotExist(err) {
		return newDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore document at %s: %w", k.path, err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse keystore document at %s: %w: %v", k.path, kerrors.ErrKeystoreCorrupt, err)
	}
	if doc.Secrets == nil {
		doc.Secrets = make(map[string]SecretEntry)
	}
	return doc, nil
}

// saveDocument rewrites the whole document atomically: written to a sibling
// temp file with owner-only permissions, then renamed over the target so
// concurrent readers never observe a partial write.
func (k *Keystore) saveDocument(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode keystore document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(k.path), ".keystore-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write keystore document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, k.path); err != nil {
		return fmt.Errorf("failed to replace keystore document: %w", err)
	}
	return nil
}
