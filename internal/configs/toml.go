package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes data as TOML at path, creating parent directories
// owner-only. The config may name registered project paths, so the file
// itself is kept private too.
func SaveTOML(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := toml.NewEncoder(file).Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// LoadTOML decodes the TOML file at path into data.
func LoadTOML(path string, data any) error {
	if _, err := toml.DecodeFile(path, data); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
