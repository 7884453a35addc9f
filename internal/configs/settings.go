package configs

import (
	"log"
	"os"
	"path/filepath"
)

// UserSettings holds the per-user paths Keyden operates on. Commands read
// the package-level instance; tests substitute their own with
// SetUserSettingsForTesting so nothing touches the real home directory.
type UserSettings struct {
	// ConfigDir holds config.toml, the keystore document, the fallback
	// master-key file, and the audit log.
	ConfigDir string
}

// UserKeydenSettings is the active settings instance.
var UserKeydenSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// Independent of what repo you are in, so it is ok to init here.
	UserKeydenSettings = &UserSettings{
		ConfigDir: filepath.Join(configDir, "keyden"),
	}
}

// SetUserSettingsForTesting swaps the settings instance and returns a
// restore function for deferred cleanup.
func SetUserSettingsForTesting(s *UserSettings) func() {
	previous := UserKeydenSettings
	UserKeydenSettings = s
	return func() { UserKeydenSettings = previous }
}
