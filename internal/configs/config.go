package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// UserConfig is the per-user configuration stored at
// <ConfigDir>/config.toml.
type UserConfig struct {
	User     User                     `toml:"user"`
	Projects map[string]ProjectConfig `toml:"projects"`
}

// User identifies this Keyden install.
type User struct {
	UUID string `toml:"install_uuid"`
}

// ProjectConfig records one project registered with keyden init.
type ProjectConfig struct {
	Path      string    `toml:"path"`
	Framework string    `toml:"framework"`
	CreatedAt time.Time `toml:"created_at"`
}

func configPath() string {
	return filepath.Join(UserKeydenSettings.ConfigDir, "config.toml")
}

// LoadUserConfig loads the user configuration, returning an empty config
// when the file does not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	config := &UserConfig{
		Projects: make(map[string]ProjectConfig),
	}

	if _, err := os.Stat(configPath()); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath(), config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if config.Projects == nil {
		config.Projects = make(map[string]ProjectConfig)
	}
	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(configPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// EnsureUserConfig ensures the user configuration exists and has an
// install UUID.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	if config.User.UUID == "" {
		config.User.UUID = uuid.New().String()
		if err := SaveUserConfig(config); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// RegisterProject records a project in the user config, replacing any
// previous registration under the same name.
func RegisterProject(name, path, framework string) error {
	config, err := EnsureUserConfig()
	if err != nil {
		return err
	}

	config.Projects[name] = ProjectConfig{
		Path:      path,
		Framework: framework,
		CreatedAt: time.Now().UTC(),
	}
	return SaveUserConfig(config)
}

// ProjectNames returns the registered project names, sorted.
func (c *UserConfig) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
