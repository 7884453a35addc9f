package configs

import (
	"os"
	"runtime"
	"testing"
)

func withTempSettings(t *testing.T) {
	t.Helper()
	restore := SetUserSettingsForTesting(&UserSettings{ConfigDir: t.TempDir()})
	t.Cleanup(restore)
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	withTempSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.User.UUID != "" {
		t.Errorf("Expected empty UUID, got: %s", config.User.UUID)
	}
	if len(config.Projects) != 0 {
		t.Errorf("Expected no projects, got: %d", len(config.Projects))
	}
}

func TestEnsureUserConfigAssignsUUID(t *testing.T) {
	withTempSettings(t)

	config, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.User.UUID == "" {
		t.Fatal("Expected an install UUID to be assigned")
	}

	// A second call keeps the same UUID.
	again, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if again.User.UUID != config.User.UUID {
		t.Errorf("Expected stable UUID, got %s then %s", config.User.UUID, again.User.UUID)
	}
}

func TestRegisterProject(t *testing.T) {
	withTempSettings(t)

	if err := RegisterProject("my-app", "/home/dev/my-app", "next"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	project, ok := config.Projects["my-app"]
	if !ok {
		t.Fatal("Expected my-app to be registered")
	}
	if project.Path != "/home/dev/my-app" || project.Framework != "next" {
		t.Errorf("Unexpected project config: %+v", project)
	}
	if project.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestRegisterProjectReplaces(t *testing.T) {
	withTempSettings(t)

	if err := RegisterProject("my-app", "/old", "node"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := RegisterProject("my-app", "/new", "next"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.Projects["my-app"].Path != "/new" {
		t.Errorf("Expected replacement, got: %s", config.Projects["my-app"].Path)
	}
	if len(config.Projects) != 1 {
		t.Errorf("Expected exactly one project, got: %d", len(config.Projects))
	}
}

func TestConfigFileIsPrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permission bits are not meaningful on Windows")
	}
	withTempSettings(t)

	if _, err := EnsureUserConfig(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	stat, err := os.Stat(configPath())
	if err != nil {
		t.Fatalf("Expected config file to exist, got: %v", err)
	}
	if perm := stat.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got: %04o", perm)
	}
}

func TestProjectNamesSorted(t *testing.T) {
	withTempSettings(t)

	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := RegisterProject(name, "/p/"+name, ""); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	names := config.ProjectNames()
	want := []string{"alpha", "mike", "zulu"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, names)
		}
	}
}
