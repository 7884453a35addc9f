package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// SyncResult summarizes a Sync call.
type SyncResult struct {
	Added   []string
	Updated []string
}

// Sync merges values into the env file at path, preserving entries it does
// not manage. The file is created with owner-only permissions when missing.
// godotenv writes keys sorted, so output is deterministic.
func Sync(path string, values map[string]string) (SyncResult, error) {
	var result SyncResult

	existing, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return result, fmt.Errorf("failed to read env file at %s: %w", path, err)
		}
		existing = make(map[string]string)
	}

	for key, value := range values {
		old, present := existing[key]
		switch {
		case !present:
			result.Added = append(result.Added, key)
		case old != value:
			result.Updated = append(result.Updated, key)
		default:
			continue
		}
		existing[key] = value
	}

	if len(result.Added) == 0 && len(result.Updated) == 0 {
		return result, nil
	}

	if err := godotenv.Write(existing, path); err != nil {
		return result, fmt.Errorf("failed to write env file at %s: %w", path, err)
	}
	// godotenv creates with default permissions; env files hold secrets.
	if err := os.Chmod(path, 0600); err != nil {
		return result, fmt.Errorf("failed to restrict env file permissions: %w", err)
	}
	return result, nil
}

// Missing returns the names in required that are absent or empty in the env
// file at path. A missing file means everything is missing.
func Missing(path string, required []string) ([]string, error) {
	existing, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]string(nil), required...), nil
		}
		return nil, fmt.Errorf("failed to read env file at %s: %w", path, err)
	}

	var missing []string
	for _, name := range required {
		if existing[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// EnsureGitignored makes sure the env file's name is listed in the project's
// .gitignore, appending it when absent. Returns true when an entry was added.
func EnsureGitignored(projectDir, envName string) (bool, error) {
	gitignorePath := filepath.Join(projectDir, ".gitignore")

	data, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		entry := strings.TrimSpace(line)
		if entry == envName || entry == "/"+envName {
			return false, nil
		}
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += envName + "\n"

	// #nosec G306 -- .gitignore is not sensitive.
	if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to update .gitignore: %w", err)
	}
	return true, nil
}
