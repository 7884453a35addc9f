package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetProjectName derives the project name from the working directory's
// base name. Secret identifiers are "<projectName>:<providerId>", so this
// is the default namespace for every project-scoped command.
func GetProjectName() (string, error) {
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Base(workingDirectory), nil
}
