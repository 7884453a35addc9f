// Package shared contains testing utilities used across integration tests.
// It provides common functions for setting up isolated environments and
// capturing command output.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/keyden-cli/keyden/cmd"
	"github.com/keyden-cli/keyden/internal/configs"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

// SetupTestEnvironment isolates a test from the real machine: the config
// directory moves to a temp dir, the OS keychain is replaced with an
// in-memory mock, and the working directory becomes a fresh project dir.
// Returns the project directory.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	keyring.MockInit()
	t.Cleanup(configs.SetUserSettingsForTesting(&configs.UserSettings{ConfigDir: t.TempDir()}))

	projectDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(projectDir); err != nil {
		t.Fatalf("Failed to change to project directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		cmd.ResetGlobalState()
	})

	return projectDir
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr.
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output.
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr.
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output.
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes.
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to drain stdout pipe: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to drain stderr pipe: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function.
	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr.
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output.
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// NewTestCLI builds a fresh root command wired to the real subcommands,
// ready for SetArgs/Execute in a test.
func NewTestCLI() *cobra.Command {
	root := &cobra.Command{
		Use:           "keyden",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(cmd.GetKeysCmd())
	root.AddCommand(cmd.GetEnvCmd())
	root.AddCommand(cmd.InitCmd)
	root.AddCommand(cmd.GenerateCmd)
	root.AddCommand(cmd.ServeCmd)
	return root
}

// RunCLI executes the CLI with the given args, capturing combined output.
func RunCLI(args ...string) (string, error) {
	root := NewTestCLI()
	root.SetArgs(args)
	return CaptureOutput(root.Execute)
}

// CreateFile writes a file under dir, creating it with the given content.
func CreateFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}
