package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
	"github.com/keyden-cli/keyden/internal/keystore"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

// StatusResult holds the result of the status command.
type StatusResult struct {
	Path          string `json:"path"`
	UsingKeychain bool   `json:"using_keychain"`
	SecretCount   int    `json:"secret_count"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the keystore lives and how its key is protected",
	Long: `Shows the keystore document path, whether the master key is held in the
OS keychain or in a fallback file, and how many keys are stored.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys status command")

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		info, err := ks.Info()
		if err != nil {
			if errors.Is(err, kerrors.ErrKeystoreCorrupt) {
				fmt.Println(ui.Error.Sprint("✗") + " The keystore document is corrupt")
				fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys doctor") + " for details")
			}
			return Logger.ErrorfAndReturn("failed to read keystore info: %v", err)
		}

		result := StatusResult{
			Path:          info.Path,
			UsingKeychain: info.UsingKeychain,
			SecretCount:   info.SecretCount,
		}

		if statusJSONOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Keystore: " + ui.Path.Sprint(result.Path))
		if result.UsingKeychain {
			fmt.Println(ui.Success.Sprint("✓") + " Master key: OS keychain")
		} else {
			fmt.Println(ui.Warning.Sprint("⚠") + " Master key: fallback file (OS keychain unavailable)")
		}
		fmt.Printf("%s Stored keys: %d\n", ui.Info.Sprint("ℹ"), result.SecretCount)
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the keystore",
	Long: `Runs a series of checks against the keystore: the document must parse,
a full encrypt/decrypt round trip must succeed, and file permissions
must be private. Exits non-zero if any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys doctor command")

		failures := 0
		check := func(name string, err error) {
			if err != nil {
				failures++
				fmt.Println(ui.Error.Sprint("✗") + " " + name + ": " + err.Error())
				return
			}
			fmt.Println(ui.Success.Sprint("✓") + " " + name)
		}

		ks, err := openKeystore()
		if err != nil {
			check("Open keystore", err)
			return fmt.Errorf("keystore is not usable")
		}
		check("Open keystore", nil)

		info, infoErr := ks.Info()
		check("Parse keystore document", infoErr)

		if infoErr == nil {
			check("Encrypt/decrypt round trip", selfTest(ks))
			check("Document permissions", checkPermissions(info.Path))

			if info.UsingKeychain {
				fmt.Println(ui.Success.Sprint("✓") + " Master key held in OS keychain")
			} else {
				fmt.Println(ui.Warning.Sprint("⚠") + " Master key held in fallback file, not the OS keychain")
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		fmt.Println()
		fmt.Println(ui.Info.Sprint("ℹ") + " Keystore is healthy")
		return nil
	},
}

// selfTest stores, reads back, and deletes a probe secret to prove the
// whole encrypt/persist/decrypt path works.
func selfTest(ks *keystore.Keystore) error {
	const probeID = "keyden-doctor:probe"
	const probeValue = "keyden-self-test"

	if err := ks.StoreSecret(probeID, probeValue); err != nil {
		return fmt.Errorf("store failed: %w", err)
	}
	defer func() {
		_, _ = ks.DeleteSecret(probeID)
	}()

	got, err := ks.GetSecret(probeID)
	if err != nil {
		return fmt.Errorf("read back failed: %w", err)
	}
	if got != probeValue {
		return fmt.Errorf("round trip returned a different value")
	}
	return nil
}

func checkPermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if perm := stat.Mode().Perm(); perm&0o077 != 0 {
		return fmt.Errorf("keystore document is group/world accessible (%04o), want 0600", perm)
	}
	return nil
}
