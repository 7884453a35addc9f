package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/keyden-cli/keyden/internal/audit"
	kerrors "github.com/keyden-cli/keyden/internal/errors"
	"github.com/keyden-cli/keyden/internal/ui"
	"github.com/keyden-cli/keyden/internal/utils"

	"github.com/spf13/cobra"
)

func resetImportCommandState() {}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import keys from an encrypted archive",
	Long: `Imports keys from an archive created by ` + "`keyden keys export`" + `.
Imported keys are re-encrypted under this machine's master key and
overwrite any existing keys with the same identifier.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys import command")

		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println(ui.Error.Sprint("✗") + " No archive found at " + ui.Path.Sprint(args[0]))
				return kerrors.ErrFileNotFound
			}
			return Logger.ErrorfAndReturn("failed to read archive: %v", err)
		}

		passphrase, err := utils.ReadPassphrase("Archive passphrase: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
		}

		spinner, cleanup := startSpinner("Decrypting and importing archive...", verbose)
		defer cleanup()

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		imported, err := ks.ImportSecrets(data, passphrase)
		if errors.Is(err, kerrors.ErrWrongPassphrase) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Wrong passphrase for this archive"
			return err
		}
		if errors.Is(err, kerrors.ErrInvalidArchive) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(args[0]) + " is not a valid Keyden archive"
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to import archive: %v", err)
		}

		audit.Log(audit.Entry{Operation: "import", Source: "cli", SecretIDs: imported, Count: len(imported)})

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Imported %d key(s)\n", len(imported)) +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys list") + " to see them"
		return nil
	},
}
