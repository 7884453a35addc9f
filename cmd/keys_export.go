package cmd

import (
	"fmt"
	"os"

	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/ui"
	"github.com/keyden-cli/keyden/internal/utils"

	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "keyden-export.json", "path for the encrypted archive")
}

func resetExportCommandState() {
	exportOutput = "keyden-export.json"
}

var exportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Export keys as a passphrase-encrypted archive",
	Long: `Exports stored keys as a portable archive encrypted with a passphrase
of your choosing. With no arguments, every key is exported.

The archive can be imported on another machine with ` + "`keyden keys import`" + `.

Examples:
  keyden keys export                          # Everything
  keyden keys export myproject:openai         # One key
  keyden keys export -o backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys export command")

		var ids []string
		for _, arg := range args {
			id, err := resolveSecretID(arg)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to resolve secret identifier: %v", err)
			}
			ids = append(ids, id)
		}

		passphrase, err := utils.ReadPassphrase("Choose an archive passphrase: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
		}
		confirm, err := utils.ReadPassphrase("Confirm passphrase: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
		}
		if string(passphrase) != string(confirm) {
			return Logger.ErrorfAndReturn("passphrases do not match")
		}
		if len(passphrase) == 0 {
			return Logger.ErrorfAndReturn("passphrase must not be empty")
		}

		spinner, cleanup := startSpinner("Encrypting archive...", verbose)
		defer cleanup()

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		data, exported, err := ks.ExportSecrets(ids, passphrase)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to export secrets: %v", err)
		}
		if len(exported) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No keys to export"
			return nil
		}

		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return Logger.ErrorfAndReturn("failed to write archive: %v", err)
		}
		audit.Log(audit.Entry{Operation: "export", Source: "cli", SecretIDs: exported, OutputPath: exportOutput, Count: len(exported)})

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d key(s) to ", len(exported)) + ui.Path.Sprint(exportOutput) + "\n" +
			ui.Info.Sprint("→") + " Import elsewhere with " + ui.Code.Sprint("keyden keys import "+exportOutput)
		return nil
	},
}
