package cmd

import (
	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/providers"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

func resetRemoveCommandState() {}

var removeCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove a stored API key",
	Long: `Removes a stored API key from the keystore. Removing a key that does
not exist is reported, not treated as an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys remove command")

		id, err := resolveSecretID(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve secret identifier: %v", err)
		}
		Logger.Debugf("Resolved secret identifier: %s", id)

		spinner, cleanup := startSpinner("Removing key...", verbose)
		defer cleanup()

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		removed, err := ks.DeleteSecret(id)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to remove secret: %v", err)
		}

		if !removed {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No key stored for " + ui.Provider.Sprint(id)
			return nil
		}

		_, providerID, _ := providers.SplitSecretID(id)
		audit.Log(audit.Entry{Operation: "delete", Source: "cli", SecretID: id, Provider: providerID})
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Provider.Sprint(id)
		return nil
	},
}
