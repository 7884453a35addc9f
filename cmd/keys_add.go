package cmd

import (
	"fmt"
	"strings"

	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/providers"
	"github.com/keyden-cli/keyden/internal/ui"
	"github.com/keyden-cli/keyden/internal/utils"

	"github.com/spf13/cobra"
)

var addValue string

func init() {
	addCmd.Flags().StringVar(&addValue, "value", "", "secret value (prefer piping via stdin over this flag)")
}

func resetAddCommandState() {
	addValue = ""
}

var addCmd = &cobra.Command{
	Use:   "add <provider>",
	Short: "Encrypt and store an API key",
	Long: `Encrypts an API key with the keystore's master key and stores it under
"<project>:<provider>". The value is read from a hidden prompt, or from
stdin when piped.

Examples:
  keyden keys add openai                    # Hidden prompt
  pbpaste | keyden keys add anthropic       # Piped value
  keyden keys add myproject:stripe          # Explicit project namespace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys add command")

		id, err := resolveSecretID(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve secret identifier: %v", err)
		}
		_, providerID, _ := providers.SplitSecretID(id)
		Logger.Debugf("Resolved secret identifier: %s", id)

		value := addValue
		if value == "" {
			provider, err := providers.Get(providerID)
			prompt := fmt.Sprintf("Enter API key for %s: ", providerID)
			if err == nil {
				prompt = fmt.Sprintf("Enter API key for %s: ", provider.Name)
			}
			value, err = utils.ReadSecretValue(prompt)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret value: %v", err)
			}
		}
		if strings.TrimSpace(value) == "" {
			return Logger.ErrorfAndReturn("refusing to store an empty value")
		}

		spinner, cleanup := startSpinner("Encrypting and storing key...", verbose)
		defer cleanup()

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		if err := ks.StoreSecret(id, value); err != nil {
			return Logger.ErrorfAndReturn("failed to store secret: %v", err)
		}
		audit.Log(audit.Entry{Operation: "store", Source: "cli", SecretID: id, Provider: providerID})

		finalMessage := ui.Success.Sprint("✓") + " Stored " + ui.Provider.Sprint(id) + "\n"
		if provider, err := providers.Get(providerID); err == nil && !provider.LooksValid(value) {
			finalMessage += ui.Warning.Sprint("⚠") + " The value does not look like a typical " +
				provider.Name + " key (expected prefix " + ui.Code.Sprint(provider.KeyPrefix) + ")\n"
		}
		finalMessage += ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden env sync") + " to write it to your .env file"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
