package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var getQuiet bool

func init() {
	getCmd.Flags().BoolVarP(&getQuiet, "quiet", "q", false, "print only the value, for piping")
}

func resetGetCommandState() {
	getQuiet = false
}

var getCmd = &cobra.Command{
	Use:   "get <provider>",
	Short: "Decrypt and print a stored API key",
	Long: `Decrypts a stored API key and prints it to stdout.

A key that does not exist, or whose record cannot be decrypted, is
reported as not found either way.

Examples:
  keyden keys get openai
  keyden keys get openai --quiet | pbcopy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys get command")

		id, err := resolveSecretID(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve secret identifier: %v", err)
		}
		Logger.Debugf("Resolved secret identifier: %s", id)

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		value, err := ks.GetSecret(id)
		if errors.Is(err, kerrors.ErrSecretNotFound) {
			fmt.Println(ui.Error.Sprint("✗") + " No key stored for " + ui.Provider.Sprint(id))
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys add "+args[0]) + " to store one")
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read secret: %v", err)
		}

		if getQuiet {
			fmt.Print(value)
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + " " + ui.Provider.Sprint(id))
		fmt.Println(value)
		return nil
	},
}
