package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/keyden-cli/keyden/internal/providers"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var listJSONOutput bool

func init() {
	listCmd.Flags().BoolVar(&listJSONOutput, "json", false, "output in JSON format")
}

func resetListCommandState() {
	listJSONOutput = false
}

// KeyListing describes one stored key for list output. Values are never
// included.
type KeyListing struct {
	ID       string `json:"id"`
	Project  string `json:"project"`
	Provider string `json:"provider"`
	EnvVar   string `json:"env_var,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys",
	Long: `Lists the identifiers of all stored API keys, sorted. Values are never
shown; use ` + "`keyden keys get`" + ` for that.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys list command")

		ks, err := openKeystore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		keys, err := ks.ListSecretKeys()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list secrets: %v", err)
		}
		Logger.Debugf("Found %d stored keys", len(keys))

		listings := make([]KeyListing, 0, len(keys))
		for _, id := range keys {
			project, providerID, _ := providers.SplitSecretID(id)
			listing := KeyListing{ID: id, Project: project, Provider: providerID}
			if p, err := providers.Get(providerID); err == nil {
				listing.EnvVar = p.EnvVar
			}
			listings = append(listings, listing)
		}

		if listJSONOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(listings)
		}

		if len(listings) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No keys stored yet")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys add <provider>") + " to store one")
			return nil
		}

		fmt.Printf("%s %d stored key(s):\n\n", ui.Success.Sprint("✓"), len(listings))
		for _, listing := range listings {
			line := "  " + ui.Provider.Sprint(listing.ID)
			if listing.EnvVar != "" {
				line += "  →  " + ui.EnvVar.Sprint(listing.EnvVar)
			}
			fmt.Println(line)
		}
		return nil
	},
}
