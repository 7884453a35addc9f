package cmd

import (
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	KeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys in the encrypted keystore",
		Long:  `Provides storage, retrieval, listing, removal, export, and import of encrypted API keys.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keys command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	KeysCmd.AddCommand(addCmd)
	KeysCmd.AddCommand(getCmd)
	KeysCmd.AddCommand(listCmd)
	KeysCmd.AddCommand(removeCmd)
	KeysCmd.AddCommand(statusCmd)
	KeysCmd.AddCommand(doctorCmd)
	KeysCmd.AddCommand(exportCmd)
	KeysCmd.AddCommand(importCmd)
}

// Helper functions for testing

// GetKeysCmd returns the KeysCmd for testing.
func GetKeysCmd() *cobra.Command {
	return KeysCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetAddCommandState()
	resetGetCommandState()
	resetListCommandState()
	resetRemoveCommandState()
	resetStatusCommandState()
	resetExportCommandState()
	resetImportCommandState()
	resetLogCommandState()
	resetEnvCommandState()
	resetGenerateCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
