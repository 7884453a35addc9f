package main

import (
	"fmt"
	"os"

	"github.com/keyden-cli/keyden/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyden",
	Short: "Keyden - A CLI for storing API keys encrypted and wiring them into your projects.",
	Long: `Keyden keeps your API keys encrypted at rest and out of your dotfiles.

Keys are sealed with AES-256-GCM; the master key lives in your OS keychain
when one is available, with a private fallback file otherwise.

Features:
  - Store and retrieve API keys securely
  - Sync keys into project .env files (and keep them gitignored)
  - Detect your project's stack and generate client boilerplate
  - Serve keystore operations to local tools over stdio

Usage:
  keyden <command> [flags]

Available Commands:
  keys       Manage encrypted API keys
  env        Sync and check project .env files
  init       Register the current project
  generate   Generate provider client code
  serve      Serve keystore operations over stdio

Run 'keyden help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Keyden! Run 'keyden --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.KeysCmd)
	rootCmd.AddCommand(cmd.EnvCmd)
	rootCmd.AddCommand(cmd.InitCmd)
	rootCmd.AddCommand(cmd.GenerateCmd)
	rootCmd.AddCommand(cmd.ServeCmd)

	// Errors are already printed by the commands themselves.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
