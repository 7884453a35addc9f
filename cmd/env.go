package cmd

import (
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/spf13/cobra"
)

var (
	envVerbose bool
	envDebug   bool
	EnvLogger  logger.Logger

	EnvCmd = &cobra.Command{
		Use:   "env",
		Short: "Keep project .env files in sync with the keystore",
		Long:  `Materializes stored keys into a project's .env file and checks for gaps between the env file and the environment variables the code actually reads.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			EnvLogger = logger.Logger{
				Verbose: envVerbose,
				Debug:   envDebug,
			}
			EnvLogger.Debugf("Initializing env command with verbose=%t, debug=%t", envVerbose, envDebug)
		},
	}
)

func init() {
	EnvCmd.PersistentFlags().BoolVarP(&envVerbose, "verbose", "v", false, "enable verbose output")
	EnvCmd.PersistentFlags().BoolVarP(&envDebug, "debug", "d", false, "enable debug output")

	EnvCmd.AddCommand(envSyncCmd)
	EnvCmd.AddCommand(envCheckCmd)
}

// resetEnvCommandState resets the env commands' global state for testing.
func resetEnvCommandState() {
	envVerbose = false
	envDebug = false
	syncProject = ""
	syncEnvFile = ".env"
	checkEnvFile = ".env"
}

// GetEnvCmd returns the EnvCmd for testing.
func GetEnvCmd() *cobra.Command {
	return EnvCmd
}
