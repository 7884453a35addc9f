package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/keyden-cli/keyden/internal/envfile"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var checkEnvFile string

func init() {
	envCheckCmd.Flags().StringVar(&checkEnvFile, "file", ".env", "env file to check against")
}

var envCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Find env vars the code reads but the .env file lacks",
	Long: `Scans the project's source for environment variable reads (process.env,
os.environ, os.Getenv and friends) and reports the variables that are
missing or empty in the env file. Exits non-zero when gaps are found so
it can gate CI or a dev-server start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		EnvLogger.Infof("Starting env check command")

		projectDir, err := os.Getwd()
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to get working directory: %v", err)
		}

		spinner, cleanup := startSpinnerWithFlags("Scanning for environment variable usage...", envVerbose, envDebug)
		defer cleanup()

		usages, err := envfile.ScanUsages(projectDir)
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to scan project: %v", err)
		}
		used := envfile.UsedVars(usages)
		EnvLogger.Debugf("Found %d environment variables in use", len(used))

		if len(used) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No environment variable reads found in the project source"
			return nil
		}

		envPath := filepath.Join(projectDir, checkEnvFile)
		missing, err := envfile.Missing(envPath, used)
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to read env file: %v", err)
		}

		if len(missing) == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" All %d environment variable(s) in use are present in ", len(used)) + ui.Path.Sprint(checkEnvFile)
			return nil
		}

		sort.Strings(missing)
		finalMessage := ui.Error.Sprint("✗") + fmt.Sprintf(" %d environment variable(s) are read by the code but missing from ", len(missing)) + ui.Path.Sprint(checkEnvFile) + "\n\n"
		for _, name := range missing {
			finalMessage += "  " + ui.EnvVar.Sprint(name)
			if envfile.IsSecretLike(name) {
				finalMessage += "  " + ui.Warning.Sprint("(looks secret — store it with keyden)")
			}
			finalMessage += "\n"
		}
		finalMessage += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys add <provider>") + " then " + ui.Code.Sprint("keyden env sync")
		spinner.FinalMSG = finalMessage

		return fmt.Errorf("%d environment variable(s) missing", len(missing))
	},
}
