package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/envfile"
	"github.com/keyden-cli/keyden/internal/ui"
	"github.com/keyden-cli/keyden/internal/utils"

	"github.com/spf13/cobra"
)

var (
	syncProject string
	syncEnvFile string
)

func init() {
	envSyncCmd.Flags().StringVar(&syncProject, "project", "", "project namespace (defaults to the directory name)")
	envSyncCmd.Flags().StringVar(&syncEnvFile, "file", ".env", "env file to write")
}

var envSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write this project's keys into its .env file",
	Long: `Decrypts every key stored under this project's namespace and writes it
to the project's .env file under the provider's conventional environment
variable. Entries in the file that Keyden does not manage are preserved,
and the file is added to .gitignore when missing from it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		EnvLogger.Infof("Starting env sync command")

		project := syncProject
		if project == "" {
			var err error
			project, err = utils.GetProjectName()
			if err != nil {
				return EnvLogger.ErrorfAndReturn("failed to determine project name: %v", err)
			}
		}
		EnvLogger.Debugf("Project namespace: %s", project)

		spinner, cleanup := startSpinnerWithFlags("Syncing keys to "+syncEnvFile+"...", envVerbose, envDebug)
		defer cleanup()

		ks, err := openKeystoreWith(EnvLogger)
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to open keystore: %v", err)
		}

		values, err := envfile.ProjectValues(ks, project)
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to collect project keys: %v", err)
		}
		if len(values) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No keys stored for project " + ui.Code.Sprint(project) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys add <provider>") + " first"
			return nil
		}

		projectDir, err := os.Getwd()
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to get working directory: %v", err)
		}
		envPath := filepath.Join(projectDir, syncEnvFile)

		result, err := envfile.Sync(envPath, values)
		if err != nil {
			return EnvLogger.ErrorfAndReturn("failed to sync env file: %v", err)
		}

		ignored, err := envfile.EnsureGitignored(projectDir, syncEnvFile)
		if err != nil {
			EnvLogger.WarnfUser("could not update .gitignore: %v", err)
		}

		audit.Log(audit.Entry{
			Operation:   "sync",
			Source:      "cli",
			ProjectName: project,
			EnvPath:     envPath,
			Count:       len(values),
		})

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Synced %d key(s) to ", len(values)) + ui.Path.Sprint(syncEnvFile)
		if len(result.Added) > 0 || len(result.Updated) > 0 {
			finalMessage += fmt.Sprintf(" (%d added, %d updated)", len(result.Added), len(result.Updated))
		} else {
			finalMessage += " (already up to date)"
		}
		if ignored {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Added " + ui.Code.Sprint(syncEnvFile) + " to .gitignore"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
