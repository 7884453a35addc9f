package cmd

import (
	"fmt"
	"os"

	"github.com/keyden-cli/keyden/internal/configs"
	"github.com/keyden-cli/keyden/internal/detect"
	"github.com/keyden-cli/keyden/internal/envfile"
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/keyden-cli/keyden/internal/ui"
	"github.com/keyden-cli/keyden/internal/utils"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	initVerbose bool
	initDebug   bool
	InitLogger  logger.Logger

	InitCmd = &cobra.Command{
		Use:   "init",
		Short: "Register the current directory as a Keyden project",
		Long: `Detects the project's language, framework, and package manager, records
the project in Keyden's config, and makes sure .env is gitignored.

Run it once per project; after that, ` + "`keyden keys add`" + ` and
` + "`keyden env sync`" + ` do the day-to-day work.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			InitLogger = logger.Logger{
				Verbose: initVerbose,
				Debug:   initDebug,
			}
		},
		RunE: runInit,
	}
)

func init() {
	InitCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "enable verbose output")
	InitCmd.Flags().BoolVarP(&initDebug, "debug", "d", false, "enable debug output")
}

func runInit(cmd *cobra.Command, args []string) error {
	InitLogger.Infof("Starting init command")

	projectDir, err := os.Getwd()
	if err != nil {
		return InitLogger.ErrorfAndReturn("failed to get working directory: %v", err)
	}
	projectName, err := utils.GetProjectName()
	if err != nil {
		return InitLogger.ErrorfAndReturn("failed to determine project name: %v", err)
	}

	config, err := configs.EnsureUserConfig()
	if err != nil {
		return InitLogger.ErrorfAndReturn("failed to ensure user config: %v", err)
	}
	if _, exists := config.Projects[projectName]; exists {
		fmt.Println(ui.Warning.Sprint("⚠") + " Project " + ui.Code.Sprint(projectName) + " is already registered")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyden keys add <provider>") + " to store a key")
		return nil
	}

	_, cleanup := startSpinnerWithFlags("Detecting project...", initVerbose, initDebug)

	project, err := detect.Detect(projectDir)
	if err != nil {
		InitLogger.Debugf("Detection failed, registering as unknown: %v", err)
	}
	InitLogger.Debugf("Detected language=%s framework=%s packageManager=%s",
		project.Language, project.Framework, project.PackageManager)

	if err := configs.RegisterProject(projectName, projectDir, string(project.Framework)); err != nil {
		cleanup()
		return InitLogger.ErrorfAndReturn("failed to register project: %v", err)
	}

	ignored, err := envfile.EnsureGitignored(projectDir, ".env")
	if err != nil {
		InitLogger.WarnfUser("could not update .gitignore: %v", err)
	}

	cleanup()

	// Banner after the spinner so it doesn't fight the terminal.
	fmt.Println()
	banner := figure.NewColorFigure("Keyden", "alligator2", "green", true)
	banner.Print()
	fmt.Println()

	fmt.Println(ui.Success.Sprint("✓") + " Registered project " + ui.Code.Sprint(projectName))
	if project.Framework != detect.FrameworkUnknown {
		fmt.Println(ui.Info.Sprint("→") + " Framework: " + ui.Code.Sprint(string(project.Framework)) +
			" (" + string(project.Language) + ", " + string(project.PackageManager) + ")")
	}
	if ignored {
		fmt.Println(ui.Info.Sprint("→") + " Added " + ui.Code.Sprint(".env") + " to .gitignore")
	}
	fmt.Println(ui.Info.Sprint("→") + " Store your first key with " + ui.Code.Sprint("keyden keys add <provider>"))
	return nil
}
