package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/keyden-cli/keyden/internal/codegen"
	"github.com/keyden-cli/keyden/internal/detect"
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/keyden-cli/keyden/internal/providers"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var (
	generateVerbose bool
	generateDebug   bool
	generateLang    string
	generateOutput  string
	generateStdout  bool
	GenerateLogger  logger.Logger

	GenerateCmd = &cobra.Command{
		Use:   "generate <provider>",
		Short: "Generate client boilerplate for a provider",
		Long: `Renders a small client module for the provider that reads its API key
from the environment. The generated code never embeds key material.

The language defaults to what ` + "`keyden init`" + ` detected for the project;
override it with --lang (` + strings.Join(codegen.Languages, ", ") + `).

Examples:
  keyden generate openai
  keyden generate stripe --lang python
  keyden generate anthropic --stdout`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			GenerateLogger = logger.Logger{
				Verbose: generateVerbose,
				Debug:   generateDebug,
			}
		},
		RunE: runGenerate,
	}
)

func init() {
	GenerateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "enable verbose output")
	GenerateCmd.Flags().BoolVarP(&generateDebug, "debug", "d", false, "enable debug output")
	GenerateCmd.Flags().StringVar(&generateLang, "lang", "", "target language (defaults to the detected project language)")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output path (defaults to a conventional filename)")
	GenerateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print to stdout instead of writing a file")
}

// resetGenerateCommandState resets the generate command's global state for testing.
func resetGenerateCommandState() {
	generateVerbose = false
	generateDebug = false
	generateLang = ""
	generateOutput = ""
	generateStdout = false
}

func runGenerate(cmd *cobra.Command, args []string) error {
	GenerateLogger.Infof("Starting generate command")

	provider, err := providers.Get(args[0])
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Unknown provider " + ui.Code.Sprint(args[0]))
		fmt.Println(ui.Info.Sprint("→") + " Known providers: " + strings.Join(providerIDs(), ", "))
		return err
	}

	lang := generateLang
	if lang == "" {
		projectDir, err := os.Getwd()
		if err != nil {
			return GenerateLogger.ErrorfAndReturn("failed to get working directory: %v", err)
		}
		project, err := detect.Detect(projectDir)
		if err != nil {
			GenerateLogger.Debugf("Detection failed, defaulting language: %v", err)
		}
		lang = codegen.LanguageFor(project)
		GenerateLogger.Debugf("Detected language: %s", lang)
	}
	if !codegen.Supported(lang) {
		return GenerateLogger.ErrorfAndReturn("unsupported language %q (choose one of: %s)", lang, strings.Join(codegen.Languages, ", "))
	}

	code, err := codegen.Client(provider, lang)
	if err != nil {
		return GenerateLogger.ErrorfAndReturn("failed to generate client: %v", err)
	}

	if generateStdout {
		fmt.Print(code)
		return nil
	}

	outputPath := generateOutput
	if outputPath == "" {
		outputPath = codegen.Filename(provider, lang)
	}
	if _, err := os.Stat(outputPath); err == nil {
		fmt.Println(ui.Error.Sprint("✗") + " " + ui.Path.Sprint(outputPath) + " already exists")
		fmt.Println(ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("-o <path>") + " or " + ui.Code.Sprint("--stdout"))
		return fmt.Errorf("refusing to overwrite %s", outputPath)
	}

	// #nosec G306 -- generated code holds no secrets.
	if err := os.WriteFile(outputPath, []byte(code), 0o644); err != nil {
		return GenerateLogger.ErrorfAndReturn("failed to write %s: %v", outputPath, err)
	}

	fmt.Println(ui.Success.Sprint("✓") + " Generated " + ui.Path.Sprint(outputPath))
	fmt.Println(ui.Info.Sprint("→") + " It reads " + ui.EnvVar.Sprint(provider.EnvVar) + "; run " + ui.Code.Sprint("keyden env sync") + " to set it")
	return nil
}

func providerIDs() []string {
	all := providers.All()
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	return ids
}
