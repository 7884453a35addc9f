package cmd

import (
	"os"

	"github.com/keyden-cli/keyden/internal/audit"
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/keyden-cli/keyden/internal/toolserver"

	"github.com/spf13/cobra"
)

var (
	serveVerbose bool
	serveDebug   bool
	ServeLogger  logger.Logger

	ServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve keystore operations to local tools over stdio",
		Long: `Speaks line-delimited JSON-RPC 2.0 on stdin/stdout so editors, agents,
and scripts can store, read, and sync keys without shelling out to the
CLI. One request per line, one response per line, until EOF.

Diagnostics go to stderr; stdout carries only protocol traffic.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries protocol traffic only; diagnostics go to stderr.
			ServeLogger = logger.Logger{
				Verbose: serveVerbose,
				Debug:   serveDebug,
				Writer:  os.Stderr,
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ServeLogger.Infof("Starting tool server on stdio")

			ks, err := openKeystoreWith(ServeLogger)
			if err != nil {
				return ServeLogger.ErrorfAndReturn("failed to open keystore: %v", err)
			}

			audit.Log(audit.Entry{Operation: "serve", Source: "toolserver"})

			server := toolserver.New(ks, os.Stdin, os.Stdout, ServeLogger)
			return server.Serve()
		},
	}
)

func init() {
	ServeCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "enable verbose output")
	ServeCmd.Flags().BoolVarP(&serveDebug, "debug", "d", false, "enable debug output")
}
