package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/ui"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	KeysCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the keystore audit log",
	Long: `Displays the audit log of keystore operations. Only identifiers and
operation metadata are logged; secret values never are.

Examples:
  keyden keys log                         # Full log
  keyden keys log -n 10                   # Last 10 entries
  keyden keys log --operation store,sync  # Filter by operation
  keyden keys log --json                  # JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys log command")

		entries, err := audit.ReadEntries()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}
		Logger.Debugf("Parsed %d entries from audit log", len(entries))

		entries = filterEntries(entries, logOperation)
		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[len(entries)-logLimit:]
		}

		if len(entries) == 0 {
			fmt.Println("No audit log entries found.")
			return nil
		}

		if logJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		for _, entry := range entries {
			fmt.Println(formatLogEntry(entry))
		}
		return nil
	},
}

func filterEntries(entries []audit.Entry, operations string) []audit.Entry {
	if operations == "" {
		return entries
	}

	wanted := make(map[string]bool)
	for _, op := range strings.Split(operations, ",") {
		wanted[strings.TrimSpace(strings.ToLower(op))] = true
	}

	var filtered []audit.Entry
	for _, entry := range entries {
		if wanted[entry.Operation] {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func formatLogEntry(entry audit.Entry) string {
	var b strings.Builder
	b.WriteString(entry.Timestamp)
	b.WriteString("  ")
	b.WriteString(ui.Info.Sprint(fmt.Sprintf("%-7s", entry.Operation)))
	b.WriteString(" [")
	b.WriteString(entry.Source)
	b.WriteString("]")

	switch {
	case entry.SecretID != "":
		b.WriteString("  ")
		b.WriteString(ui.Provider.Sprint(entry.SecretID))
	case len(entry.SecretIDs) > 0:
		b.WriteString(fmt.Sprintf("  %d key(s)", len(entry.SecretIDs)))
	case entry.EnvPath != "":
		b.WriteString("  ")
		b.WriteString(ui.Path.Sprint(entry.EnvPath))
	case entry.ProjectName != "":
		b.WriteString("  ")
		b.WriteString(entry.ProjectName)
	}
	return b.String()
}
