package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keyden-cli/keyden/internal/configs"
)

// Entry represents a single audit log entry. Secret values are never
// recorded; only identifiers and operation metadata.
type Entry struct {
	Timestamp string `json:"ts"`  // RFC3339 with microseconds.
	Operation string `json:"op"`  // Operation name: store, delete, sync, export, import, serve.
	Source    string `json:"src"` // "cli" or "toolserver".

	// Optional fields depending on operation.
	SecretID    string   `json:"secret_id,omitempty"`    // For store/delete.
	SecretIDs   []string `json:"secret_ids,omitempty"`   // For export/import.
	Provider    string   `json:"provider,omitempty"`     // For store/delete.
	ProjectName string   `json:"project_name,omitempty"` // For init/sync.
	EnvPath     string   `json:"env_path,omitempty"`     // For sync.
	OutputPath  string   `json:"output_path,omitempty"`  // For export.
	Count       int      `json:"count,omitempty"`        // For sync/import.
}

// Log appends an entry to the audit log. Logging is best-effort: if it
// fails the operation continues without error.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Source == "" {
		entry.Source = "cli"
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	if configs.UserKeydenSettings == nil {
		return ""
	}
	return filepath.Join(configs.UserKeydenSettings.ConfigDir, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log. Returns an empty slice
// if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries. Malformed lines
// are silently skipped to handle partial writes.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
