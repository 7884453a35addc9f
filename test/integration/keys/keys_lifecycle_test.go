package keys

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/keyden-cli/keyden/test/integration/shared"
)

func TestAddGetRemoveLifecycle(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output, err := shared.RunCLI("keys", "add", "demo:openai", "--value", "sk-test-abc123")
	if err != nil {
		t.Fatalf("keys add failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Stored") || !strings.Contains(output, "demo:openai") {
		t.Errorf("add output missing confirmation: %s", output)
	}

	output, err = shared.RunCLI("keys", "get", "demo:openai", "--quiet")
	if err != nil {
		t.Fatalf("keys get failed: %v\noutput: %s", err, output)
	}
	if output != "sk-test-abc123" {
		t.Errorf("get --quiet = %q, want the stored value", output)
	}

	output, err = shared.RunCLI("keys", "remove", "demo:openai")
	if err != nil {
		t.Fatalf("keys remove failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Removed") {
		t.Errorf("remove output missing confirmation: %s", output)
	}

	_, err = shared.RunCLI("keys", "get", "demo:openai")
	if err == nil {
		t.Error("get after remove should fail")
	}
}

func TestGetMissingKeyFails(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output, err := shared.RunCLI("keys", "get", "demo:anthropic")
	if err == nil {
		t.Fatal("expected an error for a missing key")
	}
	if !strings.Contains(output, "No key stored") {
		t.Errorf("output missing guidance: %s", output)
	}
}

func TestRemoveMissingKeyIsNotAnError(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output, err := shared.RunCLI("keys", "remove", "demo:stripe")
	if err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
	if !strings.Contains(output, "No key stored") {
		t.Errorf("output missing notice: %s", output)
	}
}

func TestListJSON(t *testing.T) {
	shared.SetupTestEnvironment(t)

	for _, args := range [][]string{
		{"keys", "add", "demo:openai", "--value", "sk-1"},
		{"keys", "add", "demo:stripe", "--value", "sk-2"},
	} {
		if output, err := shared.RunCLI(args...); err != nil {
			t.Fatalf("setup %v failed: %v\noutput: %s", args, err, output)
		}
	}

	output, err := shared.RunCLI("keys", "list", "--json")
	if err != nil {
		t.Fatalf("keys list failed: %v\noutput: %s", err, output)
	}

	var listings []struct {
		ID       string `json:"id"`
		Project  string `json:"project"`
		Provider string `json:"provider"`
		EnvVar   string `json:"env_var"`
	}
	if err := json.Unmarshal([]byte(output), &listings); err != nil {
		t.Fatalf("list --json output is not valid JSON: %v\noutput: %s", err, output)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	// Identifiers come back sorted.
	if listings[0].ID != "demo:openai" || listings[1].ID != "demo:stripe" {
		t.Errorf("listings out of order: %+v", listings)
	}
	if listings[0].EnvVar != "OPENAI_API_KEY" {
		t.Errorf("EnvVar = %q, want OPENAI_API_KEY", listings[0].EnvVar)
	}
	if strings.Contains(output, "sk-1") || strings.Contains(output, "sk-2") {
		t.Error("list output must never contain secret values")
	}
}

func TestStatusJSON(t *testing.T) {
	shared.SetupTestEnvironment(t)

	if output, err := shared.RunCLI("keys", "add", "demo:openai", "--value", "sk-1"); err != nil {
		t.Fatalf("setup failed: %v\noutput: %s", err, output)
	}

	output, err := shared.RunCLI("keys", "status", "--json")
	if err != nil {
		t.Fatalf("keys status failed: %v\noutput: %s", err, output)
	}

	var status struct {
		Path          string `json:"path"`
		UsingKeychain bool   `json:"using_keychain"`
		SecretCount   int    `json:"secret_count"`
	}
	if err := json.Unmarshal([]byte(output), &status); err != nil {
		t.Fatalf("status --json output is not valid JSON: %v\noutput: %s", err, output)
	}
	if status.SecretCount != 1 {
		t.Errorf("SecretCount = %d, want 1", status.SecretCount)
	}
	if !status.UsingKeychain {
		t.Error("mock keychain should be reported as in use")
	}
	if status.Path == "" {
		t.Error("status path is empty")
	}
}

func TestDoctorReportsHealthy(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output, err := shared.RunCLI("keys", "doctor")
	if err != nil {
		t.Fatalf("keys doctor failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Keystore is healthy") {
		t.Errorf("doctor output missing health summary: %s", output)
	}
	if !strings.Contains(output, "round trip") {
		t.Errorf("doctor output missing round-trip check: %s", output)
	}
}

func TestAuditLogRecordsOperations(t *testing.T) {
	shared.SetupTestEnvironment(t)

	for _, args := range [][]string{
		{"keys", "add", "demo:openai", "--value", "sk-1"},
		{"keys", "remove", "demo:openai"},
	} {
		if output, err := shared.RunCLI(args...); err != nil {
			t.Fatalf("setup %v failed: %v\noutput: %s", args, err, output)
		}
	}

	output, err := shared.RunCLI("keys", "log", "--json")
	if err != nil {
		t.Fatalf("keys log failed: %v\noutput: %s", err, output)
	}

	var entries []struct {
		Operation string `json:"op"`
		SecretID  string `json:"secret_id"`
	}
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("log --json output is not valid JSON: %v\noutput: %s", err, output)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "store" || entries[1].Operation != "delete" {
		t.Errorf("entries = %+v, want store then delete", entries)
	}
	if strings.Contains(output, "sk-1") {
		t.Error("audit log must never contain secret values")
	}
}
