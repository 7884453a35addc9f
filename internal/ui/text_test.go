package ui

import (
	"os"
	"testing"
)

func TestEnsureNewline(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "\n"},
		{"done", "done\n"},
		{"done\n", "done\n"},
		{"a\nb", "a\nb\n"},
	}
	for _, c := range cases {
		if got := EnsureNewline(c.in); got != c.want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatterNoColorDecorations(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Code.Sprint("keyden keys add openai"); got != "`keyden keys add openai`" {
		t.Errorf("Code.Sprint with NO_COLOR = %q, want backtick decoration", got)
	}
	if got := Success.Sprint("✓"); got != "✓" {
		t.Errorf("Success.Sprint with NO_COLOR = %q, want undecorated", got)
	}
	if got := EnvVar.Sprintf("%s_API_KEY", "OPENAI"); got != "OPENAI_API_KEY" {
		t.Errorf("EnvVar.Sprintf with NO_COLOR = %q", got)
	}
}

func TestNoColorRespectsEnv(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	t.Setenv("NO_COLOR", "")

	// Presence of NO_COLOR, even empty, disables color.
	if !noColor() {
		t.Error("expected noColor() to be true when NO_COLOR is present")
	}
}
