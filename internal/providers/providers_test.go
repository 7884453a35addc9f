package providers

import (
	"errors"
	"sort"
	"testing"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

func TestGetKnownProvider(t *testing.T) {
	p, err := Get("openai")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p.EnvVar != "OPENAI_API_KEY" {
		t.Errorf("Expected OPENAI_API_KEY, got: %s", p.EnvVar)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	p, err := Get("OpenAI")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p.ID != "openai" {
		t.Errorf("Expected openai, got: %s", p.ID)
	}
}

func TestGetUnknownProvider(t *testing.T) {
	_, err := Get("definitely-not-a-provider")
	if !errors.Is(err, kerrors.ErrUnknownProvider) {
		t.Errorf("Expected ErrUnknownProvider, got: %v", err)
	}
}

func TestAllIsSorted(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("Expected at least one provider")
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].ID < all[j].ID }) {
		t.Error("Expected All() to be sorted by id")
	}
}

func TestSecretIDRoundTrip(t *testing.T) {
	id := SecretID("my-app", "OpenAI")
	if id != "my-app:openai" {
		t.Errorf("Expected my-app:openai, got: %s", id)
	}

	project, provider, ok := SplitSecretID(id)
	if !ok || project != "my-app" || provider != "openai" {
		t.Errorf("Expected (my-app, openai, true), got: (%s, %s, %t)", project, provider, ok)
	}
}

func TestSplitSecretIDColonInProjectName(t *testing.T) {
	project, provider, ok := SplitSecretID("org:team:stripe")
	if !ok || project != "org:team" || provider != "stripe" {
		t.Errorf("Expected (org:team, stripe, true), got: (%s, %s, %t)", project, provider, ok)
	}
}

func TestSplitSecretIDNoColon(t *testing.T) {
	if _, _, ok := SplitSecretID("bare-identifier"); ok {
		t.Error("Expected ok=false for identifier with no colon")
	}
}

func TestLooksValid(t *testing.T) {
	openai, _ := Get("openai")
	if !openai.LooksValid("sk-test-123") {
		t.Error("Expected sk-test-123 to look valid for openai")
	}
	if openai.LooksValid("hf_abc") {
		t.Error("Expected hf_abc to look invalid for openai")
	}

	google, _ := Get("google")
	if !google.LooksValid("AIzaSyExample") {
		t.Error("Expected any non-empty key to look valid without a prefix")
	}
	if google.LooksValid("") {
		t.Error("Expected empty key to look invalid")
	}
}
