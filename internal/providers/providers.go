package providers

import (
	"fmt"
	"sort"
	"strings"

	kerrors "github.com/keyden-cli/keyden/internal/errors"
)

// Provider describes one third-party service whose API key Keyden manages.
type Provider struct {
	// ID is the canonical lowercase identifier, e.g. "openai".
	ID string

	// Name is the display name, e.g. "OpenAI".
	Name string

	// EnvVar is the conventional environment variable, e.g. OPENAI_API_KEY.
	EnvVar string

	// KeyPrefix is the expected key prefix, used only for a gentle warning
	// when a pasted key looks wrong. Empty means no known prefix.
	KeyPrefix string

	// DashboardURL points at the page where keys are created.
	DashboardURL string
}

// registry holds every known provider. IDs are unique and lowercase.
var registry = map[string]Provider{
	"openai": {
		ID:           "openai",
		Name:         "OpenAI",
		EnvVar:       "OPENAI_API_KEY",
		KeyPrefix:    "sk-",
		DashboardURL: "https://platform.openai.com/api-keys",
	},
	"anthropic": {
		ID:           "anthropic",
		Name:         "Anthropic",
		EnvVar:       "ANTHROPIC_API_KEY",
		KeyPrefix:    "sk-ant-",
		DashboardURL: "https://console.anthropic.com/settings/keys",
	},
	"google": {
		ID:           "google",
		Name:         "Google AI",
		EnvVar:       "GOOGLE_API_KEY",
		DashboardURL: "https://aistudio.google.com/apikey",
	},
	"stripe": {
		ID:           "stripe",
		Name:         "Stripe",
		EnvVar:       "STRIPE_SECRET_KEY",
		KeyPrefix:    "sk_",
		DashboardURL: "https://dashboard.stripe.com/apikeys",
	},
	"supabase": {
		ID:           "supabase",
		Name:         "Supabase",
		EnvVar:       "SUPABASE_SERVICE_ROLE_KEY",
		DashboardURL: "https://supabase.com/dashboard/project/_/settings/api",
	},
	"resend": {
		ID:           "resend",
		Name:         "Resend",
		EnvVar:       "RESEND_API_KEY",
		KeyPrefix:    "re_",
		DashboardURL: "https://resend.com/api-keys",
	},
	"github": {
		ID:           "github",
		Name:         "GitHub",
		EnvVar:       "GITHUB_TOKEN",
		KeyPrefix:    "ghp_",
		DashboardURL: "https://github.com/settings/tokens",
	},
	"huggingface": {
		ID:           "huggingface",
		Name:         "Hugging Face",
		EnvVar:       "HF_TOKEN",
		KeyPrefix:    "hf_",
		DashboardURL: "https://huggingface.co/settings/tokens",
	},
}

// Get looks up a provider by its canonical id (case-insensitive).
func Get(id string) (Provider, error) {
	p, ok := registry[strings.ToLower(id)]
	if !ok {
		return Provider{}, fmt.Errorf("provider %q: %w", id, kerrors.ErrUnknownProvider)
	}
	return p, nil
}

// All returns every known provider, sorted by id.
func All() []Provider {
	out := make([]Provider, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SecretID builds the keystore identifier for a project/provider pair. The
// keystore itself imposes no structure on identifiers; this convention is
// owned by the caller side.
func SecretID(project, providerID string) string {
	return project + ":" + strings.ToLower(providerID)
}

// SplitSecretID splits an identifier back into project and provider. The
// provider is the part after the last colon, so project names may contain
// colons themselves.
func SplitSecretID(id string) (project, providerID string, ok bool) {
	i := strings.LastIndex(id, ":")
	if i < 0 {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

// LooksValid reports whether a key plausibly belongs to the provider.
// Only the prefix is checked; providers rotate formats too often for
// anything stricter, and this is advisory only.
func (p Provider) LooksValid(key string) bool {
	if p.KeyPrefix == "" {
		return key != ""
	}
	return strings.HasPrefix(key, p.KeyPrefix)
}
