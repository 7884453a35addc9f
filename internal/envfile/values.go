package envfile

import (
	"github.com/keyden-cli/keyden/internal/providers"
)

// SecretSource is the slice of the keystore that env syncing needs.
type SecretSource interface {
	ListSecretKeys() ([]string, error)
	GetSecret(id string) (string, error)
}

// ProjectValues decrypts every secret in the project's namespace and maps
// it to the provider's conventional environment variable. Secrets for
// unknown providers get "<PROVIDER>_API_KEY". Undecryptable entries are
// skipped; the env file only ever contains values that round-tripped.
func ProjectValues(src SecretSource, project string) (map[string]string, error) {
	keys, err := src.ListSecretKeys()
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, id := range keys {
		owner, providerID, ok := providers.SplitSecretID(id)
		if !ok || owner != project {
			continue
		}

		value, err := src.GetSecret(id)
		if err != nil {
			continue
		}

		envVar := fallbackEnvVar(providerID)
		if p, err := providers.Get(providerID); err == nil {
			envVar = p.EnvVar
		}
		values[envVar] = value
	}
	return values, nil
}

func fallbackEnvVar(providerID string) string {
	out := make([]byte, 0, len(providerID))
	for i := 0; i < len(providerID); i++ {
		c := providerID[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out) + "_API_KEY"
}
