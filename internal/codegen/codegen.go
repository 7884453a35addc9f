package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/keyden-cli/keyden/internal/detect"
	kerrors "github.com/keyden-cli/keyden/internal/errors"
	"github.com/keyden-cli/keyden/internal/providers"
)

// Languages supported by the generator, in preference order for listings.
var Languages = []string{"typescript", "javascript", "python", "go"}

// clientData is the payload passed to snippet templates.
type clientData struct {
	providers.Provider

	// SDK is the provider's official client package for the language,
	// empty when none is known (the generic template is used instead).
	SDK string

	// GoPackage is the generated file's package clause for Go output.
	GoPackage string
}

// sdkPackages maps provider id -> language -> official SDK package. A
// missing entry falls back to the plain read-the-env-var template.
var sdkPackages = map[string]map[string]string{
	"openai": {
		"typescript": "openai",
		"javascript": "openai",
		"python":     "openai",
		"go":         "github.com/openai/openai-go",
	},
	"anthropic": {
		"typescript": "@anthropic-ai/sdk",
		"javascript": "@anthropic-ai/sdk",
		"python":     "anthropic",
		"go":         "github.com/anthropics/anthropic-sdk-go",
	},
	"stripe": {
		"typescript": "stripe",
		"javascript": "stripe",
		"python":     "stripe",
		"go":         "github.com/stripe/stripe-go/v81",
	},
	"resend": {
		"typescript": "resend",
		"javascript": "resend",
		"python":     "resend",
	},
}

// Client renders boilerplate client code for a provider in the given
// language. The snippet reads the key from the provider's conventional
// environment variable and fails loudly when it is unset, so generated code
// never embeds key material.
func Client(p providers.Provider, lang string) (string, error) {
	lang = strings.ToLower(lang)
	tmpl, ok := clientTemplates[lang]
	if !ok {
		return "", fmt.Errorf("language %q: %w", lang, kerrors.ErrUnsupportedLanguage)
	}

	data := clientData{
		Provider:  p,
		SDK:       sdkPackages[p.ID][lang],
		GoPackage: "main",
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render %s client for %s: %w", lang, p.ID, err)
	}
	return out.String(), nil
}

// Filename suggests a file name for the generated client.
func Filename(p providers.Provider, lang string) string {
	switch strings.ToLower(lang) {
	case "typescript":
		return p.ID + ".ts"
	case "javascript":
		return p.ID + ".js"
	case "python":
		return p.ID + "_client.py"
	case "go":
		return p.ID + ".go"
	default:
		return p.ID + ".txt"
	}
}

// LanguageFor maps a detected project to the best template language.
func LanguageFor(project detect.Project) string {
	switch project.Language {
	case detect.LangTypeScript:
		return "typescript"
	case detect.LangJavaScript:
		return "javascript"
	case detect.LangPython:
		return "python"
	case detect.LangGo:
		return "go"
	default:
		return "typescript"
	}
}

// Supported reports whether a language has templates.
func Supported(lang string) bool {
	_, ok := clientTemplates[strings.ToLower(lang)]
	return ok
}

var clientTemplates = map[string]*template.Template{
	"typescript": template.Must(template.New("typescript").Parse(tsTemplate)),
	"javascript": template.Must(template.New("javascript").Parse(jsTemplate)),
	"python":     template.Must(template.New("python").Parse(pyTemplate)),
	"go":         template.Must(template.New("go").Parse(goTemplate)),
}
