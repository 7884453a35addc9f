package codegen

// Snippet templates, keyed by language in codegen.go. Each template handles
// both the SDK-backed and the generic (env-var-only) shape via {{if .SDK}}.

const tsTemplate = `// {{.Name}} client. Generated by keyden; safe to edit.
{{- if .SDK}}
import Client from "{{.SDK}}";
{{- end}}

const apiKey = process.env.{{.EnvVar}};
if (!apiKey) {
  throw new Error("{{.EnvVar}} is not set. Run: keyden env sync");
}
{{if .SDK}}
export const {{.ID}} = new Client({ apiKey });
{{- else}}
export const {{.ID}}ApiKey: string = apiKey;
{{- end}}
`

const jsTemplate = `// {{.Name}} client. Generated by keyden; safe to edit.
{{- if .SDK}}
const Client = require("{{.SDK}}");
{{- end}}

const apiKey = process.env.{{.EnvVar}};
if (!apiKey) {
  throw new Error("{{.EnvVar}} is not set. Run: keyden env sync");
}
{{if .SDK}}
module.exports.{{.ID}} = new Client({ apiKey });
{{- else}}
module.exports.{{.ID}}ApiKey = apiKey;
{{- end}}
`

const pyTemplate = `"""{{.Name}} client. Generated by keyden; safe to edit."""

import os
{{- if .SDK}}

import {{.SDK}}
{{- end}}

api_key = os.environ.get("{{.EnvVar}}")
if not api_key:
    raise RuntimeError("{{.EnvVar}} is not set. Run: keyden env sync")
{{if .SDK}}
client = {{.SDK}}.Client(api_key=api_key)
{{- else}}
{{.ID}}_api_key = api_key
{{- end}}
`

const goTemplate = `// {{.Name}} client. Generated by keyden; safe to edit.
package {{.GoPackage}}

import (
	"log"
	"os"
)
{{if .SDK}}
// The official SDK is {{.SDK}}; add it with: go get {{.SDK}}
{{end}}
// APIKey returns the {{.Name}} API key from {{.EnvVar}}, exiting when unset.
func APIKey() string {
	key := os.Getenv("{{.EnvVar}}")
	if key == "" {
		log.Fatal("{{.EnvVar}} is not set. Run: keyden env sync")
	}
	return key
}
`
