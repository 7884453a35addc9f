// Package codegen renders boilerplate client code for providers.
//
// Snippets are text/template renderings that read the provider's
// conventional environment variable and construct the official SDK client
// when one is known for the language. Generated code never contains key
// material; it always goes through the environment, which keyden env sync
// keeps populated.
package codegen
