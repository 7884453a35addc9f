// Package ui provides semantic text formatting for Keyden CLI output.
//
// Formatters attach meaning to styled output (Success, Error, Code, Path,
// Provider, EnvVar) so commands describe what a string is rather than which
// color it gets. When color is disabled — NO_COLOR set, dumb terminal,
// redirected output — formatters degrade to plain-text decorations.
package ui
