// Package utils provides small I/O helpers shared by Keyden commands:
// piped-stdin reading and hidden terminal prompts for secret values.
package utils
