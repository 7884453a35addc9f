// Package configs manages Keyden's per-user configuration.
//
// The config lives as TOML at <user config dir>/keyden/config.toml and
// records a stable install UUID plus every project registered with
// keyden init. The same directory holds the keystore document, the
// fallback master-key file, and the audit log; package keystore and
// package audit derive their paths from the settings here.
package configs
