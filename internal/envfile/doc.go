// Package envfile materializes stored secrets into .env files and scans
// project sources for environment variable usage.
//
// Sync merges managed values into an existing .env file without disturbing
// entries the user added by hand, and restricts the file to owner-only
// permissions since it holds plaintext secrets. ScanUsages walks the
// project tree looking for process.env / os.environ / os.Getenv reads so
// commands can report which keys a project actually consumes.
package envfile
