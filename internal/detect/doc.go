// Package detect identifies a project's language, framework, and package
// manager from its manifest and lock files.
//
// Detection is deliberately shallow: it reads package.json dependencies,
// checks for pyproject.toml/requirements.txt and go.mod, and inspects
// lockfile names. It never parses source code. Results feed the init and
// generate commands, which pick sensible client templates; an Unknown
// result is a valid answer, not an error.
package detect
