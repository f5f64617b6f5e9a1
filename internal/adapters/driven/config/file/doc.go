// Package file provides the TOML-backed configuration store for the
// repository-local .docgen.toml file.
package file
