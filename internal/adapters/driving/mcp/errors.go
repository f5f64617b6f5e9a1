// Package mcp provides an MCP (Model Context Protocol) server adapter for docgen.
// It lets AI assistants build repository context, validate generated README
// sections against evidence, and inspect analyzer signals.
package mcp

import "errors"

// ErrMissingContextBuilder is returned when the context builder is not provided.
var ErrMissingContextBuilder = errors.New("mcp: context builder is required")

// ErrMissingValidator is returned when the validator is not provided.
var ErrMissingValidator = errors.New("mcp: validator is required")

// ErrMissingSignalCollector is returned when the signal collector is not provided.
var ErrMissingSignalCollector = errors.New("mcp: signal collector is required")
