// Package mcp provides an MCP (Model Context Protocol) server adapter for
// splgraph. It lets AI assistants parse SPL labels and query the local
// label catalog.
package mcp

import "errors"

// ErrMissingParser is returned when the label parser is not provided.
var ErrMissingParser = errors.New("mcp: label parser is required")
