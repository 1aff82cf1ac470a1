package mcp

import (
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Parser parses SPL XML files on demand.
	Parser driving.LabelParser

	// Labels is the label catalog. Optional: without it the catalog
	// tools report empty results and label resources are unavailable.
	Labels driven.LabelStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Parser == nil {
		return ErrMissingParser
	}
	// Labels is optional
	return nil
}
