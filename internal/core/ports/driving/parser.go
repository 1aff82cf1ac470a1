package driving

import (
	"context"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// LabelParser converts one SPL XML file into its normalized document and
// graph fragment.
type LabelParser interface {
	// Parse loads, extracts and derives one label.
	// Returns domain.ErrUnparsableDocument (wrapped) when the XML cannot
	// be parsed; all lesser defects degrade to unset fields.
	Parse(ctx context.Context, path string) (*ParseResult, error)
}

// ParseResult is the complete output for one label.
type ParseResult struct {
	// Document is the normalized record set.
	Document domain.SPLDocument

	// Graph is the knowledge-graph fragment synthesized from Document.
	Graph domain.KnowledgeGraph
}
