package driven

import (
	"context"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// LabelStore persists parsed labels and their graph fragments.
// Backed by SQLite for catalog storage.
type LabelStore interface {
	// SaveLabel stores or replaces a label and its graph, keyed by set id
	// (document id when the label has no set id).
	SaveLabel(ctx context.Context, doc *domain.SPLDocument, graph *domain.KnowledgeGraph) error

	// GetLabel retrieves a cataloged label by set id.
	// Returns domain.ErrNotFound when the label is not cataloged.
	GetLabel(ctx context.Context, setID string) (*domain.SPLDocument, error)

	// GetGraph retrieves the graph fragment for a cataloged label.
	// Returns domain.ErrNotFound when the label is not cataloged.
	GetGraph(ctx context.Context, setID string) (*domain.KnowledgeGraph, error)

	// ListLabels returns summary entries for every cataloged label,
	// ordered by set id.
	ListLabels(ctx context.Context) ([]domain.CatalogEntry, error)

	// SaveRun records a completed batch run.
	SaveRun(ctx context.Context, run *domain.BatchRun) error

	// Close releases the underlying database.
	Close() error
}
