package driving

import (
	"context"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// BatchRunner processes a directory of SPL XML files.
type BatchRunner interface {
	// Run parses every XML file under opts.InputDir and writes outputs
	// per opts. Per-file parse failures are recorded in the returned run,
	// never aborting the batch.
	Run(ctx context.Context, opts BatchOptions) (*domain.BatchRun, error)

	// Status returns the progress of the active run, or an idle status
	// when no run is in flight.
	Status(ctx context.Context) (*BatchStatus, error)
}

// BatchOptions configures one batch run.
type BatchOptions struct {
	// InputDir is the directory to scan for *.xml files.
	InputDir string

	// OutputDir receives per-file and combined outputs.
	OutputDir string

	// Workers is the parse worker count. Zero means one per CPU.
	Workers int

	// Pretty indents JSON output.
	Pretty bool

	// JSONL also writes all_labels.jsonl with one document per line.
	JSONL bool

	// Graph also writes per-file and combined knowledge-graph outputs.
	Graph bool

	// Combined writes all_labels_combined.json with every document.
	Combined bool

	// Catalog stores results in the label catalog when a store is
	// configured.
	Catalog bool
}

// BatchStatus represents the current state of a batch run.
type BatchStatus struct {
	// RunID identifies the run.
	RunID string

	// Running indicates if a batch is currently in progress.
	Running bool

	// Total is the number of files discovered.
	Total int

	// Processed is the count of files parsed so far.
	Processed int

	// Failed is the number of parse failures so far.
	Failed int
}
