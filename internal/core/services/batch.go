package services

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/splgraph-cli/internal/logger"
)

// Combined output filenames written into the batch output directory.
const (
	CombinedLabelsFile = "all_labels_combined.json"
	CombinedJSONLFile  = "all_labels.jsonl"
	CombinedGraphFile  = "all_labels_graph.json"
)

// Ensure BatchService implements the interface.
var _ driving.BatchRunner = (*BatchService)(nil)

// BatchService processes a directory of labels with a pool of parse
// workers. Workers write per-file outputs concurrently; combined outputs
// and catalog writes happen on a single goroutine after the pool drains,
// in input order, so batch output is deterministic regardless of worker
// scheduling.
type BatchService struct {
	parser driving.LabelParser
	loader driven.DocumentLoader
	writer driven.OutputWriter
	store  driven.LabelStore // optional

	// Status tracking
	mu     sync.RWMutex
	active *driving.BatchStatus
}

// NewBatchService creates a batch service. store may be nil; catalog
// writes are then skipped.
func NewBatchService(
	parser driving.LabelParser,
	loader driven.DocumentLoader,
	writer driven.OutputWriter,
	store driven.LabelStore,
) *BatchService {
	return &BatchService{
		parser: parser,
		loader: loader,
		writer: writer,
		store:  store,
	}
}

// fileResult carries one worker's outcome back to the aggregation pass.
type fileResult struct {
	path   string
	result *driving.ParseResult
	err    error
}

// Run parses every XML file under opts.InputDir.
func (s *BatchService) Run(ctx context.Context, opts driving.BatchOptions) (*domain.BatchRun, error) {
	files, err := s.loader.ListDocuments(ctx, opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	run := &domain.BatchRun{
		RunID:     uuid.NewString(),
		InputDir:  opts.InputDir,
		StartedAt: time.Now(),
		Total:     len(files),
		Failures:  []domain.FileError{},
	}

	if err := s.begin(run); err != nil {
		return nil, err
	}
	defer s.clear()

	logger.Section("Batch Processing")
	logger.Info("Starting batch %s: %d files, %d workers", run.RunID, len(files), workerCount(opts.Workers))

	results := s.parseAll(ctx, files, opts)

	for _, path := range files {
		res := results[path]
		if res == nil {
			// Context cancelled before the file was picked up.
			continue
		}
		if res.err != nil {
			run.Failed++
			run.Failures = append(run.Failures, domain.FileError{
				Path:  res.path,
				Error: res.err.Error(),
			})
			logger.Warn("Batch: %s failed: %v", res.path, res.err)
			continue
		}
		run.Processed++
	}

	run.EndedAt = time.Now()

	if err := s.writeCombined(files, results, opts); err != nil {
		return nil, err
	}
	if err := s.catalog(ctx, run, files, results, opts); err != nil {
		return nil, err
	}

	logger.Info("Batch %s complete: %d parsed, %d failed", run.RunID, run.Processed, run.Failed)

	if err := ctx.Err(); err != nil {
		return run, err
	}
	return run, nil
}

// Status returns the progress of the active run.
func (s *BatchService) Status(_ context.Context) (*driving.BatchStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active != nil {
		// Return a copy to avoid race conditions
		copied := *s.active
		return &copied, nil
	}
	return &driving.BatchStatus{Running: false}, nil
}

// parseAll fans the file list out to the worker pool and collects every
// outcome keyed by path. Per-file outputs are written by the workers.
func (s *BatchService) parseAll(
	ctx context.Context,
	files []string,
	opts driving.BatchOptions,
) map[string]*fileResult {
	jobs := make(chan string)
	outcomes := make(chan *fileResult)

	var wg sync.WaitGroup
	for i := 0; i < workerCount(opts.Workers); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				outcomes <- s.parseOne(ctx, path, opts)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make(map[string]*fileResult, len(files))
	for res := range outcomes {
		results[res.path] = res
		s.track(res)
	}
	return results
}

// parseOne parses a single file and writes its per-file outputs.
func (s *BatchService) parseOne(ctx context.Context, path string, opts driving.BatchOptions) *fileResult {
	res := &fileResult{path: path}

	res.result, res.err = s.parser.Parse(ctx, path)
	if res.err != nil {
		return res
	}

	stem := outputStem(path)
	if err := s.writer.WriteJSON(
		filepath.Join(opts.OutputDir, stem+".json"), res.result.Document, opts.Pretty); err != nil {
		res.err = fmt.Errorf("write document: %w", err)
		return res
	}

	if opts.Graph {
		if err := s.writer.WriteJSON(
			filepath.Join(opts.OutputDir, stem+".graph.json"), res.result.Graph, opts.Pretty); err != nil {
			res.err = fmt.Errorf("write graph: %w", err)
		}
	}
	return res
}

// writeCombined writes the combined listing, JSONL and merged graph in
// input order, skipping failed files.
func (s *BatchService) writeCombined(
	files []string,
	results map[string]*fileResult,
	opts driving.BatchOptions,
) error {
	if !opts.Combined && !opts.JSONL && !opts.Graph {
		return nil
	}

	docs := []domain.SPLDocument{}
	graph := domain.KnowledgeGraph{Entities: []domain.KGEntity{}, Edges: []domain.KGEdge{}}

	for _, path := range files {
		res := results[path]
		if res == nil || res.err != nil {
			continue
		}
		docs = append(docs, res.result.Document)
		graph.Entities = append(graph.Entities, res.result.Graph.Entities...)
		graph.Edges = append(graph.Edges, res.result.Graph.Edges...)

		if opts.JSONL {
			if err := s.writer.AppendJSONL(
				filepath.Join(opts.OutputDir, CombinedJSONLFile), res.result.Document); err != nil {
				return fmt.Errorf("write jsonl: %w", err)
			}
		}
	}

	if opts.Combined {
		if err := s.writer.WriteJSON(
			filepath.Join(opts.OutputDir, CombinedLabelsFile), docs, opts.Pretty); err != nil {
			return fmt.Errorf("write combined listing: %w", err)
		}
	}
	if opts.Graph {
		if err := s.writer.WriteJSON(
			filepath.Join(opts.OutputDir, CombinedGraphFile), graph, opts.Pretty); err != nil {
			return fmt.Errorf("write combined graph: %w", err)
		}
	}
	return nil
}

// catalog stores parsed labels and the run record. All catalog writes
// happen here, on the one goroutine driving Run.
func (s *BatchService) catalog(
	ctx context.Context,
	run *domain.BatchRun,
	files []string,
	results map[string]*fileResult,
	opts driving.BatchOptions,
) error {
	if !opts.Catalog || s.store == nil {
		return nil
	}

	for _, path := range files {
		res := results[path]
		if res == nil || res.err != nil {
			continue
		}
		if err := s.store.SaveLabel(ctx, &res.result.Document, &res.result.Graph); err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
	}

	if err := s.store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// begin installs status tracking for a new run. Only one run may be
// active per service.
func (s *BatchService) begin(run *domain.BatchRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.Running {
		return domain.ErrBatchInProgress
	}
	s.active = &driving.BatchStatus{
		RunID:   run.RunID,
		Running: true,
		Total:   run.Total,
	}
	return nil
}

func (s *BatchService) track(res *fileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.err != nil {
		s.active.Failed++
	} else {
		s.active.Processed++
	}
}

func (s *BatchService) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func workerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}

// outputStem maps an input path to its output filename stem:
// /in/label.xml becomes label, so outputs land as label.json and
// label.graph.json.
func outputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
