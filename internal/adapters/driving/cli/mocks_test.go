package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleParseResult() *driving.ParseResult {
	title := "Example Tablet Label"
	version := 3
	return &driving.ParseResult{
		Document: domain.SPLDocument{
			Source: domain.Source{
				Dataset:       "DailyMed",
				Format:        "SPL",
				InputFilename: "label.xml",
				ParsedAt:      "2024-01-02T03:04:05Z",
			},
			SPL: domain.SPLMetadata{
				SetID:         domain.DocumentID{Root: strPtr("set-1")},
				DocumentID:    domain.DocumentID{Root: strPtr("doc-1")},
				VersionNumber: &version,
				Title:         &title,
				DocumentType:  domain.DocTypePrescription,
			},
			Products: []domain.Product{},
			Sections: []domain.Section{},
			Derived: domain.Derived{
				MergeKeys: domain.MergeKeys{
					Primary:   []string{"set_id:set-1"},
					Secondary: []string{"doc_id:doc-1"},
				},
			},
		},
		Graph: domain.KnowledgeGraph{
			Entities: []domain.KGEntity{{
				EntityType: domain.EntityLabelVersion,
				EntityID:   "label:set-1",
				Properties: map[string]any{},
			}},
			Edges: []domain.KGEdge{},
		},
	}
}

type mockParser struct {
	err error
}

func (m *mockParser) Parse(_ context.Context, path string) (*driving.ParseResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := sampleParseResult()
	result.Document.Source.InputFilename = path
	return result, nil
}

type mockBatchRunner struct {
	run *domain.BatchRun
	err error
}

func (m *mockBatchRunner) Run(_ context.Context, opts driving.BatchOptions) (*domain.BatchRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.run != nil {
		return m.run, nil
	}
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.BatchRun{
		RunID:     "run-1",
		InputDir:  opts.InputDir,
		StartedAt: start,
		EndedAt:   start.Add(1500 * time.Millisecond),
		Total:     3,
		Processed: 2,
		Failed:    1,
		Failures:  []domain.FileError{{Path: "bad.xml", Error: "unparsable document"}},
	}, nil
}

func (m *mockBatchRunner) Status(_ context.Context) (*driving.BatchStatus, error) {
	return &driving.BatchStatus{}, nil
}

type mockWatcher struct {
	dir string
	err error
}

func (m *mockWatcher) Watch(_ context.Context, dir string, _ driving.BatchOptions) error {
	m.dir = dir
	return m.err
}

type mockLabelStore struct {
	saved   []*domain.SPLDocument
	entries []domain.CatalogEntry
	err     error
}

func (m *mockLabelStore) SaveLabel(_ context.Context, doc *domain.SPLDocument, _ *domain.KnowledgeGraph) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, doc)
	return nil
}

func (m *mockLabelStore) GetLabel(_ context.Context, setID string) (*domain.SPLDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	if setID != "set-1" {
		return nil, domain.ErrNotFound
	}
	doc := sampleParseResult().Document
	return &doc, nil
}

func (m *mockLabelStore) GetGraph(_ context.Context, setID string) (*domain.KnowledgeGraph, error) {
	if m.err != nil {
		return nil, m.err
	}
	if setID != "set-1" {
		return nil, domain.ErrNotFound
	}
	graph := sampleParseResult().Graph
	return &graph, nil
}

func (m *mockLabelStore) ListLabels(_ context.Context) ([]domain.CatalogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockLabelStore) SaveRun(_ context.Context, _ *domain.BatchRun) error {
	return m.err
}

func (m *mockLabelStore) Close() error { return nil }

type mockOutputWriter struct {
	json map[string]any
	err  error
}

func (m *mockOutputWriter) WriteJSON(path string, v any, _ bool) error {
	if m.err != nil {
		return m.err
	}
	if m.json == nil {
		m.json = make(map[string]any)
	}
	m.json[path] = v
	return nil
}

func (m *mockOutputWriter) AppendJSONL(_ string, _ any) error {
	return m.err
}

var errMock = errors.New("mock failure")

// resetFlags restores changed command flags to their defaults. Commands
// are package-level, so a flag set by one Execute call would otherwise
// leak into the next test.
func resetFlags() {
	for _, cmd := range []*cobra.Command{parseCmd, batchCmd, watchCmd, catalogShowCmd} {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	oldParser := parserService
	oldBatch := batchRunner
	oldWatcher := dirWatcher
	oldStore := labelStore
	oldWriter := outputWriter
	oldConfig := appConfig

	parserService = &mockParser{}
	batchRunner = &mockBatchRunner{}
	dirWatcher = &mockWatcher{}
	labelStore = &mockLabelStore{
		entries: []domain.CatalogEntry{
			{
				SetID:        "set-1",
				DocumentID:   "doc-1",
				Version:      intPtr(3),
				Title:        strPtr("Example Tablet Label"),
				DocumentType: domain.DocTypePrescription,
				ProductCount: 1,
				SectionCount: 2,
			},
			{
				SetID:        "set-2",
				DocumentType: domain.DocTypeUnknown,
			},
		},
	}
	outputWriter = &mockOutputWriter{}
	appConfig = domain.DefaultConfig()

	return func() {
		resetFlags()
		parserService = oldParser
		batchRunner = oldBatch
		dirWatcher = oldWatcher
		labelStore = oldStore
		outputWriter = oldWriter
		appConfig = oldConfig
	}
}
