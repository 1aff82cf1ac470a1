package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// --- Shared mock implementations for service testing ---

// mockLoader implements driven.DocumentLoader over an in-memory file map.
type mockLoader struct {
	files map[string]string // path -> XML content
}

func (m *mockLoader) ListDocuments(_ context.Context, dir string) ([]string, error) {
	var paths []string
	for path := range m.files {
		if strings.HasPrefix(path, dir+"/") {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, domain.ErrNoDocuments
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *mockLoader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// mockWriter implements driven.OutputWriter, recording every write.
type mockWriter struct {
	mu    sync.Mutex
	json  map[string]any // path -> value
	jsonl map[string][]any
}

func newMockWriter() *mockWriter {
	return &mockWriter{
		json:  make(map[string]any),
		jsonl: make(map[string][]any),
	}
}

func (m *mockWriter) WriteJSON(path string, v any, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.json[path] = v
	return nil
}

func (m *mockWriter) AppendJSONL(path string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jsonl[path] = append(m.jsonl[path], v)
	return nil
}

// mockLabelStore implements driven.LabelStore, recording saves.
type mockLabelStore struct {
	mu     sync.Mutex
	labels []domain.SPLDocument
	graphs []domain.KnowledgeGraph
	runs   []domain.BatchRun
}

func (m *mockLabelStore) SaveLabel(_ context.Context, doc *domain.SPLDocument, graph *domain.KnowledgeGraph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = append(m.labels, *doc)
	m.graphs = append(m.graphs, *graph)
	return nil
}

func (m *mockLabelStore) GetLabel(_ context.Context, setID string) (*domain.SPLDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.labels {
		if m.labels[i].SPL.SetID.Root != nil && *m.labels[i].SPL.SetID.Root == setID {
			return &m.labels[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLabelStore) GetGraph(_ context.Context, _ string) (*domain.KnowledgeGraph, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLabelStore) ListLabels(_ context.Context) ([]domain.CatalogEntry, error) {
	return nil, nil
}

func (m *mockLabelStore) SaveRun(_ context.Context, run *domain.BatchRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockLabelStore) Close() error { return nil }
