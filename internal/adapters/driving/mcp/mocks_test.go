package mcp

import (
	"context"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
)

// mockParser is a mock implementation of driving.LabelParser.
type mockParser struct {
	result *driving.ParseResult
	err    error
}

func (m *mockParser) Parse(_ context.Context, _ string) (*driving.ParseResult, error) {
	return m.result, m.err
}

// mockLabelStore is a mock implementation of driven.LabelStore.
type mockLabelStore struct {
	entries []domain.CatalogEntry
	doc     *domain.SPLDocument
	graph   *domain.KnowledgeGraph
	saved   []string
	err     error
}

func (m *mockLabelStore) SaveLabel(_ context.Context, doc *domain.SPLDocument, _ *domain.KnowledgeGraph) error {
	if m.err != nil {
		return m.err
	}
	key := "unknown"
	if doc.SPL.SetID.Root != nil {
		key = *doc.SPL.SetID.Root
	}
	m.saved = append(m.saved, key)
	return nil
}

func (m *mockLabelStore) GetLabel(_ context.Context, _ string) (*domain.SPLDocument, error) {
	if m.doc == nil {
		return nil, domain.ErrNotFound
	}
	return m.doc, m.err
}

func (m *mockLabelStore) GetGraph(_ context.Context, _ string) (*domain.KnowledgeGraph, error) {
	if m.graph == nil {
		return nil, domain.ErrNotFound
	}
	return m.graph, m.err
}

func (m *mockLabelStore) ListLabels(_ context.Context) ([]domain.CatalogEntry, error) {
	return m.entries, m.err
}

func (m *mockLabelStore) SaveRun(_ context.Context, _ *domain.BatchRun) error {
	return m.err
}

func (m *mockLabelStore) Close() error { return nil }

func strPtr(s string) *string { return &s }

func sampleResult() *driving.ParseResult {
	return &driving.ParseResult{
		Document: domain.SPLDocument{
			SPL: domain.SPLMetadata{
				SetID:        domain.DocumentID{Root: strPtr("S1")},
				Title:        strPtr("Example Tablet Label"),
				DocumentType: domain.DocTypePrescription,
			},
			Products: []domain.Product{{ProductName: strPtr("Example Tablet")}},
			Sections: []domain.Section{{Code: strPtr("34067-9")}},
			Derived: domain.Derived{
				MergeKeys: domain.MergeKeys{
					Primary:   []string{"set_id:S1"},
					Secondary: []string{},
				},
			},
		},
		Graph: domain.KnowledgeGraph{
			Entities: []domain.KGEntity{{EntityType: domain.EntityLabelVersion, EntityID: "label:S1"}},
			Edges:    []domain.KGEdge{},
		},
	}
}
