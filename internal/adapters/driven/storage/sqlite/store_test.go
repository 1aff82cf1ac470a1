package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleLabel(setID string) (*domain.SPLDocument, *domain.KnowledgeGraph) {
	doc := &domain.SPLDocument{
		Source: domain.Source{
			Dataset:       "DailyMed",
			Format:        "SPL",
			InputFilename: setID + ".xml",
			ParsedAt:      "2026-01-02T03:04:05Z",
			ParserVersion: domain.ParserVersion,
		},
		SPL: domain.SPLMetadata{
			DocumentID:    domain.DocumentID{Root: strPtr("doc-" + setID)},
			SetID:         domain.DocumentID{Root: strPtr(setID)},
			VersionNumber: intPtr(1),
			Title:         strPtr("Label " + setID),
			DocumentType:  domain.DocTypePrescription,
		},
		Products: []domain.Product{{
			ProductName: strPtr("Product " + setID),
			NDC:         domain.NDCInfo{ProductNDCs: []string{"12345-678"}},
		}},
		Sections: []domain.Section{{Code: strPtr("34067-9")}},
		Derived: domain.Derived{
			MergeKeys: domain.MergeKeys{
				Primary:   []string{"set_id:" + setID, "ndc:12345-678"},
				Secondary: []string{"doc_id:doc-" + setID},
			},
		},
	}
	graph := &domain.KnowledgeGraph{
		Entities: []domain.KGEntity{{
			EntityType: domain.EntityLabelVersion,
			EntityID:   "label:" + setID,
			Properties: map[string]any{"set_id": setID},
		}},
		Edges: []domain.KGEdge{},
	}
	return doc, graph
}

func TestSaveAndGetLabel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, graph := sampleLabel("S1")
	require.NoError(t, store.SaveLabel(ctx, doc, graph))

	got, err := store.GetLabel(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	gotGraph, err := store.GetGraph(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, graph.Entities[0].EntityID, gotGraph.Entities[0].EntityID)
}

func TestGetLabel_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetLabel(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetGraph(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveLabel_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, graph := sampleLabel("S1")
	require.NoError(t, store.SaveLabel(ctx, doc, graph))

	doc.SPL.VersionNumber = intPtr(2)
	doc.Derived.MergeKeys.Primary = []string{"set_id:S1", "ndc:99999-999"}
	require.NoError(t, store.SaveLabel(ctx, doc, graph))

	got, err := store.GetLabel(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, 2, *got.SPL.VersionNumber)

	entries, err := store.ListLabels(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, *entries[0].Version)
}

func TestSaveLabel_DocumentIDFallback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, graph := sampleLabel("S1")
	doc.SPL.SetID = domain.DocumentID{}
	require.NoError(t, store.SaveLabel(ctx, doc, graph))

	got, err := store.GetLabel(ctx, "doc-S1")
	require.NoError(t, err)
	assert.Nil(t, got.SPL.SetID.Root)
}

func TestSaveLabel_NoIdentity(t *testing.T) {
	store := newTestStore(t)

	doc, graph := sampleLabel("S1")
	doc.SPL.SetID = domain.DocumentID{}
	doc.SPL.DocumentID = domain.DocumentID{}

	err := store.SaveLabel(context.Background(), doc, graph)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListLabels(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"S2", "S1", "S3"} {
		doc, graph := sampleLabel(id)
		require.NoError(t, store.SaveLabel(ctx, doc, graph))
	}

	entries, err := store.ListLabels(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ordered by set id.
	assert.Equal(t, "S1", entries[0].SetID)
	assert.Equal(t, "S2", entries[1].SetID)
	assert.Equal(t, "S3", entries[2].SetID)

	assert.Equal(t, "doc-S1", entries[0].DocumentID)
	assert.Equal(t, "Label S1", *entries[0].Title)
	assert.Equal(t, 1, entries[0].ProductCount)
	assert.Equal(t, 1, entries[0].SectionCount)
	assert.Equal(t, domain.DocTypePrescription, entries[0].DocumentType)
}

func TestListLabels_Empty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.ListLabels(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSaveRun(t *testing.T) {
	store := newTestStore(t)

	run := &domain.BatchRun{
		RunID:     "run-1",
		InputDir:  "/in",
		StartedAt: time.Now().Add(-time.Minute),
		EndedAt:   time.Now(),
		Total:     3,
		Processed: 2,
		Failed:    1,
		Failures:  []domain.FileError{{Path: "/in/bad.xml", Error: "unparsable document"}},
	}
	require.NoError(t, store.SaveRun(context.Background(), run))

	// Duplicate run ids are rejected by the primary key.
	assert.Error(t, store.SaveRun(context.Background(), run))
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	doc, graph := sampleLabel("S1")
	require.NoError(t, first.SaveLabel(context.Background(), doc, graph))
	require.NoError(t, first.Close())

	// Reopening applies no migrations twice and keeps the data.
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	entries, err := second.ListLabels(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
