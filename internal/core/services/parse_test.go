package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

const minimalLabelXML = `<?xml version="1.0"?>
<document xmlns="urn:hl7-org:v3">
  <setId root="S1"/>
  <code code="34391-3" displayName="HUMAN PRESCRIPTION DRUG LABEL"/>
  <subject>
    <manufacturedProduct>
      <manufacturedProduct>
        <code code="12345-6789" codeSystem="2.16.840.1.113883.6.69"/>
        <name>Example Tablet</name>
        <ingredient classCode="ACTIB">
          <ingredientSubstance>
            <code code="R16CO5Y76E" codeSystem="2.16.840.1.113883.4.9"/>
            <name>Aspirin</name>
          </ingredientSubstance>
        </ingredient>
      </manufacturedProduct>
    </manufacturedProduct>
  </subject>
  <component><structuredBody><component>
    <section>
      <code code="34067-9" codeSystem="2.16.840.1.113883.6.1"/>
      <title>INDICATIONS &amp; USAGE SECTION</title>
      <text>For pain.</text>
    </section>
  </component></structuredBody></component>
</document>`

// TestParserService_Parse tests the full pipeline on a minimal document.
func TestParserService_Parse(t *testing.T) {
	loader := &mockLoader{files: map[string]string{"in/label.xml": minimalLabelXML}}
	svc := NewParserService(loader)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	result, err := svc.Parse(context.Background(), "in/label.xml")
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "label.xml", doc.Source.InputFilename)
	assert.Equal(t, "2026-01-02T03:04:05Z", doc.Source.ParsedAt)

	require.NotNil(t, doc.SPL.SetID.Root)
	assert.Equal(t, "S1", *doc.SPL.SetID.Root)
	assert.Equal(t, domain.DocTypePrescription, doc.SPL.DocumentType)

	require.Len(t, doc.Products, 1)
	assert.Equal(t, "Example Tablet", *doc.Products[0].ProductName)
	require.Len(t, doc.Sections, 1)

	// Derivation ran.
	assert.Equal(t, []string{"set_id:S1", "ndc:12345-6789"}, doc.Derived.MergeKeys.Primary)
	assert.True(t, doc.Derived.SectionPresenceFlags.IndicationsAndUsage)

	// Graph synthesis ran; the active ingredient keys on its UNII.
	var ingredientIDs []string
	for _, e := range result.Graph.Entities {
		if e.EntityType == domain.EntityIngredient {
			ingredientIDs = append(ingredientIDs, e.EntityID)
		}
	}
	assert.Equal(t, []string{"ingredient:R16CO5Y76E"}, ingredientIDs)
}

// TestParserService_Parse_Deterministic tests that repeated parses with a
// fixed clock are identical.
func TestParserService_Parse_Deterministic(t *testing.T) {
	loader := &mockLoader{files: map[string]string{"in/label.xml": minimalLabelXML}}
	svc := NewParserService(loader)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	first, err := svc.Parse(context.Background(), "in/label.xml")
	require.NoError(t, err)
	second, err := svc.Parse(context.Background(), "in/label.xml")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestParserService_Parse_UnparsableXML tests the one fatal per-document
// condition.
func TestParserService_Parse_UnparsableXML(t *testing.T) {
	loader := &mockLoader{files: map[string]string{"in/broken.xml": "<document><unclosed"}}
	svc := NewParserService(loader)

	_, err := svc.Parse(context.Background(), "in/broken.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnparsableDocument)
}

// TestParserService_Parse_MissingFile tests loader errors propagate.
func TestParserService_Parse_MissingFile(t *testing.T) {
	svc := NewParserService(&mockLoader{files: map[string]string{}})

	_, err := svc.Parse(context.Background(), "in/absent.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
