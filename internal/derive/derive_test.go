package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func docWith(setID, docID *string, products []domain.Product) *domain.SPLDocument {
	return &domain.SPLDocument{
		SPL: domain.SPLMetadata{
			DocumentID: domain.DocumentID{Root: docID},
			SetID:      domain.DocumentID{Root: setID},
		},
		Products: products,
	}
}

// TestMergeKeys_Ordering tests the fixed key order: set id first, then
// product NDCs in document order.
func TestMergeKeys_Ordering(t *testing.T) {
	doc := docWith(strPtr("S1"), strPtr("D1"), []domain.Product{
		{NDC: domain.NDCInfo{ProductNDCs: []string{"12345-678", "12345-679"}}},
	})

	keys := MergeKeys(doc)

	assert.Equal(t, []string{"set_id:S1", "ndc:12345-678", "ndc:12345-679"}, keys.Primary)
	assert.Equal(t, []string{"doc_id:D1"}, keys.Secondary)
}

// TestMergeKeys_UNIIDeduped tests that repeated UNIIs across products
// yield one secondary key, while repeated NDCs are kept as-is.
func TestMergeKeys_UNIIDeduped(t *testing.T) {
	unii := strPtr("R16CO5Y76E")
	doc := docWith(nil, strPtr("D1"), []domain.Product{
		{
			NDC:         domain.NDCInfo{ProductNDCs: []string{"11111-222"}},
			Ingredients: []domain.Ingredient{{UNII: unii}, {UNII: strPtr("OTHER")}},
		},
		{
			NDC:         domain.NDCInfo{ProductNDCs: []string{"11111-222"}},
			Ingredients: []domain.Ingredient{{UNII: unii}, {}},
		},
	})

	keys := MergeKeys(doc)

	assert.Equal(t, []string{"ndc:11111-222", "ndc:11111-222"}, keys.Primary)
	assert.Equal(t, []string{"doc_id:D1", "unii:R16CO5Y76E", "unii:OTHER"}, keys.Secondary)
}

// TestMergeKeys_Empty tests that a bare document yields empty, non-nil
// key slices.
func TestMergeKeys_Empty(t *testing.T) {
	keys := MergeKeys(docWith(nil, nil, nil))

	require.NotNil(t, keys.Primary)
	require.NotNil(t, keys.Secondary)
	assert.Empty(t, keys.Primary)
	assert.Empty(t, keys.Secondary)
}

// TestPresenceFlags_CodeMatch tests flag detection by section code alone.
func TestPresenceFlags_CodeMatch(t *testing.T) {
	flags := PresenceFlags([]domain.Section{
		{Code: strPtr("34066-1")}, // boxed warning
		{Code: strPtr("34067-9")}, // indications
		{Code: strPtr("34068-7")}, // dosage
		{Code: strPtr("34084-4")}, // adverse reactions
		{Code: strPtr("34073-7")}, // drug interactions
	})

	assert.True(t, flags.BoxedWarning)
	assert.True(t, flags.IndicationsAndUsage)
	assert.True(t, flags.DosageAndAdministration)
	assert.True(t, flags.AdverseReactions)
	assert.True(t, flags.DrugInteractions)
	assert.False(t, flags.Contraindications)
	assert.False(t, flags.WarningsAndPrecautions)
	assert.False(t, flags.StorageAndHandling)
}

// TestPresenceFlags_TitleFallback tests keyword fallback on upper-cased
// titles for the five categories that have one.
func TestPresenceFlags_TitleFallback(t *testing.T) {
	flags := PresenceFlags([]domain.Section{
		{Title: strPtr("Boxed Warning")},
		{Title: strPtr("Indications for use")},
		{Title: strPtr("contraindications")},
		{Title: strPtr("General precautions")},
		{Title: strPtr("Storage conditions")},
	})

	assert.True(t, flags.BoxedWarning)
	assert.True(t, flags.IndicationsAndUsage)
	assert.True(t, flags.Contraindications)
	assert.True(t, flags.WarningsAndPrecautions)
	assert.True(t, flags.StorageAndHandling)
}

// TestPresenceFlags_CodeOnlyCategories tests that dosage, adverse
// reactions and interactions never match on title keywords.
func TestPresenceFlags_CodeOnlyCategories(t *testing.T) {
	flags := PresenceFlags([]domain.Section{
		{Title: strPtr("DOSAGE AND ADMINISTRATION")},
		{Title: strPtr("ADVERSE REACTIONS")},
		{Title: strPtr("DRUG INTERACTIONS")},
	})

	assert.False(t, flags.DosageAndAdministration)
	assert.False(t, flags.AdverseReactions)
	assert.False(t, flags.DrugInteractions)
}

// TestPresenceFlags_Empty tests the all-false zero case.
func TestPresenceFlags_Empty(t *testing.T) {
	flags := PresenceFlags(nil)
	assert.Equal(t, domain.SectionPresenceFlags{}, flags)
}

// TestBuild tests that Build assembles both halves of the derived block.
func TestBuild(t *testing.T) {
	doc := docWith(strPtr("S1"), nil, []domain.Product{
		{NDC: domain.NDCInfo{ProductNDCs: []string{"12345-678"}}},
	})
	doc.Sections = []domain.Section{{Code: strPtr("34067-9")}}

	derived := Build(doc)

	assert.Equal(t, []string{"set_id:S1", "ndc:12345-678"}, derived.MergeKeys.Primary)
	assert.True(t, derived.SectionPresenceFlags.IndicationsAndUsage)
}
