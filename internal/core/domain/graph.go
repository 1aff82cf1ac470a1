package domain

// KGEntity is one node in a derived knowledge-graph fragment. EntityID is
// deterministic: re-running extraction on the same document yields the
// same id, so fragments can be merged idempotently.
type KGEntity struct {
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Properties map[string]any `json:"properties"`
}

// KGEdge is one typed relationship between two entities.
type KGEdge struct {
	EdgeType   string         `json:"edge_type"`
	SourceID   string         `json:"source_id"`
	TargetID   string         `json:"target_id"`
	Properties map[string]any `json:"properties"`
}

// KnowledgeGraph is the fragment derived from a single document, suitable
// for merging into a larger graph by an external aggregator.
type KnowledgeGraph struct {
	Entities []KGEntity `json:"entities"`
	Edges    []KGEdge   `json:"edges"`
}

// Entity types emitted by the synthesizer.
const (
	EntityLabelVersion = "label_version"
	EntityOrganization = "organization"
	EntityProduct      = "product"
	EntityPackage      = "package"
	EntityIngredient   = "ingredient"
	EntitySection      = "section"
)

// Edge types emitted by the synthesizer.
const (
	EdgeHasLabelVersion = "HAS_LABEL_VERSION"
	EdgeHasProduct      = "HAS_PRODUCT"
	EdgeHasPackage      = "HAS_PACKAGE"
	EdgeHasIngredient   = "HAS_INGREDIENT"
	EdgeHasSection      = "HAS_SECTION"
	EdgeLabeledBy       = "LABELED_BY"
)
