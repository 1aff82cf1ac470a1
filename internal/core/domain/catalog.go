package domain

// CatalogEntry is the summary row for one cataloged label. The full
// document and graph live alongside it in the catalog store; the entry
// carries only what listings need.
type CatalogEntry struct {
	// SetID identifies the label lineage across versions. It is the
	// catalog's primary key; labels without a set id fall back to the
	// document id.
	SetID string

	// DocumentID identifies this specific label version.
	DocumentID string

	// Version is the label version number, when the document declared one.
	Version *int

	// Title is the document title, when present.
	Title *string

	// DocumentType is one of the document-type classifications
	// (prescription, otc, other, unknown).
	DocumentType string

	// InputFilename is the source file the label was parsed from.
	InputFilename string

	// ParsedAt is the RFC 3339 parse timestamp.
	ParsedAt string

	// ProductCount and SectionCount summarize the label's contents.
	ProductCount int
	SectionCount int
}
