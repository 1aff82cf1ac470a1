// Package domain defines the core business entities for splgraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SPLDocument: One normalized drug label with its source provenance
//   - Product / Ingredient / Package: The label's physical records
//   - Section: A labeling narrative section
//   - KnowledgeGraph: The entity/edge fragment derived from one label
//   - BatchRun / CatalogEntry: Batch processing state and the label catalog
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
