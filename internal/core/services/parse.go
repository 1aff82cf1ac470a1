package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/splgraph-cli/internal/derive"
	"github.com/custodia-labs/splgraph-cli/internal/extract"
	"github.com/custodia-labs/splgraph-cli/internal/kg"
	"github.com/custodia-labs/splgraph-cli/internal/logger"
	"github.com/custodia-labs/splgraph-cli/internal/xmltree"
)

// Ensure ParserService implements the interface.
var _ driving.LabelParser = (*ParserService)(nil)

// ParserService runs the load-extract-derive-synthesize pipeline for one
// label at a time.
type ParserService struct {
	loader driven.DocumentLoader

	// now stamps the source block. Overridable for deterministic tests.
	now func() time.Time
}

// NewParserService creates a parser service.
func NewParserService(loader driven.DocumentLoader) *ParserService {
	return &ParserService{
		loader: loader,
		now:    time.Now,
	}
}

// Parse converts one SPL XML file into its document and graph fragment.
func (s *ParserService) Parse(ctx context.Context, path string) (*driving.ParseResult, error) {
	logger.Debug("Parsing %s", path)

	reader, err := s.loader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer reader.Close()

	root, err := xmltree.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrUnparsableDocument, path, err)
	}

	doc := extract.New(root, filepath.Base(path)).Document(s.now())
	doc.Derived = derive.Build(&doc)

	result := &driving.ParseResult{
		Document: doc,
		Graph:    kg.Synthesize(&doc),
	}

	logger.Info("Parsed %s: %d products, %d sections, %d entities",
		filepath.Base(path), len(doc.Products), len(doc.Sections), len(result.Graph.Entities))

	return result, nil
}
