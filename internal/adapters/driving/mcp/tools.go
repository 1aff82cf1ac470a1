package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// ParseLabelInput is the input schema for the parse_label tool.
type ParseLabelInput struct {
	Path    string `json:"path" jsonschema:"path to the SPL XML file to parse"`
	Catalog bool   `json:"catalog,omitempty" jsonschema:"store the parsed label in the local catalog"`
}

// ParseLabelOutput is the output schema for the parse_label tool.
type ParseLabelOutput struct {
	SetID        string   `json:"set_id"`
	DocumentType string   `json:"document_type"`
	Title        string   `json:"title,omitempty"`
	Products     []string `json:"products"`
	SectionCount int      `json:"section_count"`
	EntityCount  int      `json:"entity_count"`
	EdgeCount    int      `json:"edge_count"`
	MergeKeys    []string `json:"merge_keys"`
	Document     any      `json:"document"`
}

// ListLabelsOutput is the output schema for the list_labels tool.
type ListLabelsOutput struct {
	Labels []LabelSummary `json:"labels"`
	Count  int            `json:"count"`
}

// LabelSummary is one catalog entry in list_labels output.
type LabelSummary struct {
	SetID         string `json:"set_id"`
	DocumentID    string `json:"document_id,omitempty"`
	Version       *int   `json:"version"`
	Title         string `json:"title,omitempty"`
	DocumentType  string `json:"document_type"`
	InputFilename string `json:"input_filename"`
	ParsedAt      string `json:"parsed_at"`
	ProductCount  int    `json:"product_count"`
	SectionCount  int    `json:"section_count"`
}

// GetLabelInput is the input schema for the get_label tool.
type GetLabelInput struct {
	SetID string `json:"set_id" jsonschema:"set id of the cataloged label"`
	Graph bool   `json:"graph,omitempty" jsonschema:"return the knowledge-graph fragment instead of the document"`
}

// GetLabelOutput is the output schema for the get_label tool.
type GetLabelOutput struct {
	SetID string `json:"set_id"`
	Label any    `json:"label"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_label",
		Description: "Parse an FDA SPL XML file into normalized records and a knowledge-graph fragment",
	}, s.handleParseLabel)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_labels",
		Description: "List labels stored in the local catalog",
	}, s.handleListLabels)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_label",
		Description: "Fetch a cataloged label (or its graph fragment) by set id",
	}, s.handleGetLabel)
}

// handleParseLabel handles the parse_label tool invocation.
func (s *Server) handleParseLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseLabelInput,
) (*mcp.CallToolResult, ParseLabelOutput, error) {
	result, err := s.ports.Parser.Parse(ctx, input.Path)
	if err != nil {
		return nil, ParseLabelOutput{}, err
	}

	doc := result.Document

	if input.Catalog && s.ports.Labels != nil {
		if err := s.ports.Labels.SaveLabel(ctx, &doc, &result.Graph); err != nil {
			return nil, ParseLabelOutput{}, fmt.Errorf("cataloging label: %w", err)
		}
	}

	output := ParseLabelOutput{
		DocumentType: doc.SPL.DocumentType,
		Products:     []string{},
		SectionCount: len(doc.Sections),
		EntityCount:  len(result.Graph.Entities),
		EdgeCount:    len(result.Graph.Edges),
		MergeKeys:    doc.Derived.MergeKeys.Primary,
		Document:     doc,
	}
	if doc.SPL.SetID.Root != nil {
		output.SetID = *doc.SPL.SetID.Root
	}
	if doc.SPL.Title != nil {
		output.Title = *doc.SPL.Title
	}
	for _, p := range doc.Products {
		if p.ProductName != nil {
			output.Products = append(output.Products, *p.ProductName)
		}
	}

	return nil, output, nil
}

// handleListLabels handles the list_labels tool invocation.
func (s *Server) handleListLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListLabelsOutput, error) {
	output := ListLabelsOutput{Labels: []LabelSummary{}}

	if s.ports.Labels == nil {
		return nil, output, nil
	}

	entries, err := s.ports.Labels.ListLabels(ctx)
	if err != nil {
		return nil, ListLabelsOutput{}, err
	}

	for _, e := range entries {
		summary := LabelSummary{
			SetID:         e.SetID,
			DocumentID:    e.DocumentID,
			Version:       e.Version,
			DocumentType:  e.DocumentType,
			InputFilename: e.InputFilename,
			ParsedAt:      e.ParsedAt,
			ProductCount:  e.ProductCount,
			SectionCount:  e.SectionCount,
		}
		if e.Title != nil {
			summary.Title = *e.Title
		}
		output.Labels = append(output.Labels, summary)
	}
	output.Count = len(output.Labels)

	return nil, output, nil
}

// handleGetLabel handles the get_label tool invocation.
func (s *Server) handleGetLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetLabelInput,
) (*mcp.CallToolResult, GetLabelOutput, error) {
	if s.ports.Labels == nil {
		return nil, GetLabelOutput{}, domain.ErrNotFound
	}

	output := GetLabelOutput{SetID: input.SetID}

	if input.Graph {
		graph, err := s.ports.Labels.GetGraph(ctx, input.SetID)
		if err != nil {
			return nil, GetLabelOutput{}, err
		}
		output.Label = graph
		return nil, output, nil
	}

	doc, err := s.ports.Labels.GetLabel(ctx, input.SetID)
	if err != nil {
		return nil, GetLabelOutput{}, err
	}
	output.Label = doc
	return nil, output, nil
}
