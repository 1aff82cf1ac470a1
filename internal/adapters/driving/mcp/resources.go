package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for splgraph resources.
	uriScheme = "splgraph://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the catalog listing.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "labels",
		Name:        "labels",
		Description: "List of all cataloged SPL labels",
		MIMEType:    "application/json",
	}, s.handleLabelsResource)

	// Template for a label's full document.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "labels/{setId}",
		Name:        "label-document",
		Description: "Normalized records of a cataloged label",
		MIMEType:    "application/json",
	}, s.handleLabelResource)

	// Template for a label's graph fragment.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "labels/{setId}/graph",
		Name:        "label-graph",
		Description: "Knowledge-graph fragment of a cataloged label",
		MIMEType:    "application/json",
	}, s.handleLabelGraphResource)
}

// handleLabelsResource returns the catalog listing.
func (s *Server) handleLabelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Labels == nil {
		return jsonResource(req.Params.URI, []byte("[]")), nil
	}

	entries, err := s.ports.Labels.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling labels: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// handleLabelResource returns one label's full document.
func (s *Server) handleLabelResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	setID, wantGraph := extractSetID(req.Params.URI)
	if s.ports.Labels == nil || setID == "" || wantGraph {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Labels.GetLabel(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("getting label: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling label: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// handleLabelGraphResource returns one label's graph fragment.
func (s *Server) handleLabelGraphResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	setID, wantGraph := extractSetID(req.Params.URI)
	if s.ports.Labels == nil || setID == "" || !wantGraph {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	graph, err := s.ports.Labels.GetGraph(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("getting graph: %w", err)
	}

	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling graph: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractSetID parses a URI like splgraph://labels/{setId}[/graph] into
// the set id and whether the graph variant was addressed.
func extractSetID(uri string) (setID string, graph bool) {
	const prefix = uriScheme + "labels/"
	const suffix = "/graph"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, prefix)

	if strings.HasSuffix(rest, suffix) {
		return strings.TrimSuffix(rest, suffix), true
	}
	return rest, false
}
