package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	documentURI = "rorkforge://document"
	manifestURI = "rorkforge://manifest"
	textSpecURI = "rorkforge://text-spec"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		documentURI,
		"Design Document",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentResource)

	s.mcp.AddResource(mcp.NewResource(
		manifestURI,
		"Build Manifest",
		mcp.WithMIMEType("application/json"),
	), s.handleManifestResource)

	s.mcp.AddResource(mcp.NewResource(
		textSpecURI,
		"Text Spec",
		mcp.WithMIMEType("text/plain"),
	), s.handleTextSpecResource)
}

func (s *Server) handleDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.session.Document(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      documentURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// Resources read the session directly; only the export tools update what
// the studio displays.
func (s *Server) handleManifestResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := s.session.ManifestJSON()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      manifestURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleTextSpecResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      textSpecURI,
			MIMEType: "text/plain",
			Text:     s.session.TextSpec(),
		},
	}, nil
}
