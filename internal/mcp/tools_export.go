package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerExportTools() {
	s.mcp.AddTool(mcp.NewTool("export_text_spec",
		mcp.WithDescription("Render the current document as a plain-text spec for an AI code generator"),
	), s.handleExportTextSpec)

	s.mcp.AddTool(mcp.NewTool("export_manifest",
		mcp.WithDescription("Render the current document as the rorkforge.manifest.json build manifest"),
	), s.handleExportManifest)
}

func (s *Server) handleExportTextSpec(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.studio.ExportText()), nil
}

func (s *Server) handleExportManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.studio.ExportManifest()
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}
