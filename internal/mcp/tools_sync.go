package mcpserver

import (
	"context"
	"fmt"

	"rorkforge/internal/events"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSyncTools() {
	// ── apply_staging ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_staging",
		mcp.WithDescription("Point the preview's staging frame at a URL"),
		mcp.WithString("url", mcp.Description("Staging URL"), mcp.Required()),
	), s.handleApplyStaging)

	// ── navigate ───────────────────────────────────────
	pages := make([]string, len(events.PageKeys))
	for i, k := range events.PageKeys {
		pages[i] = string(k)
	}
	s.mcp.AddTool(mcp.NewTool("navigate",
		mcp.WithDescription("Switch the shell to a section"),
		mcp.WithString("page", mcp.Description("Section to show"), mcp.Required(), mcp.Enum(pages...)),
	), s.handleNavigate)

	// ── open_in_preview ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("open_in_preview",
		mcp.WithDescription("Stage the current design in the preview and switch to it"),
	), s.handleOpenInPreview)
}

func (s *Server) handleApplyStaging(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := requireString(req, "url")
	if err != nil {
		return nil, err
	}
	s.session.ApplyStaging(ctx, url)
	return textResult(fmt.Sprintf("Staging set to %s", url)), nil
}

func (s *Server) handleNavigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}
	key, err := s.session.Navigate(ctx, page)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Navigated to %s", key)), nil
}

func (s *Server) handleOpenInPreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := s.studio.OpenInPreview()
	return textResult(fmt.Sprintf("Preview opened at %s", target)), nil
}
