package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHistoryTools() {
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the document to the previous snapshot"),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Re-apply the most recently undone snapshot"),
	), s.handleRedo)

	s.mcp.AddTool(mcp.NewTool("list_history",
		mcp.WithDescription("List recorded snapshots, oldest first"),
	), s.handleListHistory)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.session.Undo(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Undone; document has %d page(s)", len(doc.Pages))), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.session.Redo(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Redone; document has %d page(s)", len(doc.Pages))), nil
}

type snapshotSummary struct {
	ID        string `json:"id"`
	ParentID  string `json:"parentId,omitempty"`
	Label     string `json:"label"`
	CreatedAt string `json:"createdAt"`
}

func (s *Server) handleListHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snaps, err := s.session.History()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]snapshotSummary, len(snaps))
	for i, snap := range snaps {
		out[i] = snapshotSummary{ID: snap.ID, Label: snap.Label, CreatedAt: snap.CreatedAt.Format(time.RFC3339)}
		if snap.ParentID != nil {
			out[i].ParentID = *snap.ParentID
		}
	}
	return jsonResult(out)
}
