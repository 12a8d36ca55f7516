package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"rorkforge/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	// ── get_document ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the current design document with any validation issues"),
	), s.handleGetDocument)

	// ── set_meta ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_meta",
		mcp.WithDescription("Rename the app and/or change its theme"),
		mcp.WithString("name", mcp.Description("App name (optional, keeps the current name if omitted)")),
		mcp.WithString("theme",
			mcp.Description("Theme (optional, keeps the current theme if omitted)"),
			mcp.Enum(string(domain.ThemeDark), string(domain.ThemeLight)),
		),
	), s.handleSetMeta)

	// ── add_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_page",
		mcp.WithDescription("Add a page, or replace the page that already has this path"),
		mcp.WithString("path", mcp.Description("Route path, e.g. / or /crm"), mcp.Required()),
		mcp.WithString("title", mcp.Description("Page title (optional)")),
	), s.handleAddPage)

	// ── remove_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_page",
		mcp.WithDescription("Remove the page with the given path"),
		mcp.WithString("path", mcp.Description("Route path"), mcp.Required()),
	), s.handleRemovePage)

	// ── add_node ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_node",
		mcp.WithDescription("Append a UI primitive to a page tree"),
		mcp.WithString("path", mcp.Description("Route path of the page"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Primitive type, e.g. Hero, List, Button"), mcp.Required()),
		mcp.WithString("title", mcp.Description("Shorthand for props.title (optional)")),
		mcp.WithString("propsJson", mcp.Description(`Props as a JSON object (optional), e.g. {"items":["a","b"]}`)),
	), s.handleAddNode)

	// ── remove_node ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_node",
		mcp.WithDescription("Remove a node from a page tree"),
		mcp.WithString("path", mcp.Description("Route path of the page"), mcp.Required()),
		mcp.WithString("id", mcp.Description("Node ID"), mcp.Required()),
	), s.handleRemoveNode)
}

type documentView struct {
	Document domain.StudioDocument `json:"document"`
	Issues   []domain.Issue        `json:"issues"`
}

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issues := s.session.Issues()
	if issues == nil {
		issues = []domain.Issue{}
	}
	return jsonResult(documentView{Document: s.session.Document(), Issues: issues})
}

func (s *Server) handleSetMeta(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	theme := req.GetString("theme", "")
	if name == "" && theme == "" {
		return nil, fmt.Errorf("name or theme is required")
	}
	doc, err := s.session.Edit(ctx, "set meta", func(d domain.StudioDocument) (domain.StudioDocument, error) {
		meta := d.Meta
		if name != "" {
			meta.Name = name
		}
		if theme != "" {
			meta.Theme = domain.Theme(theme)
		}
		return d.WithMeta(meta), nil
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(doc.Meta)
}

func (s *Server) handleAddPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(req, "path")
	if err != nil {
		return nil, err
	}
	page := domain.Page{Path: path}
	if title := req.GetString("title", ""); title != "" {
		page.Title = domain.Title(title)
	}
	if _, err := s.session.Edit(ctx, "add page "+path, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithPage(page), nil
	}); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Page %s saved", path)), nil
}

func (s *Server) handleRemovePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(req, "path")
	if err != nil {
		return nil, err
	}
	if _, err := s.session.Edit(ctx, "remove page "+path, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithoutPage(path)
	}); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Page %s removed", path)), nil
}

func (s *Server) handleAddNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(req, "path")
	if err != nil {
		return nil, err
	}
	nodeType, err := requireString(req, "type")
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if raw := req.GetString("propsJson", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			return nil, fmt.Errorf("propsJson must be a JSON object: %w", err)
		}
	}
	if title := req.GetString("title", ""); title != "" {
		if props == nil {
			props = map[string]any{}
		}
		props["title"] = title
	}

	var added domain.Node
	if _, err := s.session.Edit(ctx, "add node", func(d domain.StudioDocument) (domain.StudioDocument, error) {
		next, n, err := d.WithNode(path, domain.Node{Type: domain.NodeType(nodeType), Props: props})
		added = n
		return next, err
	}); err != nil {
		return nil, err
	}
	return jsonResult(added)
}

func (s *Server) handleRemoveNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(req, "path")
	if err != nil {
		return nil, err
	}
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	if _, err := s.session.Edit(ctx, "remove node "+id, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithoutNode(path, id)
	}); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Node %s removed from %s", id, path)), nil
}
