package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("scaffold_app",
		mcp.WithPromptDescription("Guide through laying out a multi-page app and handing it to the preview"),
		mcp.WithArgument("appName",
			mcp.ArgumentDescription("Name of the app"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("pages",
			mcp.ArgumentDescription("Comma-separated route paths, e.g. /,/crm,/settings"),
			mcp.RequiredArgument(),
		),
	), s.handleScaffoldPrompt)
}

func (s *Server) handleScaffoldPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	appName := req.Params.Arguments["appName"]
	pages := req.Params.Arguments["pages"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Scaffold %s", appName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Lay out an app called "%s" with the pages %s. Follow these steps:

1. Use set_meta to set the name to "%s" and pick a theme.
2. Use add_page for each path, giving every page a short title.
3. Use add_node to give each page a Navbar first, then the primitives it needs (Hero, List, Form, Card, Button, Text, Image, Tabs).
4. Call get_document and fix every issue it reports.
5. Call export_text_spec and export_manifest to check the result.
6. Finish with open_in_preview.`, appName, pages, appName),
				},
			},
		},
	}, nil
}
