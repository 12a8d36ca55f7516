package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"rorkforge/internal/domain"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
	"rorkforge/internal/service"
	"rorkforge/internal/storage"
	"rorkforge/internal/surface"
)

type fixture struct {
	srv     *Server
	session *service.Session
	bus     *events.Bus
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := storage.New()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bus := events.NewBus()
	exporter := export.New(export.DefaultOptions())
	session := service.NewSession(storage.NewHistoryStore(db, 0), exporter, bus)
	if err := session.Start(context.Background(), domain.Seed()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	studio := surface.NewStudio(session.Document, exporter, bus, "https://vercel-preview.example/")
	return fixture{srv: New(Deps{Session: session, Studio: studio}), session: session, bus: bus}
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return text.Text
}

func TestGetDocument(t *testing.T) {
	f := newFixture(t)
	res, err := f.srv.handleGetDocument(context.Background(), call(nil))
	if err != nil {
		t.Fatalf("get_document: %v", err)
	}
	var view documentView
	if err := json.Unmarshal([]byte(resultText(t, res)), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Document.Meta.Name != "Demo App" || len(view.Issues) != 0 {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestEditTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.srv.handleSetMeta(ctx, call(map[string]any{"name": "CRM Portal"})); err != nil {
		t.Fatalf("set_meta: %v", err)
	}
	if _, err := f.srv.handleAddPage(ctx, call(map[string]any{"path": "/crm", "title": "CRM"})); err != nil {
		t.Fatalf("add_page: %v", err)
	}
	res, err := f.srv.handleAddNode(ctx, call(map[string]any{
		"path":      "/crm",
		"type":      "List",
		"title":     "Leads",
		"propsJson": `{"items":["a"]}`,
	}))
	if err != nil {
		t.Fatalf("add_node: %v", err)
	}
	var node domain.Node
	if err := json.Unmarshal([]byte(resultText(t, res)), &node); err != nil {
		t.Fatalf("decode node: %v", err)
	}
	if !strings.HasPrefix(node.ID, "list-") {
		t.Errorf("unexpected node id %q", node.ID)
	}

	doc := f.session.Document()
	if doc.Meta.Name != "CRM Portal" || doc.Meta.Theme != domain.ThemeDark {
		t.Errorf("unexpected meta %+v", doc.Meta)
	}
	page, ok := doc.PageByPath("/crm")
	if !ok {
		t.Fatal("expected /crm page")
	}
	want := map[string]any{"items": []any{"a"}, "title": "Leads"}
	if diff := cmp.Diff(want, page.Tree[0].Props); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.srv.handleRemoveNode(ctx, call(map[string]any{"path": "/crm", "id": node.ID})); err != nil {
		t.Fatalf("remove_node: %v", err)
	}
	if _, err := f.srv.handleRemovePage(ctx, call(map[string]any{"path": "/crm"})); err != nil {
		t.Fatalf("remove_page: %v", err)
	}
	if len(f.session.Document().Pages) != 1 {
		t.Error("expected only the seed page")
	}
}

func TestEditToolErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args map[string]any
		want error
	}{
		{"set_meta bad theme", f.srv.handleSetMeta, map[string]any{"theme": "sepia"}, domain.ErrInvalidTheme},
		{"remove missing page", f.srv.handleRemovePage, map[string]any{"path": "/nope"}, domain.ErrPageNotFound},
		{"add node to missing page", f.srv.handleAddNode, map[string]any{"path": "/nope", "type": "Card"}, domain.ErrPageNotFound},
		{"remove missing node", f.srv.handleRemoveNode, map[string]any{"path": "/", "id": "ghost"}, domain.ErrNodeNotFound},
		{"navigate unknown", f.srv.handleNavigate, map[string]any{"page": "lobby"}, events.ErrUnknownPageKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(ctx, call(tt.args)); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := f.srv.handleAddPage(ctx, call(nil)); err == nil {
		t.Error("add_page without path should fail")
	}
	if _, err := f.srv.handleAddNode(ctx, call(map[string]any{"path": "/", "type": "Card", "propsJson": "[1]"})); err == nil {
		t.Error("non-object propsJson should fail")
	}
	if _, err := f.srv.handleSetMeta(ctx, call(nil)); err == nil {
		t.Error("set_meta without arguments should fail")
	}
}

func TestExportTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.srv.handleExportTextSpec(ctx, call(nil))
	if err != nil {
		t.Fatalf("export_text_spec: %v", err)
	}
	if got := resultText(t, res); !strings.HasPrefix(got, "App: \"Demo App\"\n") {
		t.Errorf("unexpected text spec:\n%s", got)
	}

	res, err = f.srv.handleExportManifest(ctx, call(nil))
	if err != nil {
		t.Fatalf("export_manifest: %v", err)
	}
	var m export.Manifest
	if err := json.Unmarshal([]byte(resultText(t, res)), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if diff := cmp.Diff([]string{"pages/index.tsx"}, m.Routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	preview := surface.NewPreview("https://main.example", "")
	defer preview.Mount(f.bus)()
	shell := surface.NewShell(events.PageVision)
	defer shell.Mount(f.bus)()

	if _, err := f.srv.handleApplyStaging(ctx, call(map[string]any{"url": "https://pr-7.example"})); err != nil {
		t.Fatalf("apply_staging: %v", err)
	}
	if _, err := f.srv.handleNavigate(ctx, call(map[string]any{"page": "studio"})); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if preview.StagingURL() != "https://pr-7.example" || shell.Active() != events.PageStudio {
		t.Errorf("staging=%q active=%q", preview.StagingURL(), shell.Active())
	}

	if _, err := f.srv.handleOpenInPreview(ctx, call(nil)); err != nil {
		t.Fatalf("open_in_preview: %v", err)
	}
	if preview.StagingURL() != "https://vercel-preview.example/demo-app" || shell.Active() != events.PagePreview {
		t.Errorf("staging=%q active=%q", preview.StagingURL(), shell.Active())
	}
}

func TestHistoryTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.srv.handleUndo(ctx, call(nil)); !errors.Is(err, storage.ErrNoHistory) {
		t.Errorf("expected ErrNoHistory, got %v", err)
	}
	f.srv.handleAddPage(ctx, call(map[string]any{"path": "/about"}))

	if _, err := f.srv.handleUndo(ctx, call(nil)); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, ok := f.session.Document().PageByPath("/about"); ok {
		t.Error("undo kept /about")
	}
	if _, err := f.srv.handleRedo(ctx, call(nil)); err != nil {
		t.Fatalf("redo: %v", err)
	}

	res, err := f.srv.handleListHistory(ctx, call(nil))
	if err != nil {
		t.Fatalf("list_history: %v", err)
	}
	var snaps []snapshotSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &snaps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	labels := make([]string, len(snaps))
	for i, s := range snaps {
		labels[i] = s.Label
	}
	if diff := cmp.Diff([]string{"seed", "add page /about"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		fn   func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)
		uri  string
		mime string
	}{
		{f.srv.handleDocumentResource, documentURI, "application/json"},
		{f.srv.handleManifestResource, manifestURI, "application/json"},
		{f.srv.handleTextSpecResource, textSpecURI, "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			contents, err := tt.fn(ctx, mcp.ReadResourceRequest{})
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			text, ok := contents[0].(mcp.TextResourceContents)
			if !ok || text.URI != tt.uri || text.MIMEType != tt.mime || text.Text == "" {
				t.Errorf("unexpected contents %+v", contents[0])
			}
		})
	}
}
