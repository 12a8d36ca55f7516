package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"rorkforge/internal/domain"
)

// Manifest is the structured export of a document. Field order is the
// serialization order and is part of the external contract.
type Manifest struct {
	App         App         `json:"app"`
	Pages       []Page      `json:"pages"`
	Deps        []string    `json:"deps"`
	Routes      []string    `json:"routes"`
	Constraints Constraints `json:"constraints"`
}

type App struct {
	Name  string       `json:"name"`
	Theme domain.Theme `json:"theme"`
}

// Page drops the editing-only node ids. Title is omitted when absent.
type Page struct {
	Path  string  `json:"path"`
	Title *string `json:"title,omitempty"`
	Tree  []Node  `json:"tree"`
}

// Node carries props as an interface so that absent props are omitted
// while an empty props object is still written as {}.
type Node struct {
	Type  domain.NodeType `json:"type"`
	Props any             `json:"props,omitempty"`
}

type Constraints struct {
	Framework string `json:"framework"`
	Style     string `json:"style"`
}

// Manifest projects doc into a Manifest. An empty name or a theme outside
// the enum is a caller error, since the manifest is a user-visible download.
func (e *Exporter) Manifest(doc domain.StudioDocument) (Manifest, error) {
	if err := doc.CheckMeta(); err != nil {
		return Manifest{}, fmt.Errorf("export manifest: %w", err)
	}
	doc = doc.Clone()

	m := Manifest{
		App:    App{Name: doc.Meta.Name, Theme: doc.Meta.Theme},
		Pages:  make([]Page, 0, len(doc.Pages)),
		Deps:   append([]string{}, e.opts.Deps...),
		Routes: make([]string, 0, len(doc.Pages)),
		Constraints: Constraints{
			Framework: e.opts.Framework,
			Style:     e.opts.Style,
		},
	}
	for _, p := range doc.Pages {
		mp := Page{Path: p.Path, Title: p.Title, Tree: make([]Node, 0, len(p.Tree))}
		for _, n := range p.Tree {
			mn := Node{Type: n.Type}
			if n.Props != nil {
				mn.Props = n.Props
			}
			mp.Tree = append(mp.Tree, mn)
		}
		m.Pages = append(m.Pages, mp)
		m.Routes = append(m.Routes, Route(p.Path, e.opts.Ext))
	}
	return m, nil
}

// Route maps a page path to the file the downstream build expects. The root
// path becomes pages/index.<ext>; every other path is appended verbatim,
// without any slash or segment normalization.
func Route(path, ext string) string {
	if path == "/" {
		return "pages/index." + ext
	}
	return "pages" + path + "." + ext
}

// Routes returns one route per page in document order.
func (e *Exporter) Routes(doc domain.StudioDocument) []string {
	routes := make([]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		routes = append(routes, Route(p.Path, e.opts.Ext))
	}
	return routes
}

// MarshalManifest renders m as UTF-8 JSON indented with two spaces, the
// form written to ManifestFilename. HTML characters are not escaped so that
// dynamic route segments and prop text stay readable.
func MarshalManifest(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ManifestJSON is Manifest followed by MarshalManifest.
func (e *Exporter) ManifestJSON(doc domain.StudioDocument) ([]byte, error) {
	m, err := e.Manifest(doc)
	if err != nil {
		return nil, err
	}
	return MarshalManifest(m)
}
