package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rorkforge/internal/domain"
)

const demoJSON = `{
  "meta": {"name": "Demo App", "theme": "dark"},
  "pages": [
    {"path": "/", "title": "Home", "tree": [
      {"id": "hero1", "type": "Hero", "props": {"title": "Welcome"}},
      {"id": "list1", "type": "List", "props": {"items": ["Item 1", "Item 2"]}}
    ]},
    {"path": "/about", "tree": []}
  ]
}`

const demoYAML = `
meta:
  name: Demo App
  theme: dark
pages:
  - path: /
    title: Home
    tree:
      - id: hero1
        type: Hero
        props:
          title: Welcome
      - id: list1
        type: List
        props:
          items: [Item 1, Item 2]
  - path: /about
    tree: []
`

func TestDecode_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := domain.Decode([]byte(demoJSON), domain.FormatJSON)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	fromYAML, err := domain.Decode([]byte(demoYAML), domain.FormatYAML)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("json and yaml documents differ (-json +yaml):\n%s", diff)
	}
	about, _ := fromJSON.PageByPath("/about")
	if about.Title != nil {
		t.Errorf("expected absent title, got %q", *about.Title)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := domain.Decode([]byte("{"), domain.FormatJSON); err == nil {
		t.Error("expected json error")
	}
	if _, err := domain.Decode([]byte("meta: [\n"), domain.FormatYAML); err == nil {
		t.Error("expected yaml error")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]domain.Format{
		"doc.json": domain.FormatJSON,
		"doc.yaml": domain.FormatYAML,
		"doc.YML":  domain.FormatYAML,
		"doc":      domain.FormatJSON,
	}
	for path, want := range tests {
		if got := domain.FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
