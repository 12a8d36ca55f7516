package domain

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the two supported themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type Meta struct {
	Name  string `json:"name" yaml:"name"`
	Theme Theme  `json:"theme" yaml:"theme"`
}

// StudioDocument is one app design: metadata plus an ordered list of pages.
// Page order defines manifest route order.
type StudioDocument struct {
	Meta  Meta   `json:"meta" yaml:"meta"`
	Pages []Page `json:"pages" yaml:"pages"`
}

// Page is a routable screen. Title is a pointer so that an absent title
// can be told apart from an empty one.
type Page struct {
	Path  string  `json:"path" yaml:"path"`
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`
	Tree  []Node  `json:"tree" yaml:"tree"`
}

// Snapshot is a stored revision of a document in the session history.
type Snapshot struct {
	ID        string         `json:"id"`
	ParentID  *string        `json:"parentId"`
	Label     string         `json:"label"`
	Document  StudioDocument `json:"document"`
	CreatedAt time.Time      `json:"createdAt"`
}

type SnapshotStore interface {
	Push(label string, doc StudioDocument) (*Snapshot, error)
	Current() (*Snapshot, error)
	Get(id string) (*Snapshot, error)
	List() ([]Snapshot, error)
	GoTo(id string) error
	Clear() error
}

// Seed returns the document every editing session starts from.
func Seed() StudioDocument {
	return StudioDocument{
		Meta: Meta{Name: "Demo App", Theme: ThemeDark},
		Pages: []Page{
			{
				Path:  "/",
				Title: Title("Home"),
				Tree: []Node{
					{ID: "hero1", Type: NodeTypeHero, Props: map[string]any{"title": "Welcome", "subtitle": "Build faster"}},
					{ID: "list1", Type: NodeTypeList, Props: map[string]any{"items": []any{"Item 1", "Item 2", "Item 3"}}},
				},
			},
		},
	}
}

// Title returns a pointer to s, for building pages with a title.
func Title(s string) *string {
	return &s
}

// TitleOr returns the page title, or fallback when the title is absent.
func (p Page) TitleOr(fallback string) string {
	if p.Title == nil {
		return fallback
	}
	return *p.Title
}

// PageByPath returns the first page with the given path.
func (d StudioDocument) PageByPath(path string) (Page, bool) {
	for _, p := range d.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// NodeByID returns the first node in the page tree with the given id.
func (p Page) NodeByID(id string) (Node, bool) {
	for _, n := range p.Tree {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Clone returns a deep copy of d. Props values that are maps or slices are
// copied recursively so the clone never aliases the original.
func (d StudioDocument) Clone() StudioDocument {
	out := StudioDocument{Meta: d.Meta}
	if d.Pages == nil {
		return out
	}
	out.Pages = make([]Page, len(d.Pages))
	for i, p := range d.Pages {
		out.Pages[i] = p.clone()
	}
	return out
}

func (p Page) clone() Page {
	out := Page{Path: p.Path}
	if p.Title != nil {
		out.Title = Title(*p.Title)
	}
	if p.Tree != nil {
		out.Tree = make([]Node, len(p.Tree))
		for i, n := range p.Tree {
			out.Tree[i] = n.clone()
		}
	}
	return out
}
