package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// The With*/Without* methods never modify the receiver. Each returns a new
// snapshot built from a deep copy.

// WithMeta returns a copy of d with its metadata replaced.
func (d StudioDocument) WithMeta(m Meta) StudioDocument {
	out := d.Clone()
	out.Meta = m
	return out
}

// WithPage replaces the first page sharing p's path, or appends p.
func (d StudioDocument) WithPage(p Page) StudioDocument {
	out := d.Clone()
	p = p.clone()
	for i := range out.Pages {
		if out.Pages[i].Path == p.Path {
			out.Pages[i] = p
			return out
		}
	}
	out.Pages = append(out.Pages, p)
	return out
}

// WithoutPage removes every page with the given path.
func (d StudioDocument) WithoutPage(path string) (StudioDocument, error) {
	if _, ok := d.PageByPath(path); !ok {
		return d, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	out := d.Clone()
	pages := out.Pages[:0]
	for _, p := range out.Pages {
		if p.Path != path {
			pages = append(pages, p)
		}
	}
	out.Pages = pages
	return out, nil
}

// WithNode appends n to the tree of the page at path. A node without an id
// gets a fresh one. The returned Node carries the id that was used.
func (d StudioDocument) WithNode(path string, n Node) (StudioDocument, Node, error) {
	if _, ok := d.PageByPath(path); !ok {
		return d, Node{}, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	n = n.clone()
	if n.ID == "" {
		n.ID = NewNodeID(n.Type)
	}
	out := d.Clone()
	for i := range out.Pages {
		if out.Pages[i].Path == path {
			out.Pages[i].Tree = append(out.Pages[i].Tree, n)
			break
		}
	}
	return out, n, nil
}

// WithoutNode removes the node with the given id from the page at path.
func (d StudioDocument) WithoutNode(path, id string) (StudioDocument, error) {
	page, ok := d.PageByPath(path)
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	if _, ok := page.NodeByID(id); !ok {
		return d, fmt.Errorf("%w: %s on %s", ErrNodeNotFound, id, path)
	}
	out := d.Clone()
	for i := range out.Pages {
		if out.Pages[i].Path != path {
			continue
		}
		tree := out.Pages[i].Tree[:0]
		for _, n := range out.Pages[i].Tree {
			if n.ID != id {
				tree = append(tree, n)
			}
		}
		out.Pages[i].Tree = tree
		break
	}
	return out, nil
}

// NewNodeID returns an editing handle for a new node, e.g. "hero-1a2b3c4d".
func NewNodeID(t NodeType) string {
	prefix := "node"
	if t != "" {
		prefix = string(t)
	}
	return fmt.Sprintf("%s-%s", strings.ToLower(prefix), uuid.New().String()[:8])
}
