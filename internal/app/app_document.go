package app

import (
	"rorkforge/internal/domain"
)

// ============================================================
// Document editing
// ============================================================

func (a *App) GetDocument() DocumentView {
	issues := a.session.Issues()
	if issues == nil {
		issues = []domain.Issue{}
	}
	return DocumentView{Document: a.session.Document(), Issues: issues}
}

// Palette lists the primitives offered for drag and drop.
func (a *App) Palette() []domain.NodeType {
	return domain.Palette
}

func (a *App) SetMeta(name, theme string) (domain.StudioDocument, error) {
	return a.session.Edit(a.ctx, "set meta", func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithMeta(domain.Meta{Name: name, Theme: domain.Theme(theme)}), nil
	})
}

func (a *App) AddPage(path, title string) (domain.StudioDocument, error) {
	page := domain.Page{Path: path}
	if title != "" {
		page.Title = domain.Title(title)
	}
	return a.session.Edit(a.ctx, "add page "+path, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithPage(page), nil
	})
}

func (a *App) RemovePage(path string) (domain.StudioDocument, error) {
	return a.session.Edit(a.ctx, "remove page "+path, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithoutPage(path)
	})
}

// AddNode appends a primitive and returns it with its assigned id.
func (a *App) AddNode(input AddNodeInput) (domain.Node, error) {
	var added domain.Node
	_, err := a.session.Edit(a.ctx, "add node", func(d domain.StudioDocument) (domain.StudioDocument, error) {
		next, n, err := d.WithNode(input.Path, domain.Node{Type: domain.NodeType(input.Type), Props: input.Props})
		added = n
		return next, err
	})
	if err != nil {
		return domain.Node{}, err
	}
	return added, nil
}

func (a *App) RemoveNode(path, id string) (domain.StudioDocument, error) {
	return a.session.Edit(a.ctx, "remove node "+id, func(d domain.StudioDocument) (domain.StudioDocument, error) {
		return d.WithoutNode(path, id)
	})
}

// ── Undo / Redo ────────────────────────────────────────────

func (a *App) Undo() (domain.StudioDocument, error) {
	return a.session.Undo(a.ctx)
}

func (a *App) Redo() (domain.StudioDocument, error) {
	return a.session.Redo(a.ctx)
}
