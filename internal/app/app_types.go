package app

import (
	"rorkforge/internal/domain"
	"rorkforge/internal/surface"
)

// StateView is what the frontend renders the shell and preview from.
type StateView struct {
	Shell   surface.ShellState   `json:"shell"`
	Preview surface.PreviewState `json:"preview"`
	Dirty   bool                 `json:"dirty"`
}

// DocumentView is the document plus its validation findings.
type DocumentView struct {
	Document domain.StudioDocument `json:"document"`
	Issues   []domain.Issue        `json:"issues"`
}

// AddNodeInput is the input for appending a primitive to a page.
type AddNodeInput struct {
	Path  string         `json:"path"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}
