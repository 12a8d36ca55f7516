package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName    = errors.New("document name is empty")
	ErrInvalidTheme = errors.New("theme must be light or dark")
	ErrPageNotFound = errors.New("page not found")
	ErrNodeNotFound = errors.New("node not found")
)

// IssueKind classifies a validation finding.
type IssueKind string

const (
	IssueEmptyName     IssueKind = "empty_name"
	IssueInvalidTheme  IssueKind = "invalid_theme"
	IssueDuplicatePath IssueKind = "duplicate_path"
	IssueRelativePath  IssueKind = "relative_path"
	IssueDuplicateNode IssueKind = "duplicate_node"
)

type Issue struct {
	Kind    IssueKind `json:"kind"`
	Path    string    `json:"path,omitempty"`
	NodeID  string    `json:"nodeId,omitempty"`
	Message string    `json:"message"`
}

// Fatal reports whether the issue is a caller error rather than a tolerated
// inconsistency of a user-edited document.
func (i Issue) Fatal() bool {
	return i.Kind == IssueEmptyName || i.Kind == IssueInvalidTheme
}

// Validate lists every invariant violation in d, in document order.
func (d StudioDocument) Validate() []Issue {
	var issues []Issue
	if d.Meta.Name == "" {
		issues = append(issues, Issue{Kind: IssueEmptyName, Message: ErrEmptyName.Error()})
	}
	if !d.Meta.Theme.Valid() {
		issues = append(issues, Issue{
			Kind:    IssueInvalidTheme,
			Message: fmt.Sprintf("%s: got %q", ErrInvalidTheme, d.Meta.Theme),
		})
	}

	seenPaths := make(map[string]bool, len(d.Pages))
	for _, p := range d.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			issues = append(issues, Issue{
				Kind:    IssueRelativePath,
				Path:    p.Path,
				Message: fmt.Sprintf("page path %q does not start with /", p.Path),
			})
		}
		if seenPaths[p.Path] {
			issues = append(issues, Issue{
				Kind:    IssueDuplicatePath,
				Path:    p.Path,
				Message: fmt.Sprintf("page path %q is used more than once", p.Path),
			})
		}
		seenPaths[p.Path] = true

		seenIDs := make(map[string]bool, len(p.Tree))
		for _, n := range p.Tree {
			if seenIDs[n.ID] {
				issues = append(issues, Issue{
					Kind:    IssueDuplicateNode,
					Path:    p.Path,
					NodeID:  n.ID,
					Message: fmt.Sprintf("node id %q is used more than once on %s", n.ID, p.Path),
				})
			}
			seenIDs[n.ID] = true
		}
	}
	return issues
}

// CheckTheme rejects a theme outside the enum. It is the only metadata
// check a document must pass to be edited; an empty name is tolerated until
// a manifest is exported.
func (d StudioDocument) CheckTheme() error {
	if !d.Meta.Theme.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidTheme, d.Meta.Theme)
	}
	return nil
}

// CheckMeta returns the caller errors that make a document unfit for a
// user-visible export: an empty name or a theme outside the enum.
func (d StudioDocument) CheckMeta() error {
	if d.Meta.Name == "" {
		return ErrEmptyName
	}
	return d.CheckTheme()
}
