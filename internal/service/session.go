package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"rorkforge/internal/domain"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
)

// ─────────────────────────────────────────────────────────────
// Session — the editing session around one document
// ─────────────────────────────────────────────────────────────

// TopicDocumentChanged is emitted after the session document is replaced.
// It is a host notification, separate from the apply/navigate contract.
const TopicDocumentChanged = "rorkforge:document-changed"

// DocumentChanged is the payload of TopicDocumentChanged.
type DocumentChanged struct {
	Label     string `json:"label"`
	Committed bool   `json:"committed"`
}

// History is the snapshot storage a Session records commits in.
type History interface {
	domain.SnapshotStore
	Back() (*domain.Snapshot, error)
	Forward() (*domain.Snapshot, error)
}

// Session owns the current document snapshot. Every change installs a new
// snapshot; readers always get a copy.
//
// Commit records the change in history. Update only installs it and marks
// the session dirty, for high-frequency sources like file reloads; the
// Checkpointer later folds dirty state into history.
//
// Writers are serialized. Change notifications are emitted after the write
// lock is released, so subscribers may call back into the session.
type Session struct {
	history  History
	exporter *export.Exporter
	emitter  EventEmitter

	write sync.Mutex

	mu    sync.Mutex
	doc   domain.StudioDocument
	dirty bool
}

// NewSession creates a Session.
func NewSession(history History, exporter *export.Exporter, emitter EventEmitter) *Session {
	return &Session{history: history, exporter: exporter, emitter: emitter}
}

// Start seeds the session with doc as the root of its history.
func (s *Session) Start(ctx context.Context, doc domain.StudioDocument) error {
	return s.Commit(ctx, "seed", doc)
}

// Document returns a copy of the current snapshot.
func (s *Session) Document() domain.StudioDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Dirty reports whether the document has changes not yet in history.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Commit validates doc, installs it and records it in history.
func (s *Session) Commit(ctx context.Context, label string, doc domain.StudioDocument) error {
	s.write.Lock()
	err := s.commitLocked(label, doc)
	s.write.Unlock()
	if err != nil {
		return err
	}
	s.changed(ctx, label, true)
	return nil
}

// Update validates doc and installs it without recording history.
func (s *Session) Update(ctx context.Context, label string, doc domain.StudioDocument) error {
	if err := doc.CheckTheme(); err != nil {
		return fmt.Errorf("update %s: %w", label, err)
	}
	s.write.Lock()
	s.install(doc, true)
	s.write.Unlock()
	s.changed(ctx, label, false)
	return nil
}

// Edit applies fn to a copy of the current document and commits the result.
// No other write can land between reading the document and committing.
func (s *Session) Edit(ctx context.Context, label string, fn func(domain.StudioDocument) (domain.StudioDocument, error)) (domain.StudioDocument, error) {
	s.write.Lock()
	next, err := fn(s.Document())
	if err != nil {
		s.write.Unlock()
		return domain.StudioDocument{}, fmt.Errorf("edit %s: %w", label, err)
	}
	err = s.commitLocked(label, next)
	s.write.Unlock()
	if err != nil {
		return domain.StudioDocument{}, err
	}
	s.changed(ctx, label, true)
	return next.Clone(), nil
}

// Checkpoint commits the current document if it has uncommitted changes.
// It reports whether a snapshot was recorded.
func (s *Session) Checkpoint(ctx context.Context) (bool, error) {
	s.write.Lock()
	if !s.Dirty() {
		s.write.Unlock()
		return false, nil
	}
	err := s.commitLocked("checkpoint", s.Document())
	s.write.Unlock()
	if err != nil {
		return false, err
	}
	s.changed(ctx, "checkpoint", true)
	return true, nil
}

// Undo steps back one snapshot. Uncommitted changes are discarded first:
// with a dirty session, Undo restores the current snapshot instead.
func (s *Session) Undo(ctx context.Context) (domain.StudioDocument, error) {
	s.write.Lock()
	var (
		snap *domain.Snapshot
		err  error
	)
	if s.Dirty() {
		snap, err = s.history.Current()
	} else {
		snap, err = s.history.Back()
	}
	if err != nil {
		s.write.Unlock()
		return domain.StudioDocument{}, fmt.Errorf("undo: %w", err)
	}
	s.install(snap.Document, false)
	s.write.Unlock()
	s.changed(ctx, "undo", true)
	return snap.Document.Clone(), nil
}

// Redo steps forward along the newest branch.
func (s *Session) Redo(ctx context.Context) (domain.StudioDocument, error) {
	s.write.Lock()
	if s.Dirty() {
		s.write.Unlock()
		return domain.StudioDocument{}, errors.New("redo: document has uncommitted changes")
	}
	snap, err := s.history.Forward()
	if err != nil {
		s.write.Unlock()
		return domain.StudioDocument{}, fmt.Errorf("redo: %w", err)
	}
	s.install(snap.Document, false)
	s.write.Unlock()
	s.changed(ctx, "redo", true)
	return snap.Document.Clone(), nil
}

// History lists the recorded snapshots, oldest first.
func (s *Session) History() ([]domain.Snapshot, error) {
	return s.history.List()
}

func (s *Session) commitLocked(label string, doc domain.StudioDocument) error {
	if err := doc.CheckTheme(); err != nil {
		return fmt.Errorf("commit %s: %w", label, err)
	}
	if _, err := s.history.Push(label, doc); err != nil {
		return fmt.Errorf("commit %s: %w", label, err)
	}
	s.install(doc, false)
	return nil
}

func (s *Session) install(doc domain.StudioDocument, dirty bool) {
	doc = doc.Clone()
	s.mu.Lock()
	s.doc = doc
	s.dirty = dirty
	s.mu.Unlock()
}

func (s *Session) changed(ctx context.Context, label string, committed bool) {
	s.emitter.Emit(ctx, TopicDocumentChanged, DocumentChanged{Label: label, Committed: committed})
}

// ── Exports ────────────────────────────────────────────────

// Issues validates the current document.
func (s *Session) Issues() []domain.Issue {
	return s.Document().Validate()
}

func (s *Session) TextSpec() string {
	return s.exporter.TextSpec(s.Document())
}

func (s *Session) Manifest() (export.Manifest, error) {
	return s.exporter.Manifest(s.Document())
}

func (s *Session) ManifestJSON() ([]byte, error) {
	return s.exporter.ManifestJSON(s.Document())
}

// ── Sync ───────────────────────────────────────────────────

// ApplyStaging broadcasts a new staging target.
func (s *Session) ApplyStaging(ctx context.Context, url string) {
	log.Printf("[session] apply staging %s", url)
	s.emitter.Emit(ctx, events.TopicApply, events.ApplyPayload{URL: url})
}

// Navigate broadcasts a section change. Unknown page names are rejected
// before anything is published.
func (s *Session) Navigate(ctx context.Context, page string) (events.PageKey, error) {
	key, err := events.ParsePageKey(page)
	if err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	s.emitter.Emit(ctx, events.TopicNavigate, events.NavigatePayload{Page: key})
	return key, nil
}
