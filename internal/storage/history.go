package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rorkforge/internal/domain"
)

var (
	ErrNoHistory        = errors.New("no history")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// DefaultHistoryLimit caps how many snapshots a session keeps.
const DefaultHistoryLimit = 40

// HistoryStore implements domain.SnapshotStore on SQLite. Snapshots form a
// tree: pushing after an undo starts a new branch from the current node.
type HistoryStore struct {
	db    *DB
	limit int
}

func NewHistoryStore(db *DB, limit int) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{db: db, limit: limit}
}

var _ domain.SnapshotStore = (*HistoryStore)(nil)

// Push stores doc as a child of the current snapshot and makes it current.
func (s *HistoryStore) Push(label string, doc domain.StudioDocument) (*domain.Snapshot, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	var parentID *string
	cur, err := s.currentID()
	switch {
	case err == nil:
		parentID = &cur
	case !errors.Is(err, ErrNoHistory):
		return nil, err
	}

	snap := &domain.Snapshot{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		Label:     label,
		Document:  doc.Clone(),
		CreatedAt: time.Now(),
	}

	_, err = s.db.conn.Exec(
		`INSERT INTO snapshots (id, parent_id, label, document_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.ParentID, snap.Label, string(data), snap.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	if err := s.GoTo(snap.ID); err != nil {
		return nil, err
	}

	if err := s.pruneIfNeeded(); err != nil {
		log.Printf("[history] prune: %v", err)
	}
	return snap, nil
}

// Current returns the snapshot the session is showing.
func (s *HistoryStore) Current() (*domain.Snapshot, error) {
	id, err := s.currentID()
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *HistoryStore) Get(id string) (*domain.Snapshot, error) {
	row := s.db.conn.QueryRow(
		`SELECT id, parent_id, label, document_json, created_at FROM snapshots WHERE id = ?`, id,
	)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

// List returns every stored snapshot, oldest first.
func (s *HistoryStore) List() ([]domain.Snapshot, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, parent_id, label, document_json, created_at FROM snapshots ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, *snap)
	}
	return snaps, rows.Err()
}

// GoTo moves the current pointer to id.
func (s *HistoryStore) GoTo(id string) error {
	var exists int
	if err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO history_state (slot, current_id) VALUES (1, ?)
		 ON CONFLICT(slot) DO UPDATE SET current_id = excluded.current_id`,
		id,
	)
	if err != nil {
		return fmt.Errorf("update history state: %w", err)
	}
	return nil
}

// Back moves to the parent of the current snapshot and returns it.
func (s *HistoryStore) Back() (*domain.Snapshot, error) {
	cur, err := s.Current()
	if err != nil {
		return nil, err
	}
	if cur.ParentID == nil {
		return nil, fmt.Errorf("%w: already at the oldest snapshot", ErrNoHistory)
	}
	if err := s.GoTo(*cur.ParentID); err != nil {
		return nil, err
	}
	return s.Get(*cur.ParentID)
}

// Forward moves to the newest child of the current snapshot and returns it.
func (s *HistoryStore) Forward() (*domain.Snapshot, error) {
	id, err := s.currentID()
	if err != nil {
		return nil, err
	}
	var childID string
	err = s.db.conn.QueryRow(
		`SELECT id FROM snapshots WHERE parent_id = ? ORDER BY seq DESC LIMIT 1`, id,
	).Scan(&childID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: already at the newest snapshot", ErrNoHistory)
	}
	if err != nil {
		return nil, fmt.Errorf("find child snapshot: %w", err)
	}
	if err := s.GoTo(childID); err != nil {
		return nil, err
	}
	return s.Get(childID)
}

// Clear removes all history.
func (s *HistoryStore) Clear() error {
	_, _ = s.db.conn.Exec(`DELETE FROM history_state`)
	_, err := s.db.conn.Exec(`DELETE FROM snapshots`)
	return err
}

func (s *HistoryStore) currentID() (string, error) {
	var id string
	err := s.db.conn.QueryRow(`SELECT current_id FROM history_state WHERE slot = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", fmt.Errorf("read history state: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var (
		snap domain.Snapshot
		data string
	)
	if err := row.Scan(&snap.ID, &snap.ParentID, &snap.Label, &data, &snap.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &snap.Document); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	return &snap, nil
}

// pruneIfNeeded removes the oldest snapshots once the limit is exceeded.
// Children of a removed snapshot are re-parented to its parent so the tree
// stays connected; the current snapshot is never removed. Each re-parent
// and delete commits together or not at all.
func (s *HistoryStore) pruneIfNeeded() error {
	var count int
	if err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		return fmt.Errorf("count snapshots: %w", err)
	}
	if count <= s.limit {
		return nil
	}
	toDelete := count - s.limit

	currentID, err := s.currentID()
	if err != nil {
		return err
	}

	// Collect IDs first; the single connection cannot serve writes while a
	// rows cursor is open.
	rows, err := s.db.conn.Query(`SELECT id FROM snapshots ORDER BY seq ASC LIMIT ?`, toDelete)
	if err != nil {
		return fmt.Errorf("select oldest snapshots: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan snapshot id: %w", err)
		}
		if id != currentID {
			ids = append(ids, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select oldest snapshots: %w", err)
	}

	for _, id := range ids {
		if err := s.removeSnapshot(id); err != nil {
			return err
		}
	}
	return nil
}

// removeSnapshot deletes id after handing its children to its parent.
func (s *HistoryStore) removeSnapshot(id string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin prune %s: %w", id, err)
	}
	defer tx.Rollback()

	var parentID sql.NullString
	if err := tx.QueryRow(`SELECT parent_id FROM snapshots WHERE id = ?`, id).Scan(&parentID); err != nil {
		return fmt.Errorf("read parent of %s: %w", id, err)
	}
	if _, err := tx.Exec(`UPDATE snapshots SET parent_id = ? WHERE parent_id = ?`, parentID, id); err != nil {
		return fmt.Errorf("reparent children of %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prune %s: %w", id, err)
	}
	return nil
}
