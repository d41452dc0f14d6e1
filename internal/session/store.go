// Package session persists the current kiosk browsing session: which
// filtered views were opened and which records were inspected, so a view
// can be resumed from the room board or handed off between pages. It is
// not an archive; ended sessions are deleted.
package session

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/seralin/musekiosk/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// View is one filtered-view visit within a session. Search holds the
// encoded search string of the view's flat filter; RecordID is set when a
// record detail was opened from the view.
type View struct {
	ContentType models.ContentType
	Search      string
	RecordID    string
	ViewedAt    time.Time
}

// Store manages session persistence in a local sqlite database
type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if needed) the session database at path
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Begin starts a new session and returns its id
func (s *Store) Begin() (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO sessions (id) VALUES (?)`, id); err != nil {
		return "", fmt.Errorf("failed to begin session: %w", err)
	}
	return id, nil
}

// SaveView records a filtered-view visit. A record id that fails identifier
// validation is stored as empty rather than rejected; a corrupt handoff
// should degrade, not crash the kiosk.
func (s *Store) SaveView(sessionID string, ct models.ContentType, search, recordID string) error {
	if !ct.IsValid() {
		return fmt.Errorf("invalid content type %q", ct)
	}
	if !models.IsValidRecordID(recordID) {
		recordID = ""
	}
	_, err := s.db.Exec(`
		INSERT INTO session_views (session_id, content_type, search, record_id)
		VALUES (?, ?, ?, ?)`,
		sessionID, string(ct), search, recordID)
	if err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

// RecentViews returns the session's views, most recent first
func (s *Store) RecentViews(sessionID string, limit int) ([]View, error) {
	rows, err := s.db.Query(`
		SELECT content_type, search, record_id, viewed_at
		FROM session_views
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query views: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var views []View
	for rows.Next() {
		var v View
		var ct, viewedAt string
		if err := rows.Scan(&ct, &v.Search, &v.RecordID, &viewedAt); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		v.ContentType = models.ContentType(ct)
		v.ViewedAt, _ = time.Parse("2006-01-02 15:04:05", viewedAt)
		views = append(views, v)
	}
	return views, rows.Err()
}

// LastView returns the most recent view of a session, if any
func (s *Store) LastView(sessionID string) (*View, error) {
	views, err := s.RecentViews(sessionID, 1)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

// End deletes a session and everything it recorded
func (s *Store) End(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Prune deletes sessions older than the given age, for kiosks that are
// power-cycled without a clean shutdown
func (s *Store) Prune(maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge).Format("2006-01-02 15:04:05")
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE started_at < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to prune sessions: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
