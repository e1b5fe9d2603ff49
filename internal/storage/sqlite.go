package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/alienxp03/folio/internal/core"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStorage{
		db:   db,
		path: dbPath,
	}, nil
}

// Initialize creates the database schema.
func (s *SQLiteStorage) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		position_1 TEXT NOT NULL DEFAULT '',
		position_2 TEXT NOT NULL DEFAULT '',
		grounded INTEGER NOT NULL DEFAULT 0,
		turn_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'in_progress',
		created_at DATETIME NOT NULL,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS contact_events (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_contact_events_kind ON contact_events(kind);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// RecordSession inserts a new session record.
func (s *SQLiteStorage) RecordSession(session *core.Session) error {
	query := `
	INSERT INTO sessions (id, topic, position_1, position_2, grounded, turn_count, status, created_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		session.ID,
		session.Topic,
		session.Position1,
		session.Position2,
		session.Grounded,
		session.TurnCount,
		session.Status,
		session.CreatedAt,
		session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// UpdateSession updates an existing session record.
func (s *SQLiteStorage) UpdateSession(session *core.Session) error {
	query := `
	UPDATE sessions
	SET position_1 = ?, position_2 = ?, grounded = ?, turn_count = ?, status = ?, completed_at = ?
	WHERE id = ?
	`

	_, err := s.db.Exec(query,
		session.Position1,
		session.Position2,
		session.Grounded,
		session.TurnCount,
		session.Status,
		session.CompletedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// GetSession retrieves a session record by ID.
func (s *SQLiteStorage) GetSession(id string) (*core.Session, error) {
	query := `
	SELECT id, topic, position_1, position_2, grounded, turn_count, status, created_at, completed_at
	FROM sessions
	WHERE id = ?
	`

	session, err := scanSession(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ListSessions returns session records, newest first.
func (s *SQLiteStorage) ListSessions(limit, offset int) ([]*core.Session, error) {
	query := `
	SELECT id, topic, position_1, position_2, grounded, turn_count, status, created_at, completed_at
	FROM sessions
	ORDER BY created_at DESC
	LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*core.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// RecordContactEvent logs one contact drafting operation.
func (s *SQLiteStorage) RecordContactEvent(kind ContactEventKind) error {
	query := `INSERT INTO contact_events (id, kind, created_at) VALUES (?, ?, ?)`

	_, err := s.db.Exec(query, uuid.NewString(), string(kind), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert contact event: %w", err)
	}

	return nil
}

// CountContactEvents returns how many events of a kind were logged.
func (s *SQLiteStorage) CountContactEvents(kind ContactEventKind) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_events WHERE kind = ?`, string(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact events: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*core.Session, error) {
	var session core.Session
	var completedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.Topic,
		&session.Position1,
		&session.Position2,
		&session.Grounded,
		&session.TurnCount,
		&session.Status,
		&session.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return &session, nil
}
