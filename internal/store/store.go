// Package store persists developed ideas, their diagrams, and agent
// chat traffic in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/domain"
)

// Compile-time check: the store records agent chat traffic.
var _ agent.ChatLog = (*Store)(nil)

// IdeaRecord is a persisted idea row.
type IdeaRecord struct {
	ID               int64       `json:"id"`
	Concept          string      `json:"concept"`
	Domain           domain.Type `json:"domain"`
	Keywords         []string    `json:"keywords"`
	DevelopmentStage string      `json:"development_stage"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Diagram is a persisted diagram or concept-image row.
type Diagram struct {
	ID        int64     `json:"id"`
	IdeaID    int64     `json:"idea_id"`
	ImageData string    `json:"image_data"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessage is a persisted chat message row.
type ChatMessage struct {
	ID        int64       `json:"id"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content"`
	Domain    domain.Type `json:"domain"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// Store is the SQLite persistence layer.
type Store struct {
	db *sql.DB
}

// Open creates a Store at dbPath, creating parent directories and the
// schema as needed. Pass ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS ideas (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			concept           TEXT NOT NULL,
			domain            TEXT NOT NULL,
			keywords          TEXT NOT NULL,
			development_stage TEXT NOT NULL,
			timestamp         TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS diagrams (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			idea_id    INTEGER NOT NULL,
			image_data TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			timestamp  TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (idea_id) REFERENCES ideas(id)
		);

		CREATE TABLE IF NOT EXISTS chat_messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			sender     TEXT NOT NULL,
			content    TEXT NOT NULL,
			domain     TEXT NOT NULL,
			session_id TEXT NOT NULL,
			timestamp  TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_ideas_timestamp     ON ideas(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_diagrams_idea       ON diagrams(idea_id);
		CREATE INDEX IF NOT EXISTS idx_chat_session        ON chat_messages(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveIdea inserts an idea and returns its assigned ID.
func (s *Store) SaveIdea(ctx context.Context, idea *domain.Idea) (int64, error) {
	keywords, err := json.Marshal(idea.Keywords)
	if err != nil {
		return 0, fmt.Errorf("store: marshal keywords: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ideas (concept, domain, keywords, development_stage, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		idea.Concept, string(idea.Domain), string(keywords), idea.DevelopmentStage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("store: save idea: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: idea id: %w", err)
	}
	return id, nil
}

// SaveDiagram inserts a diagram or concept-image row for an idea.
func (s *Store) SaveDiagram(ctx context.Context, ideaID int64, imageData, note string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO diagrams (idea_id, image_data, note, timestamp) VALUES (?, ?, ?, ?)`,
		ideaID, imageData, note, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: save diagram: %w", err)
	}
	return nil
}

// GetDiagram returns the most recent diagram for an idea, or nil when
// none exists.
func (s *Store) GetDiagram(ctx context.Context, ideaID int64) (*Diagram, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, idea_id, image_data, note, timestamp
		 FROM diagrams WHERE idea_id = ? ORDER BY timestamp DESC, id DESC LIMIT 1`,
		ideaID,
	)

	var d Diagram
	var ts string
	err := row.Scan(&d.ID, &d.IdeaID, &d.ImageData, &d.Note, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get diagram: %w", err)
	}
	d.Timestamp = parseTimestamp(ts)
	return &d, nil
}

// IdeaHistory returns the most recent ideas, newest first. A limit <= 0
// defaults to 10.
func (s *Store) IdeaHistory(ctx context.Context, limit int) ([]IdeaRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, concept, domain, keywords, development_stage, timestamp
		 FROM ideas ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: idea history: %w", err)
	}
	defer rows.Close()

	var out []IdeaRecord
	for rows.Next() {
		var rec IdeaRecord
		var keywords, ts string
		if err := rows.Scan(&rec.ID, &rec.Concept, &rec.Domain, &keywords, &rec.DevelopmentStage, &ts); err != nil {
			return nil, fmt.Errorf("store: scan idea: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("store: unmarshal keywords: %w", err)
		}
		rec.Timestamp = parseTimestamp(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetIdea returns a single idea by ID, or nil when not found.
func (s *Store) GetIdea(ctx context.Context, id int64) (*IdeaRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, concept, domain, keywords, development_stage, timestamp
		 FROM ideas WHERE id = ?`, id,
	)

	var rec IdeaRecord
	var keywords, ts string
	err := row.Scan(&rec.ID, &rec.Concept, &rec.Domain, &keywords, &rec.DevelopmentStage, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get idea: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
		return nil, fmt.Errorf("store: unmarshal keywords: %w", err)
	}
	rec.Timestamp = parseTimestamp(ts)
	return &rec, nil
}

// AddChatMessage records one chat message in a session.
func (s *Store) AddChatMessage(ctx context.Context, sender, content string, d domain.Type, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (sender, content, domain, session_id, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		sender, content, string(d), sessionID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: add chat message: %w", err)
	}
	return nil
}

// ChatSession returns a session's messages in chronological order.
func (s *Store) ChatSession(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, content, domain, session_id, timestamp
		 FROM chat_messages WHERE session_id = ? ORDER BY timestamp ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: chat session: %w", err)
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		var ts string
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.Domain, &m.SessionID, &ts); err != nil {
			return nil, fmt.Errorf("store: scan chat message: %w", err)
		}
		m.Timestamp = parseTimestamp(ts)
		out = append(out, m)
	}
	return out, rows.Err()
}

// NewSessionID mints a fresh chat session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}
