package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/autoearnpro/autoearnpro/internal/learning"
	"github.com/autoearnpro/autoearnpro/internal/memory"
)

// SQLiteStore persists sessions, reports, snapshots, and configuration in
// a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs the
// schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			status TEXT,
			metadata TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			session_id TEXT,
			cycle INTEGER,
			engine TEXT,
			task_id TEXT,
			started_at DATETIME,
			duration_ns INTEGER,
			metrics TEXT,
			notes TEXT,
			success INTEGER,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_session ON reports(session_id);`,
		`CREATE TABLE IF NOT EXISTS memories (
			id TEXT PRIMARY KEY,
			content TEXT,
			context TEXT,
			timestamp DATETIME,
			importance REAL,
			category TEXT,
			tags TEXT,
			access_count INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS rules (
			id TEXT PRIMARY KEY,
			condition TEXT,
			action TEXT,
			priority REAL,
			success_rate REAL,
			applications INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS configuration (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Configuration Implementation

func (s *SQLiteStore) SetConfig(key, value string) error {
	query := `INSERT INTO configuration (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) GetConfig(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM configuration WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Session Implementation

func (s *SQLiteStore) CreateSession(session *Session) error {
	metaJSON, err := json.Marshal(session.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `INSERT INTO sessions (id, created_at, updated_at, status, metadata) VALUES (?, ?, ?, ?, ?)`
	_, err = s.db.Exec(query, session.ID, session.CreatedAt, session.UpdatedAt, session.Status, string(metaJSON))
	return err
}

func (s *SQLiteStore) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT id, created_at, updated_at, status, metadata FROM sessions WHERE id = ?`, id)

	var session Session
	var metaJSON string
	if err := row.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt, &session.Status, &metaJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(metaJSON), &session.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &session, nil
}

func (s *SQLiteStore) UpdateSession(session *Session) error {
	metaJSON, err := json.Marshal(session.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `UPDATE sessions SET updated_at = ?, status = ?, metadata = ? WHERE id = ?`
	_, err = s.db.Exec(query, time.Now(), session.Status, string(metaJSON), session.ID)
	return err
}

func (s *SQLiteStore) ListSessions(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, updated_at, status, metadata FROM sessions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var session Session
		var metaJSON string
		if err := rows.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt, &session.Status, &metaJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metaJSON), &session.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}

// Report Implementation

func (s *SQLiteStore) SaveReport(record *ReportRecord) error {
	metricsJSON, err := json.Marshal(record.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	notesJSON, err := json.Marshal(record.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	query := `INSERT INTO reports (id, session_id, cycle, engine, task_id, started_at, duration_ns, metrics, notes, success)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.Exec(query,
		record.ID, record.SessionID, record.Cycle, record.Engine, record.TaskID,
		record.StartedAt, record.Duration.Nanoseconds(), string(metricsJSON), string(notesJSON), boolToInt(record.Success))
	return err
}

func (s *SQLiteStore) ListReports(sessionID string) ([]*ReportRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, cycle, engine, task_id, started_at, duration_ns, metrics, notes, success
		 FROM reports WHERE session_id = ? ORDER BY cycle, started_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ReportRecord
	for rows.Next() {
		var r ReportRecord
		var durationNS int64
		var metricsJSON, notesJSON string
		var success int
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Cycle, &r.Engine, &r.TaskID, &r.StartedAt, &durationNS, &metricsJSON, &notesJSON, &success); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationNS)
		r.Success = success != 0
		if err := json.Unmarshal([]byte(metricsJSON), &r.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
		if err := json.Unmarshal([]byte(notesJSON), &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Memory Snapshot Implementation

func (s *SQLiteStore) SaveMemories(records []memory.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM memories`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO memories (id, content, context, timestamp, importance, category, tags, access_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		ctxJSON, err := json.Marshal(rec.Context)
		if err != nil {
			return fmt.Errorf("failed to marshal context: %w", err)
		}
		tagsJSON, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := stmt.Exec(rec.ID, rec.Content, string(ctxJSON), rec.Timestamp, rec.Importance, rec.Category, string(tagsJSON), rec.AccessCount); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadMemories() ([]memory.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, content, context, timestamp, importance, category, tags, access_count FROM memories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []memory.Record
	for rows.Next() {
		var rec memory.Record
		var ctxJSON, tagsJSON string
		if err := rows.Scan(&rec.ID, &rec.Content, &ctxJSON, &rec.Timestamp, &rec.Importance, &rec.Category, &tagsJSON, &rec.AccessCount); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ctxJSON), &rec.Context); err != nil {
			return nil, fmt.Errorf("failed to unmarshal context: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Rule Snapshot Implementation

func (s *SQLiteStore) SaveRules(rules []learning.Rule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM rules`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO rules (id, condition, action, priority, success_rate, applications) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rule := range rules {
		if _, err := stmt.Exec(rule.ID, rule.Condition, rule.Action, rule.Priority, rule.SuccessRate, rule.Applications); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadRules() ([]learning.Rule, error) {
	rows, err := s.db.Query(`SELECT id, condition, action, priority, success_rate, applications FROM rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []learning.Rule
	for rows.Next() {
		var rule learning.Rule
		if err := rows.Scan(&rule.ID, &rule.Condition, &rule.Action, &rule.Priority, &rule.SuccessRate, &rule.Applications); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
