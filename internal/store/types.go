package store

import (
	"time"

	"github.com/autoearnpro/autoearnpro/internal/learning"
	"github.com/autoearnpro/autoearnpro/internal/memory"
)

// Session represents one earning campaign run.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Status    string
	Metadata  map[string]string
}

// ReportRecord is a persisted engine report tied to a session and cycle.
type ReportRecord struct {
	ID        string
	SessionID string
	Cycle     int
	Engine    string
	TaskID    string
	StartedAt time.Time
	Duration  time.Duration
	Metrics   map[string]float64
	Notes     []string
	Success   bool
}

// Storage defines the interface for persistence.
type Storage interface {
	// Session management
	CreateSession(session *Session) error
	GetSession(id string) (*Session, error)
	UpdateSession(session *Session) error
	ListSessions(limit int) ([]*Session, error)

	// Report management
	SaveReport(record *ReportRecord) error
	ListReports(sessionID string) ([]*ReportRecord, error)

	// Memory snapshots: Save replaces the previous snapshot wholesale.
	SaveMemories(records []memory.Record) error
	LoadMemories() ([]memory.Record, error)

	// Rule snapshots, same replace-all semantics.
	SaveRules(rules []learning.Rule) error
	LoadRules() ([]learning.Rule, error)

	// Configuration management
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)

	Close() error
}
