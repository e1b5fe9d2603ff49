// Package storage provides the session and usage log.
//
// The log holds metadata only (topics, stance labels, timestamps, counters).
// Conversation content is never written: debate turns exist only inside the
// request that produced them.
package storage

import (
	"github.com/alienxp03/folio/internal/core"
)

// ContactEventKind labels a contact drafting operation.
type ContactEventKind string

const (
	ContactEventDraft   ContactEventKind = "draft"
	ContactEventImprove ContactEventKind = "improve"
)

// Storage defines the interface for the session and usage log.
type Storage interface {
	// Initialize sets up the storage (creates tables, etc.)
	Initialize() error

	// Close closes the storage connection.
	Close() error

	// Session log
	RecordSession(session *core.Session) error
	UpdateSession(session *core.Session) error
	GetSession(id string) (*core.Session, error)
	ListSessions(limit, offset int) ([]*core.Session, error)

	// Contact usage log
	RecordContactEvent(kind ContactEventKind) error
	CountContactEvents(kind ContactEventKind) (int, error)
}
