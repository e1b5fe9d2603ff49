// Package core contains the core domain types for folio.
package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Speaker identifies which debater produced a turn.
type Speaker string

const (
	SpeakerDebater1 Speaker = "debater_1"
	SpeakerDebater2 Speaker = "debater_2"
)

// SessionStatus represents the current status of a debate session.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// TotalTurns is the fixed number of turns per debate session, three per side.
const TotalTurns = 6

// Turn is one produced message from one persona within a debate session.
type Turn struct {
	Speaker  Speaker `json:"speaker"`
	Message  string  `json:"message"`
	Position string  `json:"position"`
}

// SpeakerForTurn returns the speaker for turn index i (0-based).
// Turns strictly alternate, starting with debater_1.
func SpeakerForTurn(i int) Speaker {
	if i%2 == 0 {
		return SpeakerDebater1
	}
	return SpeakerDebater2
}

// Persona binds a speaker to its position, the topic, and the shared
// grounding snippet for the lifetime of one session. Constructed once,
// reused unmodified across all turns the persona speaks.
type Persona struct {
	Speaker   Speaker
	Position  string
	Topic     string
	Grounding string
}

// Session is the metadata record of one debate generation. It never holds
// conversation content; turns live only in the request-scoped history.
type Session struct {
	ID          string        `json:"id"`
	Topic       string        `json:"topic"`
	Position1   string        `json:"position_1"`
	Position2   string        `json:"position_2"`
	Grounded    bool          `json:"grounded"`
	TurnCount   int           `json:"turn_count"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Transcript is a client-supplied debate transcript for export. The server
// keeps no conversation state, so exports operate on what the client sends.
type Transcript struct {
	Topic     string    `json:"topic"`
	Position1 string    `json:"position_1"`
	Position2 string    `json:"position_2"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

const maxTopicLength = 500

// ValidateTopic trims the topic and checks the 1-500 character bound.
// The bound counts characters, not bytes, so multi-byte topics are not
// penalized.
func ValidateTopic(topic string) (string, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return "", fmt.Errorf("topic cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxTopicLength {
		return "", fmt.Errorf("topic exceeds %d characters", maxTopicLength)
	}
	return trimmed, nil
}
