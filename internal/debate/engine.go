// Package debate orchestrates a scripted six-turn debate between two model
// personas.
package debate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alienxp03/folio/internal/core"
	"github.com/alienxp03/folio/internal/llm"
	"github.com/alienxp03/folio/internal/storage"
)

// Grounder produces best-effort web context for a topic. Implementations
// must never fail: total grounding failure degrades to an empty string.
type Grounder interface {
	Ground(ctx context.Context, topic string) string
}

// TurnCallback is called after each turn completes. Turns arrive strictly
// in generation order, as they become available.
type TurnCallback func(turn core.Turn)

// Engine orchestrates debate sessions. All session state (positions,
// personas, history) is request-scoped; the engine itself only carries
// read-only collaborators and is safe for concurrent use.
type Engine struct {
	client   llm.Client
	grounder Grounder
	store    storage.Storage
}

// New creates a debate engine. grounder may be nil to disable grounding;
// store may be nil to disable the session log.
func New(client llm.Client, grounder Grounder, store storage.Storage) *Engine {
	return &Engine{
		client:   client,
		grounder: grounder,
		store:    store,
	}
}

// Run generates a full debate on the topic, invoking callback once per
// completed turn. It returns an error when generation aborts; turns already
// delivered through the callback stand. No partial output is produced before
// the first model call succeeds.
func (e *Engine) Run(ctx context.Context, topic string, callback TurnCallback) error {
	session := &core.Session{
		ID:        uuid.NewString(),
		Topic:     topic,
		Status:    core.StatusInProgress,
		CreatedAt: time.Now(),
	}
	e.recordSession(session)

	// Positions are derived once and immutable for the session.
	position1, position2, err := ExtractPositions(ctx, e.client, topic)
	if err != nil {
		e.failSession(session)
		return err
	}
	session.Position1 = position1
	session.Position2 = position2

	// Grounding is advisory: an empty snippet is a valid, expected state.
	var grounding string
	if e.grounder != nil {
		grounding = e.grounder.Ground(ctx, topic)
	}
	session.Grounded = grounding != ""
	e.updateSession(session)

	personas := map[core.Speaker]core.Persona{
		core.SpeakerDebater1: buildPersona(core.SpeakerDebater1, position1, topic, grounding),
		core.SpeakerDebater2: buildPersona(core.SpeakerDebater2, position2, topic, grounding),
	}

	history := make([]core.Turn, 0, core.TotalTurns)

	for i := 0; i < core.TotalTurns; i++ {
		select {
		case <-ctx.Done():
			e.failSession(session)
			return ctx.Err()
		default:
		}

		speaker := core.SpeakerForTurn(i)
		persona := personas[speaker]

		var prompt string
		if i == 0 {
			prompt = openingPrompt(topic)
		} else {
			prompt = continuationPrompt(topic, history, speaker, i == core.TotalTurns-1)
		}

		message, err := e.client.Complete(ctx, personaInstructions(persona), prompt)
		if err != nil {
			e.failSession(session)
			return fmt.Errorf("failed to generate turn %d: %w", i, err)
		}

		// An empty completion is non-fatal; it propagates as an empty
		// message rather than aborting the session.
		turn := core.Turn{
			Speaker:  speaker,
			Message:  strings.TrimSpace(message),
			Position: persona.Position,
		}
		history = append(history, turn)
		session.TurnCount = len(history)

		callback(turn)
	}

	now := time.Now()
	session.Status = core.StatusCompleted
	session.CompletedAt = &now
	e.updateSession(session)

	return nil
}

// The session log is advisory metadata; storage failures never interfere
// with generation.

func (e *Engine) recordSession(session *core.Session) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordSession(session); err != nil {
		slog.Warn("Failed to record debate session", "id", session.ID, "error", err)
	}
}

func (e *Engine) updateSession(session *core.Session) {
	if e.store == nil {
		return
	}
	if err := e.store.UpdateSession(session); err != nil {
		slog.Warn("Failed to update debate session", "id", session.ID, "error", err)
	}
}

func (e *Engine) failSession(session *core.Session) {
	session.Status = core.StatusFailed
	e.updateSession(session)
}
