package debate

import (
	"fmt"
	"strings"

	"github.com/alienxp03/folio/internal/core"
)

// buildPersona constructs the fixed persona for one side of the session.
func buildPersona(speaker core.Speaker, position, topic, grounding string) core.Persona {
	return core.Persona{
		Speaker:   speaker,
		Position:  position,
		Topic:     topic,
		Grounding: grounding,
	}
}

// personaInstructions renders the system prompt for a persona. The style
// policy is fixed: short, casual, no lists, no self-reference as an AI.
func personaInstructions(p core.Persona) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You're chatting as a friend who leans toward: %s.\n", p.Position))
	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", p.Topic))
	sb.WriteString(`Style guidelines (casual chat, not a courtroom):
- Sound natural and friendly; use contractions (you're, it's, don't).
- Keep it short (1-2 sentences), conversational, no lists or bullet points.
- Build on what the other person just said; acknowledge good points.
- Ask an occasional brief question to keep it flowing.
- Avoid formal debate language, citations, or jargon.
- No role-play meta talk (don't say 'as an AI' or 'as a debater').`)

	if p.Grounding != "" {
		sb.WriteString("\n\nRecent context from the web (use it casually when relevant, don't cite sources):\n")
		sb.WriteString(p.Grounding)
	}

	return sb.String()
}

// openingPrompt is the turn 0 prompt: greet naturally, then a 1-2 sentence
// take on the topic. It references no history because there is none yet.
func openingPrompt(topic string) string {
	return fmt.Sprintf("Start a casual conversation with a greeting, then bring up: %s. "+
		"Say hello naturally, then share your take in 1-2 sentences total. Keep it light and conversational.", topic)
}

// continuationPrompt serializes the full history so far in chronological
// order, labeling each turn relative to the current speaker, and instructs
// the reply. When closing is true (the final turn) it adds the warm-close
// instruction: end with a statement, no question.
func continuationPrompt(topic string, history []core.Turn, speaker core.Speaker, closing bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Continue the casual chat about: %s\n\n", topic))
	sb.WriteString("Conversation so far (most recent last):\n")

	for _, turn := range history {
		label := "Your opponent"
		if turn.Speaker == speaker {
			label = "You"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n\n", label, turn.Message))
	}

	sb.WriteString("Reply like a friend: acknowledge what was said, add your perspective, " +
		"maybe ask a short follow-up. Keep it 1-2 sentences, no lists.")

	if closing {
		sb.WriteString(" This is your last message. Wrap up warmly and end with a concise " +
			"statement (no questions).")
	}

	return sb.String()
}
