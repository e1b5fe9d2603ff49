package debate

import (
	"context"
	"fmt"
	"strings"

	"github.com/alienxp03/folio/internal/llm"
)

// Fallback stance labels used when the model's answer cannot be parsed.
const (
	FallbackPosition1 = "Supporting the topic"
	FallbackPosition2 = "Opposing the topic"
)

const positionSystem = "You are an expert at identifying opposing viewpoints on any topic or question."

// ExtractPositions asks the model to split a topic into two opposing stances.
// Malformed model output never fails: the tolerant parser falls back to
// generic labels. Only a failed model call returns an error.
func ExtractPositions(ctx context.Context, client llm.Client, topic string) (string, string, error) {
	prompt := fmt.Sprintf(`Given this topic or question: '%s'

Identify two clear, opposing positions that could be debated. Respond with ONLY two brief position statements (max 10 words each), one per line:
Position 1: [brief statement]
Position 2: [brief statement]`, topic)

	response, err := client.Complete(ctx, positionSystem, prompt)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract positions: %w", err)
	}

	position1, position2 := parsePositions(response)
	return position1, position2, nil
}

// parsePositions splits the model's answer into two stance labels. It takes
// the first two non-empty lines, strips the literal "Position N:" prefixes,
// and substitutes fallbacks for anything missing.
func parsePositions(text string) (string, string) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	position1 := FallbackPosition1
	position2 := FallbackPosition2

	if len(lines) > 0 {
		if p := stripPrefix(lines[0], "Position 1:"); p != "" {
			position1 = p
		}
	}
	if len(lines) > 1 {
		if p := stripPrefix(lines[1], "Position 2:"); p != "" {
			position2 = p
		}
	}

	return position1, position2
}

func stripPrefix(line, prefix string) string {
	return strings.TrimSpace(strings.Replace(line, prefix, "", 1))
}
