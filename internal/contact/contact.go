// Package contact drafts and improves contact-form messages.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/alienxp03/folio/internal/llm"
)

const assistantSystem = "You are a helpful assistant that drafts short, professional messages " +
	"for a portfolio website contact form. Keep messages friendly, concise, and on-topic."

// Service generates contact message drafts. Each operation is a single
// model call with no shared state between requests.
type Service struct {
	client llm.Client
}

// New creates a contact drafting service.
func New(client llm.Client) *Service {
	return &Service{client: client}
}

// Draft generates a concise, friendly contact message for the sender.
// Target 80-140 words, warm tone, no scheduling commitments, signed off
// with the sender's name.
func (s *Service) Draft(ctx context.Context, name, email, subject string) (string, error) {
	prompt := fmt.Sprintf(`Draft a message to include in a contact form. Personalize it to the sender.
Sender name: %s
Sender email: %s
Subject: %s

Constraints:
- Keep between 80 and 140 words.
- Warm and professional tone.
- Do not include the subject on the message.
- Avoid commitments or scheduling.
- Include a brief sign-off with the sender name.`, name, email, subject)

	draft, err := s.client.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to draft contact message: %w", err)
	}
	return strings.TrimSpace(draft), nil
}

// Improve rewrites a draft according to the user's comment, preserving the
// original intent and any existing sign-off.
func (s *Service) Improve(ctx context.Context, draft, comment string) (string, error) {
	prompt := fmt.Sprintf(`You will receive a contact message draft and a user comment explaining how to improve it.
Do not add a subject line. Preserve the original intent and a brief sign-off if present.

Draft:
%s

User comment:
%s

Return only the improved message.`, draft, comment)

	improved, err := s.client.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to improve contact draft: %w", err)
	}
	return strings.TrimSpace(improved), nil
}
