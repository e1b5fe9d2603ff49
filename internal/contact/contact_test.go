package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alienxp03/folio/internal/llm"
)

func TestDraft(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"  Hello, I'm Ana and I'd love to collaborate. Best, Ana  "}}
	svc := New(mock)

	draft, err := svc.Draft(context.Background(), "Ana", "ana@example.com", "Collaboration")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft != "Hello, I'm Ana and I'd love to collaborate. Best, Ana" {
		t.Errorf("draft not trimmed: %q", draft)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 model call, got %d", mock.CallCount())
	}

	prompt := mock.Calls[0].User
	for _, want := range []string{"Ana", "ana@example.com", "Collaboration", "80 and 140 words", "sign-off"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("draft prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "Avoid commitments or scheduling") {
		t.Error("draft prompt missing the no-scheduling constraint")
	}
}

func TestDraftError(t *testing.T) {
	svc := New(&llm.MockClient{Err: errors.New("model down")})

	if _, err := svc.Draft(context.Background(), "Ana", "ana@example.com", "Hi"); err == nil {
		t.Fatal("expected error when the model call fails")
	}
}

func TestImprove(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"Improved message. Best, Ana"}}
	svc := New(mock)

	improved, err := svc.Improve(context.Background(), "Original draft. Best, Ana", "make it shorter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if improved != "Improved message. Best, Ana" {
		t.Errorf("improved = %q", improved)
	}

	prompt := mock.Calls[0].User
	if !strings.Contains(prompt, "Original draft. Best, Ana") {
		t.Error("improve prompt missing the draft")
	}
	if !strings.Contains(prompt, "make it shorter") {
		t.Error("improve prompt missing the comment")
	}
	if !strings.Contains(prompt, "sign-off") {
		t.Error("improve prompt missing the sign-off preservation instruction")
	}
}

func TestImproveIsDeterministicWithFixedModel(t *testing.T) {
	// The same scripted model and inputs must produce the same output.
	run := func() string {
		svc := New(&llm.MockClient{Responses: []string{"Stable output. Best, Ana"}})
		out, err := svc.Improve(context.Background(), "Draft. Best, Ana", "warmer tone")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("improve is not idempotent with a fixed model: %q vs %q", first, second)
	}
}
