package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted client for tests and offline runs. Responses are
// returned in order and cycle when exhausted. When Err is set, it is returned
// from every call, or from the first call after FailAfter successful ones.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	FailAfter int
	Calls     []MockCall
}

// MockCall records the prompts of one Complete invocation.
type MockCall struct {
	System string
	User   string
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{System: system, User: user})

	if m.Err != nil && len(m.Calls) > m.FailAfter {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	return m.Responses[(len(m.Calls)-1)%len(m.Responses)], nil
}

// CallCount returns how many times Complete was invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
