package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrMockRemote is the default failure returned by MockTranslator
var ErrMockRemote = errors.New("mock remote failure")

// MockTranslator mocks a remote translation backend
type MockTranslator struct {
	// Responses maps input text to the translation to return
	Responses map[string]string
	// Errors maps input text to an error to return on every call
	Errors map[string]error
	// FailFirst makes the first N calls fail regardless of input
	FailFirst int
	// Prefix is prepended to unknown inputs; defaults to "bn:"
	Prefix string

	mu    sync.Mutex
	calls []string
}

// Translate records the call and returns the configured response
func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	n := len(m.calls)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if n <= m.FailFirst {
		return "", fmt.Errorf("call %d: %w", n, ErrMockRemote)
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if resp, ok := m.Responses[text]; ok {
		return resp, nil
	}

	prefix := m.Prefix
	if prefix == "" {
		prefix = "bn:"
	}
	return prefix + text, nil
}

// Calls returns the inputs seen so far, in order
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Translate was called
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// AlwaysFail returns a MockTranslator whose every call fails
func AlwaysFail() *MockTranslator {
	return &MockTranslator{FailFirst: int(^uint(0) >> 1)}
}
