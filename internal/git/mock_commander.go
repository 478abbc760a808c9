package git

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockCommander is a test double for Runner.
// It answers invocations from a table keyed by the space-joined arguments
// and records every call in order.
type MockCommander struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     [][]string
}

type mockResponse struct {
	out string
	err error
}

// NewMockCommander creates an empty MockCommander.
func NewMockCommander() *MockCommander {
	return &MockCommander{responses: make(map[string]mockResponse)}
}

// On registers the output returned for args.
func (m *MockCommander) On(out string, args ...string) *MockCommander {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[strings.Join(args, " ")] = mockResponse{out: out}
	return m
}

// Fail registers the error returned for args.
func (m *MockCommander) Fail(err error, args ...string) *MockCommander {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[strings.Join(args, " ")] = mockResponse{err: err}
	return m
}

// Run returns the registered response. Unregistered invocations fail with a
// CommandError so that unexpected calls surface in tests.
func (m *MockCommander) Run(ctx context.Context, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]string(nil), args...))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, ok := m.responses[strings.Join(args, " ")]
	if !ok {
		return "", &CommandError{Args: args, ExitCode: 128, Stderr: fmt.Sprintf("unexpected invocation: git %s", strings.Join(args, " "))}
	}
	return strings.TrimRight(resp.out, " \t\r\n"), resp.err
}

// Calls returns the invocations received so far.
func (m *MockCommander) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times args was invoked.
func (m *MockCommander) CallCount(args ...string) int {
	key := strings.Join(args, " ")
	n := 0
	for _, c := range m.Calls() {
		if strings.Join(c, " ") == key {
			n++
		}
	}
	return n
}

// Compile-time interface conformance check.
var _ Commander = (*MockCommander)(nil)
