// Package push sends multicast device notifications. The concrete transport
// is Firebase Cloud Messaging; a mock sender is provided for tests and for
// running without credentials.
package push

import (
	"context"
	"fmt"
	"sync"
)

// Message is one logical notification fanned out to every token in one
// transport call. Data values are plain strings: the transport has no typed
// payload concept, so callers coerce everything to text first.
type Message struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// Result reports the per-token outcome of a multicast send.
type Result struct {
	SuccessCount int
	FailureCount int
	// InvalidTokens are tokens the transport reported as permanently
	// invalid or unregistered. They should be pruned; tokens failing for
	// transient reasons are not listed here.
	InvalidTokens []string
}

// Sender is the push transport contract.
type Sender interface {
	SendMulticast(ctx context.Context, msg Message) (*Result, error)
}

// StringifyData coerces an opaque metadata map to the string-only payload
// the transport accepts.
func StringifyData(data map[string]any) map[string]string {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

// MockSender records sent messages and returns scripted results. Safe for
// concurrent use.
type MockSender struct {
	mu       sync.Mutex
	Sent     []Message
	Result   *Result
	Err      error
}

func (m *MockSender) SendMulticast(ctx context.Context, msg Message) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Result{SuccessCount: len(msg.Tokens)}, nil
}

// SentMessages returns a copy of everything sent so far.
func (m *MockSender) SentMessages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Sent))
	copy(out, m.Sent)
	return out
}
