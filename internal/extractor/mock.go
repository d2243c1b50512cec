package extractor

import (
	"context"
	"sync"
)

// MockClient implements Client with canned responses.
type MockClient struct {
	Records []RawRecord
	Err     error

	mu    sync.Mutex
	calls int
	seen  [][]byte
}

// NewMockClient creates a MockClient returning records or err.
func NewMockClient(records []RawRecord, err error) *MockClient {
	return &MockClient{Records: records, Err: err}
}

// Extract returns the canned records or error and records the call.
func (m *MockClient) Extract(ctx context.Context, pdf []byte) ([]RawRecord, error) {
	m.mu.Lock()
	m.calls++
	m.seen = append(m.seen, pdf)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]RawRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// Calls returns how many times Extract was invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Inputs returns the PDF payloads passed to Extract.
func (m *MockClient) Inputs() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.seen))
	copy(out, m.seen)
	return out
}
