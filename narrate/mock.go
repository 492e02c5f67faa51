package narrate

import (
	"context"
	"sync"
	"time"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// ErrNoMockResponse is returned by MockProvider when its queue is empty.
var ErrNoMockResponse = errors.New("mock provider has no response queued")

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text string
	Err  error
	// Panic, when non-nil, makes Generate panic with this value.
	Panic any
	// Delay blocks Generate until it elapses or ctx is done.
	Delay time.Duration
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Name returns "mock".
func (m *MockProvider) Name() string { return ProviderMock }

// Generate returns the next canned response or ErrNoMockResponse.
func (m *MockProvider) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return "", ErrNoMockResponse
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if resp.Panic != nil {
		panic(resp.Panic)
	}
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
