package llm

import (
	"context"

	"csvalign/ports"
)

// MockClient is a mock completion client for testing
type MockClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors

	Calls   int
	LastReq ports.CompletionRequest
}

func (m *MockClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	m.Calls++
	m.LastReq = req
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}
