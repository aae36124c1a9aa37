package test

import (
	"context"
	"sync"
	"time"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

// MockRunner returns a fixed dataset or error and records every call.
type MockRunner struct {
	Dataset *models.Dataset
	Err     error

	mu    sync.Mutex
	calls []RunnerCall
}

type RunnerCall struct {
	Query   string
	Params  map[string]any
	Timeout time.Duration
	MaxRows int
}

// NewMockRunner creates a MockRunner that returns ds.
func NewMockRunner(ds *models.Dataset) *MockRunner {
	return &MockRunner{Dataset: ds}
}

func (m *MockRunner) Execute(ctx context.Context, query string, params map[string]any, timeout time.Duration, maxRows int) (*models.Dataset, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RunnerCall{Query: query, Params: params, Timeout: timeout, MaxRows: maxRows})
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Dataset, nil
}

func (m *MockRunner) Close() error { return nil }

func (m *MockRunner) Calls() []RunnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunnerCall(nil), m.calls...)
}

func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
