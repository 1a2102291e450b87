package mocks

import (
	"context"
	"sync"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/notifier"
)

// MockTaskNotifier implements notifier.TaskNotifier for testing. It
// records every broadcast task so tests can assert on exactly-once
// delivery semantics.
type MockTaskNotifier struct {
	mu        sync.Mutex
	broadcast []domain.Task

	// BroadcastFn optionally overrides the recording behavior.
	BroadcastFn func(ctx context.Context, task *domain.Task)
}

// Ensure MockTaskNotifier implements notifier.TaskNotifier
var _ notifier.TaskNotifier = (*MockTaskNotifier)(nil)

func (m *MockTaskNotifier) Broadcast(ctx context.Context, task *domain.Task) {
	if m.BroadcastFn != nil {
		m.BroadcastFn(ctx, task)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcast = append(m.broadcast, *task)
}

// Broadcasts returns a copy of all tasks broadcast so far.
func (m *MockTaskNotifier) Broadcasts() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Task, len(m.broadcast))
	copy(out, m.broadcast)
	return out
}

// Reset clears the recorded broadcasts.
func (m *MockTaskNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcast = nil
}
