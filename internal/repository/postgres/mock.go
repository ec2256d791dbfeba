package postgres

import (
	"context"
	"sync"

	"github.com/homevalue/backend/internal/domain"
)

// DefaultMockCapacity bounds the in-memory log
const DefaultMockCapacity = 500

// MockRepository implements domain.PredictionRepository in memory for testing/demo mode
type MockRepository struct {
	mu       sync.RWMutex
	logs     []domain.PredictionLog
	capacity int
}

// NewMockRepository creates a new mock repository keeping at most capacity logs
func NewMockRepository(capacity int) *MockRepository {
	if capacity <= 0 {
		capacity = DefaultMockCapacity
	}
	return &MockRepository{capacity: capacity}
}

// EnsureSchema is a no-op in mock mode
func (r *MockRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

// SavePredictionLog keeps the log in memory, evicting the oldest beyond capacity
func (r *MockRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, entry)
	if over := len(r.logs) - r.capacity; over > 0 {
		r.logs = append(r.logs[:0:0], r.logs[over:]...)
	}
	return nil
}

// ListRecentPredictions returns stored logs, newest first
func (r *MockRepository) ListRecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.logs)
	if limit < n {
		n = limit
	}

	out := make([]domain.PredictionLog, 0, n)
	for i := len(r.logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
