package domain

import "context"

// PredictionRepository defines the interface for prediction log persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type PredictionRepository interface {
	// EnsureSchema creates the tables the repository writes to
	EnsureSchema(ctx context.Context) error

	// SavePredictionLog persists a served prediction
	SavePredictionLog(ctx context.Context, entry PredictionLog) error

	// ListRecentPredictions returns the newest logs first
	ListRecentPredictions(ctx context.Context, limit int) ([]PredictionLog, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
