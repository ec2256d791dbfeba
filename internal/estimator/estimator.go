// Package estimator provides the regression capabilities behind price predictions:
// a locally fitted linear model and a client for an external model service.
package estimator

import (
	"context"

	"github.com/homevalue/backend/internal/domain"
)

// HealthChecker is implemented by estimators that depend on external services
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Describe returns the estimator's name, or "custom" when it has none
func Describe(e domain.Estimator) string {
	if named, ok := e.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "custom"
}

// Health checks e if it has external dependencies
func Health(ctx context.Context, e domain.Estimator) error {
	if hc, ok := e.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
