// Package service implements the valuation pipeline and the synthetic
// historical data served alongside it.
package service

import (
	"github.com/homevalue/backend/internal/domain"
)

// PredictionRepository is re-exported from domain for convenience
type PredictionRepository = domain.PredictionRepository
