package domain

import (
	"context"
	"time"
)

// MonthlyTrend is a single point of the seasonal price curve
type MonthlyTrend struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

// HistoricalComparison is the band of prices comparable properties sold for
type HistoricalComparison struct {
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
}

// PredictionResult represents the valuation returned to clients
type PredictionResult struct {
	PredictedPrice       float64              `json:"predicted_price"`
	Confidence           float64              `json:"confidence"`
	PotentialIncrease    float64              `json:"potential_increase"`
	RecommendedActions   []string             `json:"recommended_actions"`
	HistoricalComparison HistoricalComparison `json:"historical_comparison"`
	MonthlyTrends        []MonthlyTrend       `json:"monthly_trends"`
}

// Estimator is the trained regression function mapping features to a raw price.
// Implementations must be safe for concurrent use and must not mutate state
// while serving predictions.
type Estimator interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// RandomSource yields uniform values in [0, 1)
type RandomSource interface {
	Float64() float64
}

// PredictionLog is a persisted record of one served prediction
type PredictionLog struct {
	ID         string             `json:"id"`
	RequestID  string             `json:"request_id,omitempty"`
	Attributes PropertyAttributes `json:"attributes"`
	Result     PredictionResult   `json:"result"`
	Estimator  string             `json:"estimator"`
	CreatedAt  time.Time          `json:"created_at"`
}
