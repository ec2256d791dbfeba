package service

import (
	"context"
	"fmt"
	"time"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/metrics"
	"github.com/homevalue/backend/pkg/utils"
)

const (
	confidenceMin  = 85.0
	confidenceSpan = 10.0

	// optimalFactor is the price reachable under optimal conditions
	optimalFactor = 1.25
)

// PredictionService composes the valuation pipeline around an estimator
type PredictionService struct {
	estimator domain.Estimator
	random    domain.RandomSource
}

// NewPredictionService creates a new prediction service.
// A nil random source selects DefaultRandom.
func NewPredictionService(estimator domain.Estimator, random domain.RandomSource) *PredictionService {
	if random == nil {
		random = DefaultRandom()
	}
	return &PredictionService{
		estimator: estimator,
		random:    random,
	}
}

// Predict values a property. Every failure is returned as a *domain.ComputationError
// and no partial result is produced.
func (s *PredictionService) Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.PredictionResult, error) {
	start := time.Now()
	result, err := s.predict(ctx, attrs)
	metrics.RecordPrediction(attrs.PropertyType, err, time.Since(start))
	return result, err
}

func (s *PredictionService) predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.PredictionResult, error) {
	features, err := NormalizeFeatures(attrs)
	if err != nil {
		return fail(domain.StageNormalize, err)
	}

	raw, err := s.estimator.Predict(ctx, features)
	if err != nil {
		return fail(domain.StageEstimate, err)
	}
	if !utils.IsFinite(raw) {
		return fail(domain.StageEstimate, fmt.Errorf("estimator returned %v: %w", raw, domain.ErrInvalidPrice))
	}

	price := AdjustPrice(raw, attrs.PropertyType)
	if !utils.IsFinite(price) || price <= 0 {
		return fail(domain.StageAdjust, fmt.Errorf("adjusted price %v: %w", price, domain.ErrInvalidPrice))
	}

	increase, err := potentialIncrease(price)
	if err != nil {
		return fail(domain.StageAnalytics, err)
	}

	comparison := CompareHistorical(price)
	trend := SynthesizeTrend(price, s.random)

	return domain.PredictionResult{
		PredictedPrice:     utils.RoundTo(price, 2),
		Confidence:         utils.RoundTo(confidenceMin+s.random.Float64()*confidenceSpan, 1),
		PotentialIncrease:  utils.RoundTo(increase, 1),
		RecommendedActions: Recommend(attrs),
		HistoricalComparison: domain.HistoricalComparison{
			Average: utils.RoundTo(comparison.Average, 2),
			Maximum: utils.RoundTo(comparison.Maximum, 2),
			Minimum: utils.RoundTo(comparison.Minimum, 2),
		},
		MonthlyTrends: trend,
	}, nil
}

// potentialIncrease is the percentage gain of the optimal price over price
func potentialIncrease(price float64) (float64, error) {
	if price == 0 {
		return 0, fmt.Errorf("potential increase: division by zero: %w", domain.ErrInvalidPrice)
	}
	optimal := price * optimalFactor
	return (optimal - price) / price * 100, nil
}

func fail(stage string, err error) (domain.PredictionResult, error) {
	return domain.PredictionResult{}, &domain.ComputationError{Stage: stage, Err: err}
}
