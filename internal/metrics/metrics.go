package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/homevalue/backend/internal/domain"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	// Prediction Pipeline Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of price predictions by property type and outcome",
		},
		[]string{"property_type", "outcome"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of the prediction pipeline in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	PredictionLogErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_log_errors_total",
			Help: "Total number of prediction logs that failed to persist",
		},
	)

	// Estimator Metrics
	EstimatorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_requests_total",
			Help: "Total number of estimator calls by estimator and outcome",
		},
		[]string{"estimator", "outcome"}, // outcome: "success", "failure", "rejected", "fallback"
	)

	EstimatorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimator_request_duration_seconds",
			Help:    "Duration of estimator calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"estimator"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records API request metrics
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordPrediction records the outcome of one pipeline run
func RecordPrediction(propertyType domain.PropertyType, err error, duration time.Duration) {
	label := string(propertyType)
	if !propertyType.Known() {
		label = "unknown"
	}

	outcome := "success"
	var compErr *domain.ComputationError
	if errors.As(err, &compErr) {
		outcome = "error_" + compErr.Stage
	} else if err != nil {
		outcome = "error"
	}

	PredictionsTotal.WithLabelValues(label, outcome).Inc()
	PredictionDuration.Observe(duration.Seconds())
}

// RecordEstimatorCall records one call against a named estimator
func RecordEstimatorCall(estimator, outcome string, duration time.Duration) {
	EstimatorRequests.WithLabelValues(estimator, outcome).Inc()
	EstimatorDuration.WithLabelValues(estimator).Observe(duration.Seconds())
}
