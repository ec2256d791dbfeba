package estimator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/logging"
	"github.com/homevalue/backend/internal/metrics"
)

const remoteName = "remote"

// ErrRateLimited is returned when the outbound call budget is exhausted
var ErrRateLimited = errors.New("estimator: remote rate limit exceeded")

// RemoteEstimator calls an external model service for raw prices
type RemoteEstimator struct {
	serviceURL string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[float64]
	fallback   domain.Estimator
	limiter    *rate.Limiter
}

// RemoteOption configures a RemoteEstimator
type RemoteOption func(*RemoteEstimator)

// WithRateLimit caps outbound calls at rps requests per second. Calls over the
// limit are answered by the fallback. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) RemoteOption {
	return func(e *RemoteEstimator) {
		if rps <= 0 {
			e.limiter = nil
			return
		}
		e.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

type remoteRequest struct {
	Features []float64 `json:"features"`
}

type remoteResponse struct {
	Price float64 `json:"price"`
}

// NewRemoteEstimator creates a client for the model service at serviceURL.
// When fallback is non-nil it answers whenever the remote call fails or the
// circuit is open.
func NewRemoteEstimator(serviceURL string, timeout time.Duration, fallback domain.Estimator, opts ...RemoteOption) *RemoteEstimator {
	metrics.CircuitBreakerState.WithLabelValues(remoteName).Set(0)

	cb := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        remoteName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	e := &RemoteEstimator{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb:       cb,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the estimator in logs and metrics
func (e *RemoteEstimator) Name() string {
	return remoteName
}

// Predict asks the model service for a price
func (e *RemoteEstimator) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	start := time.Now()
	var (
		price float64
		err   error
	)
	if e.limiter != nil && !e.limiter.Allow() {
		err = ErrRateLimited
	} else {
		price, err = e.cb.Execute(func() (float64, error) {
			return e.call(ctx, features)
		})
	}
	if err == nil {
		metrics.RecordEstimatorCall(remoteName, "success", time.Since(start))
		return price, nil
	}

	outcome := "failure"
	switch {
	case errors.Is(err, ErrRateLimited):
		outcome = "rate_limited"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	}
	metrics.RecordEstimatorCall(remoteName, outcome, time.Since(start))

	if e.fallback == nil {
		return 0, err
	}

	logging.Warn().Err(err).Str("fallback", Describe(e.fallback)).Msg("Remote estimator unavailable, using fallback")
	fallbackStart := time.Now()
	price, err = e.fallback.Predict(ctx, features)
	if err != nil {
		metrics.RecordEstimatorCall(Describe(e.fallback), "failure", time.Since(fallbackStart))
		return 0, fmt.Errorf("estimator: fallback failed: %w", err)
	}
	metrics.RecordEstimatorCall(Describe(e.fallback), "fallback", time.Since(fallbackStart))

	return price, nil
}

func (e *RemoteEstimator) call(ctx context.Context, features domain.FeatureVector) (float64, error) {
	body, err := json.Marshal(remoteRequest{Features: features[:]})
	if err != nil {
		return 0, fmt.Errorf("estimator: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", e.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("estimator: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("estimator: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("estimator: model service returned status %d", resp.StatusCode)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("estimator: failed to decode response: %w", err)
	}

	return out.Price, nil
}

// Health checks model service connectivity
func (e *RemoteEstimator) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", e.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("estimator: failed to create health request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("estimator: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("estimator: health check returned status %d", resp.StatusCode)
	}

	return nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
