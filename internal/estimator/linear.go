package estimator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/pkg/utils"
)

var (
	// ErrInvalidModel is returned for a model with missing or non-finite parameters
	ErrInvalidModel = errors.New("invalid model")

	// ErrSingularSystem is returned when the training data cannot determine the model
	ErrSingularSystem = errors.New("singular normal equations")
)

// LinearModel is an ordinary least squares regression over the feature vector.
// It is immutable once fitted and safe for concurrent use.
type LinearModel struct {
	Intercept float64                      `json:"intercept"`
	Weights   [domain.FeatureCount]float64 `json:"weights"`
	Samples   int                          `json:"samples"`
	Seed      uint64                       `json:"seed"`
	TrainedAt time.Time                    `json:"trained_at"`
}

// Name identifies the estimator in logs and metrics
func (m *LinearModel) Name() string {
	return "linear"
}

// Predict returns the raw price for a feature vector
func (m *LinearModel) Predict(_ context.Context, features domain.FeatureVector) (float64, error) {
	price := m.Intercept
	for i, w := range m.Weights {
		price += w * features[i]
	}
	return price, nil
}

// Validate checks that every parameter is finite and the model was trained
func (m *LinearModel) Validate() error {
	if m.Samples <= 0 {
		return fmt.Errorf("estimator: model has no training samples: %w", ErrInvalidModel)
	}
	if !utils.IsFinite(m.Intercept) {
		return fmt.Errorf("estimator: intercept is not finite: %w", ErrInvalidModel)
	}
	for i, w := range m.Weights {
		if !utils.IsFinite(w) {
			return fmt.Errorf("estimator: weight %d is not finite: %w", i, ErrInvalidModel)
		}
	}
	return nil
}

// Fit solves the least squares problem for the given samples
func Fit(x []domain.FeatureVector, y []float64) (*LinearModel, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("estimator: need matching non-empty samples, got %d rows and %d targets", len(x), len(y))
	}

	// Column 0 is the intercept term.
	const n = domain.FeatureCount + 1
	var a [n][n + 1]float64

	for row, features := range x {
		var design [n]float64
		design[0] = 1
		copy(design[1:], features[:])

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				a[i][j] += design[i] * design[j]
			}
			a[i][n] += design[i] * y[row]
		}
	}

	coef, err := solve(a)
	if err != nil {
		return nil, err
	}

	model := &LinearModel{
		Intercept: coef[0],
		Samples:   len(x),
		TrainedAt: time.Now().UTC(),
	}
	copy(model.Weights[:], coef[1:])

	return model, nil
}

// solve runs Gaussian elimination with partial pivoting on an augmented matrix
func solve(a [domain.FeatureCount + 1][domain.FeatureCount + 2]float64) ([domain.FeatureCount + 1]float64, error) {
	const n = domain.FeatureCount + 1
	var out [n]float64

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return out, fmt.Errorf("estimator: column %d: %w", col, ErrSingularSystem)
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k <= n; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	for row := n - 1; row >= 0; row-- {
		sum := a[row][n]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * out[k]
		}
		out[row] = sum / a[row][row]
	}

	return out, nil
}
