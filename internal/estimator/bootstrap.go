package estimator

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/logging"
)

// DefaultSamples is the size of the synthetic training set
const DefaultSamples = 1000

// basePrices indexed by sample row modulo 4
var basePrices = [4]float64{200000, 300000, 400000, 250000}

// Synthesize generates training data with realistic feature effects
func Synthesize(seed uint64, samples int) ([]domain.FeatureVector, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	x := make([]domain.FeatureVector, samples)
	y := make([]float64, samples)

	for i := 0; i < samples; i++ {
		var f domain.FeatureVector
		for j := range f {
			f[j] = rng.Float64()
		}

		price := basePrices[i%len(basePrices)]
		price += f[0] * 200000      // sqft
		price += f[1] * 50000       // bedrooms
		price += f[2] * 30000       // bathrooms
		price += f[3] * 100000      // location
		price -= (1 - f[4]) * 50000 // age, newer is better
		price += f[5] * 30000       // garage
		price += f[6] * 40000       // pool
		price += f[7] * 60000       // school quality
		price -= (1 - f[8]) * 70000 // crime, lower is better

		price *= 0.9 + rng.Float64()*0.2

		x[i] = f
		y[i] = price
	}

	return x, y
}

// Bootstrap fits a fresh model on synthetic data
func Bootstrap(seed uint64, samples int) (*LinearModel, error) {
	x, y := Synthesize(seed, samples)
	model, err := Fit(x, y)
	if err != nil {
		return nil, fmt.Errorf("estimator: failed to fit bootstrap model: %w", err)
	}
	model.Seed = seed
	return model, nil
}

// Load reads a persisted model
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("estimator: failed to read model: %w", err)
	}

	var model LinearModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("estimator: failed to decode model %s: %w", path, err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	return &model, nil
}

// Save persists the model, replacing any existing file atomically
func (m *LinearModel) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("estimator: failed to encode model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("estimator: failed to create model directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("estimator: failed to write model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("estimator: failed to replace model: %w", err)
	}

	return nil
}

// LoadOrBootstrap loads the model at path, or fits and saves a new one when the
// file does not exist. An empty path skips persistence.
func LoadOrBootstrap(path string, seed uint64) (*LinearModel, error) {
	if path != "" {
		model, err := Load(path)
		if err == nil {
			logging.Info().Str("path", path).Int("samples", model.Samples).Msg("Loaded existing model")
			return model, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	logging.Info().Uint64("seed", seed).Int("samples", DefaultSamples).Msg("Creating model from synthetic data")
	model, err := Bootstrap(seed, DefaultSamples)
	if err != nil {
		return nil, err
	}

	if path != "" {
		if err := model.Save(path); err != nil {
			return nil, err
		}
		logging.Info().Str("path", path).Msg("Saved model")
	}

	return model, nil
}
