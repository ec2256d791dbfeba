package service

import (
	"context"

	"github.com/homevalue/backend/internal/domain"
)

// fixedRandom always returns the same draw
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// stubEstimator returns a fixed raw price and remembers its input
type stubEstimator struct {
	price    float64
	err      error
	received domain.FeatureVector
}

func (s *stubEstimator) Predict(_ context.Context, features domain.FeatureVector) (float64, error) {
	s.received = features
	return s.price, s.err
}

// excellentProperty meets none of the recommendation rule conditions
func excellentProperty() domain.PropertyAttributes {
	return domain.PropertyAttributes{
		Sqft:           2000,
		Bedrooms:       3,
		Bathrooms:      2,
		LocationRating: 8,
		PropertyAge:    10,
		HasGarage:      true,
		HasPool:        true,
		SchoolQuality:  8,
		CrimeRate:      3,
		PropertyType:   domain.PropertyTypeSingleFamily,
	}
}
