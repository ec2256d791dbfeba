package service

import (
	"fmt"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/pkg/utils"
)

// Caps used to scale raw attributes into [0, 1]
const (
	maxSqft        = 5000.0
	maxBedrooms    = 6.0
	maxBathrooms   = 4.0
	maxRating      = 10.0
	maxPropertyAge = 50.0
	maxTypeCode    = 3.0
)

// NormalizeFeatures maps raw attributes onto the fixed-shape estimator input
func NormalizeFeatures(attrs domain.PropertyAttributes) (domain.FeatureVector, error) {
	raw := domain.FeatureVector{
		attrs.Sqft / maxSqft,
		float64(attrs.Bedrooms) / maxBedrooms,
		attrs.Bathrooms / maxBathrooms,
		float64(attrs.LocationRating) / maxRating,
		float64(attrs.PropertyAge) / maxPropertyAge,
		boolFeature(attrs.HasGarage),
		boolFeature(attrs.HasPool),
		float64(attrs.SchoolQuality) / maxRating,
		float64(attrs.CrimeRate) / maxRating,
		propertyTypeCode(attrs.PropertyType) / maxTypeCode,
	}

	var features domain.FeatureVector
	for i, v := range raw {
		if !utils.IsFinite(v) {
			return domain.FeatureVector{}, fmt.Errorf("normalizer: feature %d: %w", i, domain.ErrNonFiniteFeature)
		}
		features[i] = utils.Clamp(v, 0, 1)
	}

	return features, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// propertyTypeCode returns the ordinal of t; unknown types encode as apartment
func propertyTypeCode(t domain.PropertyType) float64 {
	switch t {
	case domain.PropertyTypeApartment:
		return 0
	case domain.PropertyTypeTownhouse:
		return 1
	case domain.PropertyTypeSingleFamily:
		return 2
	case domain.PropertyTypeCondo:
		return 3
	default:
		return 0
	}
}
