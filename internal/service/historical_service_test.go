package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevalue/backend/internal/domain"
)

func TestHistoricalService_Records(t *testing.T) {
	records := NewHistoricalService(DefaultHistoricalSeed).GetHistoricalData()
	require.Len(t, records, 10)

	for i, r := range records {
		id := i + 1
		assert.Equal(t, id, r.ID)
		assert.Equal(t, fmt.Sprintf("2023-%02d-01", id), r.Date)
		assert.Equal(t, domain.PropertyTypes[id%4], r.PropertyType)

		assert.GreaterOrEqual(t, r.Sqft, 1000)
		assert.Less(t, r.Sqft, 4000)
		assert.GreaterOrEqual(t, r.Bedrooms, 1)
		assert.Less(t, r.Bedrooms, 6)
		assert.GreaterOrEqual(t, r.Bathrooms, 0.5)
		assert.LessOrEqual(t, r.Bathrooms, 3.5)
		assert.GreaterOrEqual(t, r.LocationRating, 3)
		assert.Less(t, r.LocationRating, 10)
		assert.GreaterOrEqual(t, r.PropertyAge, 1)
		assert.Less(t, r.PropertyAge, 40)
		assert.GreaterOrEqual(t, r.SchoolQuality, 4)
		assert.Less(t, r.SchoolQuality, 10)
		assert.GreaterOrEqual(t, r.CrimeRate, 1)
		assert.Less(t, r.CrimeRate, 8)

		assert.Equal(t, r.ActualPrice, r.SalePrice)
		assert.InDelta(t, r.PredictedPrice, r.ActualPrice, 0.1*absFloat(r.PredictedPrice)+0.01)
	}
}

func TestHistoricalService_StableForSeed(t *testing.T) {
	svc := NewHistoricalService(DefaultHistoricalSeed)
	assert.Equal(t, svc.GetHistoricalData(), svc.GetHistoricalData())
	assert.NotEqual(t, svc.GetHistoricalData(), NewHistoricalService(7).GetHistoricalData())
}

func TestHeuristicPrice(t *testing.T) {
	base := domain.HistoricalRecord{
		PropertyType:   domain.PropertyTypeSingleFamily,
		Sqft:           2000,
		Bedrooms:       3,
		Bathrooms:      2,
		LocationRating: 5,
		SchoolQuality:  5,
		CrimeRate:      3,
	}
	assert.Equal(t, 400000.0, heuristicPrice(base))

	base.HasGarage = true
	base.HasPool = true
	base.PropertyAge = 10
	assert.Equal(t, 450000.0, heuristicPrice(base))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
