package service

import (
	"fmt"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/pkg/utils"
)

// DefaultHistoricalSeed keeps the mock history stable across calls
const DefaultHistoricalSeed = 42

const historicalRecordCount = 10

// basePrices are the reference prices per property type
var basePrices = map[domain.PropertyType]float64{
	domain.PropertyTypeApartment:    200000,
	domain.PropertyTypeTownhouse:    300000,
	domain.PropertyTypeSingleFamily: 400000,
	domain.PropertyTypeCondo:        250000,
}

// HistoricalService generates synthetic past valuations for the history views.
// It shares no logic with the prediction pipeline.
type HistoricalService struct {
	seed uint64
}

// NewHistoricalService creates a new historical data service
func NewHistoricalService(seed uint64) *HistoricalService {
	return &HistoricalService{seed: seed}
}

// GetHistoricalData returns the mock records, identical for a given seed
func (s *HistoricalService) GetHistoricalData() []domain.HistoricalRecord {
	rng := NewSeededRandom(s.seed)
	records := make([]domain.HistoricalRecord, 0, historicalRecordCount)

	for i := 1; i <= historicalRecordCount; i++ {
		propertyType := domain.PropertyTypes[i%len(domain.PropertyTypes)]

		record := domain.HistoricalRecord{
			ID:             i,
			Date:           fmt.Sprintf("2023-%02d-01", i),
			PropertyType:   propertyType,
			Sqft:           randRange(rng, 1000, 4000),
			Bedrooms:       randRange(rng, 1, 6),
			Bathrooms:      float64(randRange(rng, 1, 8)) / 2, // 0.5, 1, 1.5, ...
			LocationRating: randRange(rng, 3, 10),
			PropertyAge:    randRange(rng, 1, 40),
			HasGarage:      rng.IntN(2) == 1,
			HasPool:        rng.IntN(2) == 1,
			SchoolQuality:  randRange(rng, 4, 10),
			CrimeRate:      randRange(rng, 1, 8),
		}

		predicted := heuristicPrice(record) * (0.95 + rng.Float64()*0.1)
		actual := predicted * (0.9 + rng.Float64()*0.2)

		record.PredictedPrice = utils.RoundTo(predicted, 2)
		record.ActualPrice = utils.RoundTo(actual, 2)
		record.SalePrice = record.ActualPrice

		records = append(records, record)
	}

	return records
}

// heuristicPrice prices a record from its attributes around a 2000 sqft, 3 bed baseline
func heuristicPrice(r domain.HistoricalRecord) float64 {
	price := basePrices[r.PropertyType] +
		float64(r.Sqft-2000)*100 +
		float64(r.Bedrooms-3)*25000 +
		(r.Bathrooms-2)*15000 +
		float64(r.LocationRating-5)*30000 -
		float64(r.PropertyAge)*2000 +
		float64(r.SchoolQuality-5)*15000 -
		float64(r.CrimeRate-3)*20000

	if r.HasGarage {
		price += 30000
	}
	if r.HasPool {
		price += 40000
	}

	return price
}

// randRange returns a value in [lo, hi)
func randRange(rng *SeededRandom, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}
