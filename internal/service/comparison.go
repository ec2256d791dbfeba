package service

import "github.com/homevalue/backend/internal/domain"

const (
	historicalAverageFactor = 0.90
	historicalMinimumFactor = 0.75
	historicalMaximumFactor = 1.15
)

// CompareHistorical derives the band comparable properties traded in
func CompareHistorical(price float64) domain.HistoricalComparison {
	return domain.HistoricalComparison{
		Average: price * historicalAverageFactor,
		Minimum: price * historicalMinimumFactor,
		Maximum: price * historicalMaximumFactor,
	}
}
