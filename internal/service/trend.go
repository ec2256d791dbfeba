package service

import (
	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/pkg/utils"
)

// Months labels the trend curve in calendar order
var Months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// seasonality models demand over the year (typically higher in summer)
var seasonality = [12]float64{0.97, 0.98, 1.00, 1.02, 1.04, 1.05, 1.03, 1.02, 1.00, 0.99, 0.98, 0.96}

const (
	jitterMin  = 0.98
	jitterSpan = 0.04
)

// SynthesizeTrend expands a price into a 12 month seasonal curve with bounded jitter
func SynthesizeTrend(price float64, rnd domain.RandomSource) []domain.MonthlyTrend {
	trend := make([]domain.MonthlyTrend, len(Months))
	for i, month := range Months {
		jitter := jitterMin + rnd.Float64()*jitterSpan
		trend[i] = domain.MonthlyTrend{
			Month: month,
			Price: utils.RoundTo(price*seasonality[i]*jitter, 2),
		}
	}
	return trend
}
