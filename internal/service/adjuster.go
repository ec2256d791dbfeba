package service

import "github.com/homevalue/backend/internal/domain"

// AdjustPrice applies the property type correction to a raw estimate.
// The unknown-type fallback is the identity and is deliberately separate from
// the apartment multiplier.
func AdjustPrice(raw float64, propertyType domain.PropertyType) float64 {
	return raw * priceFactor(propertyType)
}

func priceFactor(t domain.PropertyType) float64 {
	switch t {
	case domain.PropertyTypeApartment:
		return 1.00
	case domain.PropertyTypeTownhouse:
		return 1.05
	case domain.PropertyTypeSingleFamily:
		return 1.10
	case domain.PropertyTypeCondo:
		return 0.95
	default:
		return 1.00
	}
}
