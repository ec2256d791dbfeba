package domain

// PropertyType identifies the category of a residential property
type PropertyType string

// Known property types. Any other value is accepted and handled by explicit
// default arms wherever a property type is interpreted.
const (
	PropertyTypeApartment    PropertyType = "apartment"
	PropertyTypeTownhouse    PropertyType = "townhouse"
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeCondo        PropertyType = "condo"
)

// PropertyTypes lists the known property types in ordinal order
var PropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeTownhouse,
	PropertyTypeSingleFamily,
	PropertyTypeCondo,
}

// Known reports whether t is one of the enumerated property types
func (t PropertyType) Known() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeTownhouse, PropertyTypeSingleFamily, PropertyTypeCondo:
		return true
	default:
		return false
	}
}

// PropertyAttributes represents the raw description of a property submitted for valuation
type PropertyAttributes struct {
	Sqft           float64      `json:"sqft"`
	Bedrooms       int          `json:"bedrooms"`
	Bathrooms      float64      `json:"bathrooms"`
	LocationRating int          `json:"location_rating"` // 1-10
	PropertyAge    int          `json:"property_age"`    // years
	HasGarage      bool         `json:"has_garage"`
	HasPool        bool         `json:"has_pool"`
	SchoolQuality  int          `json:"school_quality"` // 1-10
	CrimeRate      int          `json:"crime_rate"`     // 1-10, lower is better
	PropertyType   PropertyType `json:"property_type"`
}

// FeatureCount is the length of the estimator input vector
const FeatureCount = 10

// FeatureVector is the normalized estimator input. Positions follow
// sqft, bedrooms, bathrooms, location_rating, property_age, has_garage,
// has_pool, school_quality, crime_rate, property_type_code.
type FeatureVector [FeatureCount]float64

// HistoricalRecord represents one synthetic past valuation
type HistoricalRecord struct {
	ID             int          `json:"id"`
	Date           string       `json:"date"`
	PropertyType   PropertyType `json:"property_type"`
	Sqft           int          `json:"sqft"`
	Bedrooms       int          `json:"bedrooms"`
	Bathrooms      float64      `json:"bathrooms"`
	LocationRating int          `json:"location_rating"`
	PropertyAge    int          `json:"property_age"`
	HasGarage      bool         `json:"has_garage"`
	HasPool        bool         `json:"has_pool"`
	SchoolQuality  int          `json:"school_quality"`
	CrimeRate      int          `json:"crime_rate"`
	PredictedPrice float64      `json:"predicted_price"`
	ActualPrice    float64      `json:"actual_price"`
	SalePrice      float64      `json:"sale_price"`
}
