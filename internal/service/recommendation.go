package service

import "github.com/homevalue/backend/internal/domain"

// Recommendation messages, in rule evaluation order
const (
	MsgLocation   = "Location is a challenge. Consider properties in better neighborhoods for higher value."
	MsgRenovation = "Consider renovations to modernize the property and increase its value."
	MsgGarage     = "Adding a garage could increase property value by 5-10%."
	MsgPool       = "For larger properties, adding a pool could be a worthwhile investment."
	MsgSchools    = "Property value is affected by school ratings. Consider properties in better school districts."
	MsgSafety     = "High crime rates significantly impact property values. Consider safer neighborhoods."
	MsgExcellent  = "This property already has excellent features. Maintain the condition to preserve value."
)

type recommendationRule struct {
	applies func(domain.PropertyAttributes) bool
	message string
}

// recommendationRules is evaluated top to bottom; callers rely on the order
var recommendationRules = []recommendationRule{
	{func(a domain.PropertyAttributes) bool { return a.LocationRating < 7 }, MsgLocation},
	{func(a domain.PropertyAttributes) bool { return a.PropertyAge > 20 }, MsgRenovation},
	{func(a domain.PropertyAttributes) bool { return !a.HasGarage }, MsgGarage},
	{func(a domain.PropertyAttributes) bool { return !a.HasPool && a.Sqft > 2000 }, MsgPool},
	{func(a domain.PropertyAttributes) bool { return a.SchoolQuality < 7 }, MsgSchools},
	{func(a domain.PropertyAttributes) bool { return a.CrimeRate > 5 }, MsgSafety},
}

// Recommend lists improvement suggestions derived from raw attribute values.
// The result is never empty.
func Recommend(attrs domain.PropertyAttributes) []string {
	actions := make([]string, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.applies(attrs) {
			actions = append(actions, rule.message)
		}
	}

	if len(actions) == 0 {
		actions = append(actions, MsgExcellent)
	}

	return actions
}
