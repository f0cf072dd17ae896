package selling

// shippingEstimates holds the suggested shipping cost per category slug.
// Vehicles are zero because they are usually local pickup.
var shippingEstimates = map[string]float64{
	"electronics": 15.00,
	"jewelry":     8.00,
	"books":       5.00,
	"fashion":     10.00,
	"home":        25.00,
	"vehicles":    0.00,
	"art":         20.00,
	"antiques":    30.00,
	"sports":      15.00,
	"other":       12.00,
}

// EstimateShipping suggests a shipping cost for a category slug. ok is false
// when the category has no suggestion.
func EstimateShipping(category string) (cost float64, ok bool) {
	cost, ok = shippingEstimates[category]
	return cost, ok
}
