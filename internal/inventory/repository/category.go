package repository

// Product categories. The set is closed; validation rejects anything else.
const (
	CategoryVaccine            = "VACCINE"
	CategoryAntibiotics        = "ANTIBIOTICS"
	CategoryOncology           = "ONCOLOGY"
	CategoryIrrigationSolution = "IRRIGATION_SOLUTION"
	CategoryDiabetes           = "DIABETES"
	CategorySkinCare           = "SKIN_CARE"
	CategoryPainRelief         = "PAIN_RELIEF"
	CategoryHeartHealth        = "HEART_HEALTH"
	CategoryEyeCare            = "EYE_CARE"
)

var categories = map[string]struct{}{
	CategoryVaccine:            {},
	CategoryAntibiotics:        {},
	CategoryOncology:           {},
	CategoryIrrigationSolution: {},
	CategoryDiabetes:           {},
	CategorySkinCare:           {},
	CategoryPainRelief:         {},
	CategoryHeartHealth:        {},
	CategoryEyeCare:            {},
}

// ValidCategory reports whether s is one of the known product categories
func ValidCategory(s string) bool {
	_, ok := categories[s]
	return ok
}
