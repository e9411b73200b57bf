package energy

import (
	"math"

	"rooftop-solar/internal/model"
)

const (
	// GridEmissionFactorKgPerKwh is the Spanish grid emission factor (2023).
	GridEmissionFactorKgPerKwh = 0.331
	// treeAbsorptionKgPerYear is the CO2 one tree absorbs per year.
	treeAbsorptionKgPerYear = 25.0
)

// EnvironmentalImpact derives CO2 savings and the tree equivalence from the
// annual production over a horizon.
func EnvironmentalImpact(annualProductionKwh float64, horizonYears int) model.EnvironmentalImpact {
	annualTons := annualProductionKwh * GridEmissionFactorKgPerKwh / 1000
	horizonTons := annualTons * float64(horizonYears)
	return model.EnvironmentalImpact{
		CO2SavedAnnuallyTons: annualTons,
		CO2SavedHorizonTons:  horizonTons,
		TreesEquivalent:      int(math.Round(horizonTons * 1000 / treeAbsorptionKgPerYear)),
	}
}
