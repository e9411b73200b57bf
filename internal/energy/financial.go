package energy

import (
	"math"

	"rooftop-solar/internal/model"
)

// FinancialParams are the assumptions of the return model.
type FinancialParams struct {
	PriceEscalationPct float64 // annual electricity price escalation, e.g. 0.03
	DiscountRatePct    float64 // NPV discount rate, e.g. 0.05
	HorizonYears       int     // analysis horizon, e.g. 25
}

// FinancialMetrics computes NPV, approximate IRR and payback for a system
// cost and first-year savings.
//
// The IRR is the documented closed-form approximation
// (totalSavings/cost)^(1/horizon) - 1, not a root-finding IRR. PaybackYears
// is the first year whose cumulative escalated (undiscounted) savings reach
// the cost, 0 when that never happens within the horizon.
func FinancialMetrics(systemCost, annualSavings float64, p FinancialParams) model.FinancialResult {
	res := model.FinancialResult{
		SystemCostEUR:    systemCost,
		AnnualSavingsEUR: annualSavings,
	}
	if systemCost <= 0 || p.HorizonYears <= 0 {
		return res
	}

	res.RoiPct = annualSavings / systemCost * 100

	npv := -systemCost
	cumulative := 0.0
	for year := 1; year <= p.HorizonYears; year++ {
		escalated := annualSavings * math.Pow(1+p.PriceEscalationPct, float64(year-1))
		npv += escalated / math.Pow(1+p.DiscountRatePct, float64(year))

		cumulative += escalated
		if res.PaybackYears == 0 && cumulative >= systemCost {
			res.PaybackYears = float64(year)
		}
	}
	res.NpvEUR = npv

	totalSavings := annualSavings * float64(p.HorizonYears)
	res.IrrPctApprox = (math.Pow(totalSavings/systemCost, 1/float64(p.HorizonYears)) - 1) * 100

	return res
}

// ScenarioParams size the three standard offerings.
type ScenarioParams struct {
	RecommendedKwp float64
	MaxKwp         float64
	SystemCost     float64 // cost of the recommended system
	AnnualSavings  float64 // savings of the recommended system
	CostPerKwp     float64
	PaybackYears   float64 // payback of the recommended system
	RoiPct         float64
}

// BuildScenarios produces the conservative / recommended / maximum sizing
// options. Conservative is a 0.7 scale of the recommended system; maximum
// extrapolates savings linearly to the roof limit.
func BuildScenarios(p ScenarioParams) []model.Scenario {
	scenarios := []model.Scenario{
		{
			Name:          "conservative",
			SystemKwp:     p.RecommendedKwp * 0.7,
			CostEUR:       p.SystemCost * 0.7,
			AnnualSavings: p.AnnualSavings * 0.7,
			RoiPct:        p.RoiPct,
		},
		{
			Name:          "recommended",
			SystemKwp:     p.RecommendedKwp,
			CostEUR:       p.SystemCost,
			AnnualSavings: p.AnnualSavings,
			PaybackYears:  p.PaybackYears,
			RoiPct:        p.RoiPct,
		},
	}
	if p.AnnualSavings > 0 && p.SystemCost > 0 {
		scenarios[0].PaybackYears = p.SystemCost * 0.7 / (p.AnnualSavings * 0.7)
	}

	maxScenario := model.Scenario{
		Name:      "maximum",
		SystemKwp: p.MaxKwp,
		CostEUR:   p.MaxKwp * p.CostPerKwp,
	}
	if p.RecommendedKwp > 0 {
		scale := p.MaxKwp / p.RecommendedKwp
		maxScenario.AnnualSavings = p.AnnualSavings * scale
		if maxScenario.AnnualSavings > 0 {
			maxScenario.PaybackYears = maxScenario.CostEUR / maxScenario.AnnualSavings
		}
		if maxScenario.CostEUR > 0 {
			maxScenario.RoiPct = maxScenario.AnnualSavings / maxScenario.CostEUR * 100
		}
	}
	return append(scenarios, maxScenario)
}
