package model

// EnergyBalance reconciles hourly production against hourly consumption.
// Aggregates satisfy:
//
//	SelfConsumptionKwh + GridInjectionKwh  == total production
//	SelfConsumptionKwh + GridConsumptionKwh == total consumption
type EnergyBalance struct {
	SelfConsumptionKwh  float64 `json:"self_consumption_kwh"`
	GridInjectionKwh    float64 `json:"grid_injection_kwh"`
	GridConsumptionKwh  float64 `json:"grid_consumption_kwh"`
	SelfConsumptionPct  float64 `json:"self_consumption_pct"`
	AutarkyPct          float64 `json:"autarky_pct"`
	TotalProductionKwh  float64 `json:"total_production_kwh"`
	TotalConsumptionKwh float64 `json:"total_consumption_kwh"`
}

// Scenario is one sizing option (conservative / recommended / maximum).
type Scenario struct {
	Name          string  `json:"name"`
	SystemKwp     float64 `json:"system_kwp"`
	CostEUR       float64 `json:"cost_eur"`
	AnnualSavings float64 `json:"annual_savings_eur"`
	PaybackYears  float64 `json:"payback_years"`
	RoiPct        float64 `json:"roi_pct"`
}

// FinancialResult carries the discounted and undiscounted return figures.
// PaybackYears is 0 when the cost is never recovered within the horizon,
// matching the Scenario field's representation.
type FinancialResult struct {
	SystemCostEUR    float64    `json:"system_cost_eur"`
	AnnualSavingsEUR float64    `json:"annual_savings_eur"`
	RoiPct           float64    `json:"roi_pct"`
	PaybackYears     float64    `json:"payback_years"`
	NpvEUR           float64    `json:"npv_eur"`
	IrrPctApprox     float64    `json:"irr_pct_approx"`
	Scenarios        []Scenario `json:"scenarios,omitempty"`
}

// EnvironmentalImpact holds derived CO2 and tree-equivalence figures.
type EnvironmentalImpact struct {
	CO2SavedAnnuallyTons float64 `json:"co2_saved_annually_tons"`
	CO2SavedHorizonTons  float64 `json:"co2_saved_horizon_tons"`
	TreesEquivalent      int     `json:"trees_equivalent"`
}
