package main

import (
	"flag"
	"fmt"

	"rooftop-solar/internal/config"
	"rooftop-solar/internal/energy"
	"rooftop-solar/internal/geodata"
	"rooftop-solar/internal/irradiance"
	"rooftop-solar/internal/model"
	"rooftop-solar/internal/shading"
)

// Demo:
// - Build a synthetic footprint (no network access needed)
// - Run the shading, irradiance and energy stages to show how they fit together
func main() {
	lat := flag.Float64("lat", 40.4168, "Latitude")
	lon := flag.Float64("lon", -3.7038, "Longitude")
	consumption := flag.Float64("consumption", 3500, "Annual consumption in kWh")
	flag.Parse()

	cfg := config.Default()

	fp := geodata.SyntheticFootprint(*lat, *lon)
	resolver := geodata.NewResolver(nil, geodata.DefaultResolverConfig())
	roof := resolver.AnalyzeRoof(fp)

	fmt.Printf("Synthetic roof at (%.4f, %.4f)\n", *lat, *lon)
	fmt.Printf("  area=%.0f m2 usable=%.0f m2 orientation=%.0f°\n\n",
		roof.RoofAreaM2, roof.UsableAreaM2, roof.OrientationDeg)

	shade := shading.New().Estimate(fp, nil, *lat)
	fmt.Printf("Shading (no obstructions): annual factor=%.2f\n", shade.AnnualFactor)
	fmt.Printf("  hourly factors 06-20h:")
	for h := 6; h <= 20; h++ {
		fmt.Printf(" %.2f", shade.HourlyFactors[h])
	}
	fmt.Printf("\n\n")

	maxKwp := energy.RoofCapacityKwp(roof.UsableAreaM2, energy.DefaultPanel)
	systemKwp := maxKwp * 0.85
	if systemKwp > cfg.Analysis.MaxRecommendedKwp {
		systemKwp = cfg.Analysis.MaxRecommendedKwp
	}

	profile := irradiance.SyntheticProfile(*lat, *lon, 1, 35, 0)
	production := energy.HourlyProductionKwh(profile, systemKwp)
	fmt.Printf("System: %.1f kWp (roof limit %.1f kWp)\n", systemKwp, maxKwp)
	fmt.Printf("Synthetic irradiance: %.0f kWh/kWp/year at tilt=%g°\n\n",
		profile.SpecificYieldKwhPerKwpYear, profile.TiltDeg)

	curve := energy.HourlyConsumptionKwh(*consumption, energy.DefaultConsumptionProfile, energy.HouseholdOptions{})
	balance := energy.Balance(production, curve)

	fmt.Printf("Monthly production (kWh):")
	for _, m := range monthlyFromHourly(production, profile.Hourly) {
		fmt.Printf(" %.0f", m)
	}
	fmt.Printf("\n\n")

	fmt.Printf("Balance: production=%.0f consumption=%.0f self=%.0f injection=%.0f draw=%.0f\n",
		balance.TotalProductionKwh, balance.TotalConsumptionKwh,
		balance.SelfConsumptionKwh, balance.GridInjectionKwh, balance.GridConsumptionKwh)

	cost := systemKwp * cfg.Financial.CostPerKwpEUR
	savings := balance.SelfConsumptionKwh*cfg.Financial.ElectricityPrice +
		balance.GridInjectionKwh*cfg.Financial.InjectionPrice
	fin := energy.FinancialMetrics(cost, savings, energy.FinancialParams{
		PriceEscalationPct: cfg.Financial.PriceEscalationPct,
		DiscountRatePct:    cfg.Financial.DiscountRatePct,
		HorizonYears:       cfg.Financial.HorizonYears,
	})
	env := energy.EnvironmentalImpact(balance.TotalProductionKwh, cfg.Financial.HorizonYears)

	fmt.Printf("Financials: cost=%.0f EUR savings=%.0f EUR/year payback=%.0f years NPV=%.0f EUR\n",
		fin.SystemCostEUR, fin.AnnualSavingsEUR, fin.PaybackYears, fin.NpvEUR)
	fmt.Printf("Environment: %.1f t CO2/year, %d trees equivalent\n",
		env.CO2SavedAnnuallyTons, env.TreesEquivalent)
}

// monthlyFromHourly folds an hourly production curve into twelve monthly
// sums using the profile's timestamps.
func monthlyFromHourly(production []float64, hours []model.HourlyIrradiance) []float64 {
	monthly := make([]float64, 12)
	for i, h := range hours {
		if i >= len(production) {
			break
		}
		monthly[int(h.Time.Month())-1] += production[i]
	}
	return monthly
}
