package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"rooftop-solar/internal/config"
	"rooftop-solar/internal/energy"
	"rooftop-solar/internal/estimator"
	"rooftop-solar/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "estimate":
		cmdEstimate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli estimate --lat 40.4168 --lon -3.7038 --consumption 3500")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - estimate looks up the building at the coordinates, sizes a PV system")
	fmt.Println("    and prints yield, self-consumption and payback figures")
	fmt.Println("  - without network access it degrades to synthetic roof and irradiance data")
}

func cmdEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "Latitude of the rooftop")
	lon := fs.Float64("lon", 0, "Longitude of the rooftop")
	consumption := fs.Float64("consumption", 3500, "Annual household consumption in kWh")
	peak := fs.Float64("peak", 0, "Optional: fixed system size in kWp (0=size from roof)")
	cfgPath := fs.String("config", "", "Optional: path to YAML config")
	ac := fs.Bool("ac", false, "Household has air conditioning")
	heating := fs.Bool("heating", false, "Household has electric heating")
	ev := fs.Bool("ev", false, "Household has an electric vehicle")
	_ = fs.Parse(args)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	est := estimator.New(cfg)
	report, err := est.Estimate(context.Background(), estimator.Request{
		Lat:                  *lat,
		Lon:                  *lon,
		AnnualConsumptionKwh: *consumption,
		PeakPowerOverrideKwp: *peak,
		Household: energy.HouseholdOptions{
			HasAirConditioning: *ac,
			HasElectricHeating: *heating,
			HasEV:              *ev,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimate failed: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
}

func printReport(r *estimator.Report) {
	b := r.Roof.Building
	source := "OpenStreetMap footprint"
	if b.Estimated {
		source = "synthetic footprint (no building found)"
	}

	fmt.Printf("Roof (%s)\n", source)
	fmt.Printf("  area=%.0f m2 usable=%.0f m2 orientation=%.0f° inclination=%.0f°\n",
		r.Roof.RoofAreaM2, r.Roof.UsableAreaM2, r.Roof.OrientationDeg, r.Roof.AverageInclinationDeg)
	fmt.Printf("  shading factor=%.2f (%d obstruction(s))\n",
		r.Shading.AnnualFactor, len(r.Shading.Obstructions))

	fmt.Printf("System\n")
	fmt.Printf("  max=%.1f kWp recommended=%.1f kWp tilt=%.0f°\n",
		r.MaxKwp, r.RecommendedKwp, r.OptimalTiltDeg)
	fmt.Printf("  yield=%.0f kWh/kWp/year (%s) production=%.0f kWh/year\n",
		r.Irradiance.SpecificYieldKwhPerKwpYear, r.Irradiance.Source, r.AnnualProductionKwh)

	fmt.Printf("Energy balance\n")
	fmt.Printf("  self-consumption=%.0f kWh grid injection=%.0f kWh grid draw=%.0f kWh\n",
		r.Balance.SelfConsumptionKwh, r.Balance.GridInjectionKwh, r.Balance.GridConsumptionKwh)
	fmt.Printf("  self-consumption=%.0f%% autarky=%.0f%%\n",
		r.Balance.SelfConsumptionPct, r.Balance.AutarkyPct)

	fmt.Printf("Financials\n")
	fmt.Printf("  cost=%.0f EUR savings=%.0f EUR/year\n",
		r.Financial.SystemCostEUR, r.Financial.AnnualSavingsEUR)
	if r.Financial.PaybackYears > 0 {
		fmt.Printf("  payback=%.0f years NPV=%.0f EUR ROI=%.1f%%\n",
			r.Financial.PaybackYears, r.Financial.NpvEUR, r.Financial.RoiPct)
	} else {
		fmt.Printf("  payback not reached within horizon NPV=%.0f EUR\n", r.Financial.NpvEUR)
	}
	for _, s := range r.Financial.Scenarios {
		fmt.Printf("  %-12s %5.1f kWp %8.0f EUR %7.0f EUR/year\n",
			s.Name, s.SystemKwp, s.CostEUR, s.AnnualSavings)
	}

	fmt.Printf("Environment\n")
	fmt.Printf("  CO2 saved=%.1f t/year (%.0f t over horizon) trees=%d\n",
		r.Environmental.CO2SavedAnnuallyTons, r.Environmental.CO2SavedHorizonTons,
		r.Environmental.TreesEquivalent)

	if r.Irradiance.Source == model.SourceSynthetic {
		fmt.Println("")
		fmt.Println("note: irradiance service unavailable, figures use the synthetic model")
	}
}
