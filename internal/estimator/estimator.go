// Package estimator chains the four analysis stages into one estimation:
// geometry -> shading -> irradiance -> energy. Each stage's output is an
// immutable value handed to the next and returned in the final report.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"rooftop-solar/internal/config"
	"rooftop-solar/internal/energy"
	"rooftop-solar/internal/geodata"
	"rooftop-solar/internal/irradiance"
	"rooftop-solar/internal/model"
	"rooftop-solar/internal/shading"
)

// ErrInvalidInput marks requests rejected before any network call.
var ErrInvalidInput = errors.New("invalid input")

// Request is one estimation request. Either AnnualConsumptionKwh or an
// explicit HourlyConsumptionKwh curve must be provided; the explicit curve
// wins when both are set.
type Request struct {
	Lat float64
	Lon float64

	AnnualConsumptionKwh float64
	HourlyConsumptionKwh []float64
	Household            energy.HouseholdOptions
	PeakPowerOverrideKwp float64 // 0 = size from the roof
}

// Report bundles the outputs of all stages.
type Report struct {
	Roof       *model.RoofAnalysis      `json:"roof"`
	Shading    *model.ShadingProfile    `json:"shading"`
	Irradiance *model.IrradianceProfile `json:"irradiance"`

	MaxKwp         float64 `json:"max_kwp"`
	RecommendedKwp float64 `json:"recommended_kwp"`
	OptimalTiltDeg float64 `json:"optimal_tilt_deg"`

	AnnualProductionKwh float64 `json:"annual_production_kwh"`

	Balance       model.EnergyBalance       `json:"balance"`
	Financial     model.FinancialResult     `json:"financial"`
	Environmental model.EnvironmentalImpact `json:"environmental"`

	TiltsTried []model.TiltResult `json:"tilts_tried,omitempty"`
}

// Estimator wires the stage implementations together. Construct one per
// process; the irradiance client's cache and limiter live inside it.
type Estimator struct {
	Resolver   *geodata.Resolver
	Shading    *shading.Estimator
	Irradiance *irradiance.Client
	Config     *config.Config
}

// New builds an Estimator from configuration.
func New(cfg *config.Config) *Estimator {
	resolverCfg := geodata.ResolverConfig{
		BuildingSearchRadiusM: cfg.Analysis.BuildingSearchRadiusM,
		ObstructionRadiusM:    cfg.Analysis.ObstructionRadiusM,
		UsableRoofFraction:    cfg.Analysis.UsableRoofFraction,
		MainSectionShare:      cfg.Analysis.MainSectionShare,
	}
	return &Estimator{
		Resolver:   geodata.NewResolver(geodata.NewClient(cfg.Services.OverpassURL), resolverCfg),
		Shading:    shading.New(),
		Irradiance: irradiance.NewClient(cfg.Services.IrradianceProxyURL, cfg.RateLimit()),
		Config:     cfg,
	}
}

// validate rejects out-of-range input before any network call is made.
func (r Request) validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("%w: latitude %g out of range", ErrInvalidInput, r.Lat)
	}
	if r.Lon < -180 || r.Lon > 180 {
		return fmt.Errorf("%w: longitude %g out of range", ErrInvalidInput, r.Lon)
	}
	if r.PeakPowerOverrideKwp < 0 {
		return fmt.Errorf("%w: peak power must not be negative", ErrInvalidInput)
	}
	if r.AnnualConsumptionKwh < 0 {
		return fmt.Errorf("%w: annual consumption must not be negative", ErrInvalidInput)
	}
	if r.AnnualConsumptionKwh == 0 && len(r.HourlyConsumptionKwh) == 0 {
		return fmt.Errorf("%w: a consumption curve or annual consumption is required", ErrInvalidInput)
	}
	return nil
}

// Estimate runs the full chain. Upstream failures never surface as errors:
// geometry falls back to a synthetic footprint, obstructions degrade to an
// empty list, irradiance degrades to the synthetic profile. Only invalid
// input aborts.
func (e *Estimator) Estimate(ctx context.Context, req Request) (*Report, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	// Stage 1: geometry.
	fp, err := e.Resolver.ResolveBuilding(ctx, req.Lat, req.Lon)
	if err != nil {
		log.Printf("[Estimator] Building lookup failed (%v), using synthetic footprint", err)
		fp = geodata.SyntheticFootprint(req.Lat, req.Lon)
	}
	roof := e.Resolver.AnalyzeRoof(fp)

	// Stage 2: shading.
	obstructions := e.Resolver.NearbyObstructions(ctx, req.Lat, req.Lon)
	shade := e.Shading.Estimate(fp, obstructions, req.Lat)
	applyShadingToSections(roof, shade)

	// Stage 3: irradiance, always requested per kWp so production scales
	// once, in the energy stage.
	maxKwp := energy.RoofCapacityKwp(roof.UsableAreaM2, energy.PanelSpec{
		PeakWp: e.Config.Panel.PeakWp,
		AreaM2: e.Config.Panel.AreaM2,
	})
	recommendedKwp := req.PeakPowerOverrideKwp
	if recommendedKwp == 0 {
		recommendedKwp = math.Min(maxKwp*0.85, e.Config.Analysis.MaxRecommendedKwp)
	}

	var (
		profile    *model.IrradianceProfile
		bestTilt   float64
		tiltsTried []model.TiltResult
	)
	if e.Config.Analysis.OptimizeTilt {
		profile, bestTilt, tiltsTried = e.Irradiance.GetOptimalIrradiance(ctx, req.Lat, req.Lon, 1)
	} else {
		bestTilt = roof.AverageInclinationDeg
		profile = e.Irradiance.GetIrradiance(ctx, req.Lat, req.Lon, 1, bestTilt, 0)
	}

	// Stage 4: energy.
	annualProduction := energy.AnnualProductionKwh(profile, recommendedKwp)
	production := energy.HourlyProductionKwh(profile, recommendedKwp)

	consumption := req.HourlyConsumptionKwh
	if len(consumption) == 0 {
		consumption = energy.HourlyConsumptionKwh(req.AnnualConsumptionKwh, energy.DefaultConsumptionProfile, req.Household)
	}
	balance := energy.Balance(production, consumption)

	fin := e.Config.Financial
	systemCost := recommendedKwp * fin.CostPerKwpEUR
	annualSavings := balance.SelfConsumptionKwh*fin.ElectricityPrice + balance.GridInjectionKwh*fin.InjectionPrice

	financial := energy.FinancialMetrics(systemCost, annualSavings, energy.FinancialParams{
		PriceEscalationPct: fin.PriceEscalationPct,
		DiscountRatePct:    fin.DiscountRatePct,
		HorizonYears:       fin.HorizonYears,
	})
	financial.Scenarios = energy.BuildScenarios(energy.ScenarioParams{
		RecommendedKwp: recommendedKwp,
		MaxKwp:         maxKwp,
		SystemCost:     systemCost,
		AnnualSavings:  annualSavings,
		CostPerKwp:     fin.CostPerKwpEUR,
		PaybackYears:   financial.PaybackYears,
		RoiPct:         financial.RoiPct,
	})

	return &Report{
		Roof:                roof,
		Shading:             shade,
		Irradiance:          profile,
		MaxKwp:              maxKwp,
		RecommendedKwp:      recommendedKwp,
		OptimalTiltDeg:      bestTilt,
		AnnualProductionKwh: annualProduction,
		Balance:             balance,
		Financial:           financial,
		Environmental:       energy.EnvironmentalImpact(annualProduction, fin.HorizonYears),
		TiltsTried:          tiltsTried,
	}, nil
}

// applyShadingToSections writes the computed annual factor onto the roof
// sections, replacing the placeholder set at analysis time. The secondary
// section keeps its slightly worse factor.
func applyShadingToSections(roof *model.RoofAnalysis, shade *model.ShadingProfile) {
	for i := range roof.Sections {
		factor := shade.AnnualFactor
		if roof.Sections[i].ID == "secondary" {
			factor *= 0.95
		}
		roof.Sections[i].ShadingFactor = factor
	}
}
