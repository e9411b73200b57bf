package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// default; a missing section falls back to Default().
type Config struct {
	Services  ServicesConfig  `yaml:"services"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Panel     PanelConfig     `yaml:"panel"`
	Financial FinancialConfig `yaml:"financial"`
}

type ServicesConfig struct {
	// OverpassURL is the geodata interpreter endpoint.
	OverpassURL string `yaml:"overpass_url"`
	// IrradianceProxyURL is the base URL of the irradiance proxy.
	IrradianceProxyURL string `yaml:"irradiance_proxy_url"`
	// PVGISURL is the upstream service the proxy forwards to.
	PVGISURL string `yaml:"pvgis_url"`
	// RateLimitMs is the minimum spacing between irradiance requests.
	RateLimitMs int `yaml:"rate_limit_ms"`
}

type AnalysisConfig struct {
	BuildingSearchRadiusM int `yaml:"building_search_radius_m"`
	ObstructionRadiusM    int `yaml:"obstruction_radius_m"`

	// Policy constants with no stated derivation; kept configurable rather
	// than hard-coded.
	UsableRoofFraction float64 `yaml:"usable_roof_fraction"`
	MainSectionShare   float64 `yaml:"main_section_share"`

	// MaxRecommendedKwp caps the recommended system size.
	MaxRecommendedKwp float64 `yaml:"max_recommended_kwp"`
	// OptimizeTilt enables the multi-angle irradiance search.
	OptimizeTilt bool `yaml:"optimize_tilt"`
}

type PanelConfig struct {
	PeakWp float64 `yaml:"peak_wp"`
	AreaM2 float64 `yaml:"area_m2"`
}

type FinancialConfig struct {
	CostPerKwpEUR      float64 `yaml:"cost_per_kwp_eur"`
	ElectricityPrice   float64 `yaml:"electricity_price_eur_kwh"`
	InjectionPrice     float64 `yaml:"injection_price_eur_kwh"`
	PriceEscalationPct float64 `yaml:"price_escalation_pct"`
	DiscountRatePct    float64 `yaml:"discount_rate_pct"`
	HorizonYears       int     `yaml:"horizon_years"`
}

// Default returns the configuration matching the original system's constants.
func Default() *Config {
	return &Config{
		Services: ServicesConfig{
			OverpassURL:        "https://overpass-api.de/api/interpreter",
			IrradianceProxyURL: "http://localhost:8080",
			PVGISURL:           "https://re.jrc.ec.europa.eu/api/v5_2/PVcalc",
			RateLimitMs:        1000,
		},
		Analysis: AnalysisConfig{
			BuildingSearchRadiusM: 10,
			ObstructionRadiusM:    100,
			UsableRoofFraction:    0.85,
			MainSectionShare:      0.8,
			MaxRecommendedKwp:     10,
			OptimizeTilt:          true,
		},
		Panel: PanelConfig{
			PeakWp: 450,
			AreaM2: 2.3,
		},
		Financial: FinancialConfig{
			CostPerKwpEUR:      1200,
			ElectricityPrice:   0.25,
			InjectionPrice:     0.05,
			PriceEscalationPct: 0.03,
			DiscountRatePct:    0.05,
			HorizonYears:       25,
		},
	}
}

// Load reads a YAML config, overlays it on the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Services.OverpassURL == "" {
		return errors.New("services.overpass_url is required")
	}
	if c.Services.RateLimitMs < 0 {
		return errors.New("services.rate_limit_ms must not be negative")
	}
	if c.Analysis.UsableRoofFraction <= 0 || c.Analysis.UsableRoofFraction > 1 {
		return fmt.Errorf("analysis.usable_roof_fraction must be in (0,1], got %g", c.Analysis.UsableRoofFraction)
	}
	if c.Analysis.MainSectionShare <= 0 || c.Analysis.MainSectionShare > 1 {
		return fmt.Errorf("analysis.main_section_share must be in (0,1], got %g", c.Analysis.MainSectionShare)
	}
	if c.Panel.PeakWp <= 0 || c.Panel.AreaM2 <= 0 {
		return errors.New("panel.peak_wp and panel.area_m2 must be positive")
	}
	if c.Financial.HorizonYears <= 0 {
		return errors.New("financial.horizon_years must be positive")
	}
	return nil
}

// RateLimit returns the irradiance rate limit as a duration.
func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.Services.RateLimitMs) * time.Millisecond
}
