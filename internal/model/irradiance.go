package model

import "time"

// IrradianceSource tags whether a profile came from the external service or
// from the latitude-banded synthesizer. The tag is set once when the profile
// is produced and preserved end-to-end.
type IrradianceSource string

const (
	SourceMeasured  IrradianceSource = "measured"
	SourceSynthetic IrradianceSource = "synthetic"
)

// MonthlyIrradiance carries one month of energy and sun-hour figures.
type MonthlyIrradiance struct {
	Month      int     `json:"month"` // 1-12
	DailyKwh   float64 `json:"daily_kwh"`
	MonthlyKwh float64 `json:"monthly_kwh"`
	SunHours   float64 `json:"sun_hours"`
}

// HourlyIrradiance is one of the 8760 hourly samples.
type HourlyIrradiance struct {
	Time          time.Time `json:"time"`
	PowerW        float64   `json:"power_w"`
	IrradianceWm2 float64   `json:"irradiance_wm2"`
	AmbientTempC  float64   `json:"ambient_temp_c"`
}

// IrradianceProfile is the yield model for one coordinate/tilt/azimuth/peak
// combination.
type IrradianceProfile struct {
	Source IrradianceSource `json:"source"`

	// SpecificYieldKwhPerKwpYear scales with the PeakKwp the profile was
	// requested for: it is per-kWp only when PeakKwp is 1, which is how the
	// estimation pipeline always requests profiles before scaling production
	// by system size.
	SpecificYieldKwhPerKwpYear float64 `json:"specific_yield_kwh_per_kwp_year"`
	PerformanceRatio           float64 `json:"performance_ratio"`

	PeakKwp    float64 `json:"peak_kwp"`
	TiltDeg    float64 `json:"tilt_deg"`
	AzimuthDeg float64 `json:"azimuth_deg"`

	Monthly [12]MonthlyIrradiance `json:"monthly"`
	Hourly  []HourlyIrradiance    `json:"hourly"` // 8760 samples
}

// TiltResult is one attempt of the optimal-tilt search.
type TiltResult struct {
	TiltDeg                    float64          `json:"tilt_deg"`
	SpecificYieldKwhPerKwpYear float64          `json:"specific_yield_kwh_per_kwp_year"`
	Source                     IrradianceSource `json:"source"`
}
