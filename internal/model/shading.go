package model

// ObstructionRecord is a nearby footprint reduced to what shading needs.
// Lifetime is scoped to a single shading computation.
type ObstructionRecord struct {
	ID            string  `json:"id"`
	DistanceM     float64 `json:"distance_m"`
	HeightM       float64 `json:"height_m"`
	AzimuthDeg    float64 `json:"azimuth_deg"` // bearing from target to obstruction
	ShadingImpact float64 `json:"shading_impact"`
}

// ShadingProfile is the attenuation model for one roof: every factor lies in
// [0,1] and AnnualFactor is the mean of the twelve monthly factors.
type ShadingProfile struct {
	AnnualFactor   float64             `json:"annual_factor"`
	MonthlyFactors [12]float64         `json:"monthly_factors"`
	HourlyFactors  [24]float64         `json:"hourly_factors"`
	Obstructions   []ObstructionRecord `json:"obstructions,omitempty"`
}
