package model

import (
	"strconv"

	"rooftop-solar/internal/geo"
)

// BuildingFootprint is one building polygon pulled from the geodata service
// (or synthesized when nothing was found). Treated as immutable once built.
type BuildingFootprint struct {
	ID   string            `json:"id"`
	Ring []geo.Point       `json:"ring"` // ordered vertices, not necessarily closed
	Tags map[string]string `json:"tags,omitempty"`

	AreaM2  float64   `json:"area_m2"`
	Center  geo.Point `json:"center"`
	HeightM float64   `json:"height_m"`
	Levels  int       `json:"levels"`

	// Estimated marks a synthetic fallback footprint, never a geocoded one.
	Estimated bool `json:"estimated"`
}

const metersPerLevel = 3.0

// HeightFromTags resolves a building height in meters from OSM-style tags:
// an explicit height tag wins, otherwise building:levels (or levels) times
// 3 m per level, defaulting to 2 levels.
func HeightFromTags(tags map[string]string) (heightM float64, levels int) {
	levels = 2
	if v, ok := tags["building:levels"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			levels = n
		}
	} else if v, ok := tags["levels"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			levels = n
		}
	}
	heightM = float64(levels) * metersPerLevel
	if v, ok := tags["height"]; ok {
		if h, err := strconv.ParseFloat(v, 64); err == nil && h > 0 {
			heightM = h
		}
	}
	return heightM, levels
}

// RoofSection is one plane of the simplified dual-pitch roof model.
type RoofSection struct {
	ID             string  `json:"id"`
	AreaM2         float64 `json:"area_m2"`
	OrientationDeg float64 `json:"orientation_deg"`
	InclinationDeg float64 `json:"inclination_deg"`
	ShadingFactor  float64 `json:"shading_factor"`
}

// RoofAnalysis is the derived view of a footprint's roof.
type RoofAnalysis struct {
	Building BuildingFootprint `json:"building"`

	RoofAreaM2            float64       `json:"roof_area_m2"`
	UsableAreaM2          float64       `json:"usable_area_m2"`
	OrientationDeg        float64       `json:"orientation_deg"`
	AverageInclinationDeg float64       `json:"average_inclination_deg"`
	Sections              []RoofSection `json:"sections"`
}
