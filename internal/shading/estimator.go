package shading

import (
	"log"
	"math"

	"rooftop-solar/internal/geo"
	"rooftop-solar/internal/model"
)

const (
	// Obstructions farther than this contribute nothing.
	maxObstructionDistanceM = 50.0
	// Cap on the shading contribution of a single obstruction.
	maxImpactPerObstruction = 0.3
	// Hours outside this window carry no sun at all.
	firstSunHour = 6
	lastSunHour  = 20
)

// Estimator computes shading profiles. It holds no state; the zero value is
// usable.
type Estimator struct{}

// New returns a shading Estimator.
func New() *Estimator { return &Estimator{} }

// Estimate derives the shading profile of the target footprint from the
// obstructions around it. All factors land in [0,1] and the annual factor is
// the mean of the monthly ones.
func (e *Estimator) Estimate(target *model.BuildingFootprint, obstructions []model.BuildingFootprint, latitudeDeg float64) *model.ShadingProfile {
	records := make([]model.ObstructionRecord, 0, len(obstructions))
	for _, obs := range obstructions {
		if obs.ID == target.ID {
			continue
		}
		rec := obstructionRecord(target, &obs)
		records = append(records, rec)
	}
	log.Printf("[Shading] Target %s: %d obstruction(s) considered", target.ID, len(records))

	profile := &model.ShadingProfile{Obstructions: records}

	sum := 0.0
	for month := 0; month < 12; month++ {
		// The seasonal sinusoid tracks the declination cycle: higher sun in
		// summer means less effective shading. Clamped to [0.7, 0.95].
		seasonal := 0.8 + 0.2*math.Sin(float64(month)/12*2*math.Pi)
		factor := math.Max(0.7, math.Min(0.95, seasonal))
		profile.MonthlyFactors[month] = factor
		sum += factor
	}
	profile.AnnualFactor = sum / 12

	for hour := 0; hour < 24; hour++ {
		if hour < firstSunHour || hour > lastSunHour {
			profile.HourlyFactors[hour] = 0
			continue
		}
		elevation := solarElevationDeg(hour, latitudeDeg)
		base := math.Max(0.1, math.Min(1.0, elevation/60))

		attenuation := 1.0
		for _, rec := range records {
			if rec.ShadingImpact > 0.1 {
				attenuation *= 1 - rec.ShadingImpact*0.3
			}
		}
		profile.HourlyFactors[hour] = base * attenuation
	}

	return profile
}

// obstructionRecord reduces one nearby footprint to distance, bearing,
// height, and its shading contribution.
func obstructionRecord(target, obs *model.BuildingFootprint) model.ObstructionRecord {
	distM := geo.DistanceMeters(target.Center, obs.Center)
	azimuth := geo.BearingDeg(target.Center, obs.Center)

	heightDiff := obs.HeightM - target.HeightM
	elevationDeg := 0.0
	if distM > 0 {
		elevationDeg = radToDeg(math.Atan(heightDiff / distM))
	}

	return model.ObstructionRecord{
		ID:            obs.ID,
		DistanceM:     distM,
		HeightM:       obs.HeightM,
		AzimuthDeg:    azimuth,
		ShadingImpact: shadingImpact(elevationDeg, azimuth, distM),
	}
}

// shadingImpact scores one obstruction in [0, 0.3]. Obstructions below the
// roofline or beyond 50 m score zero; the south-facing arc weighs double
// because it blocks more usable sun at these latitudes.
func shadingImpact(elevationDeg, azimuthDeg, distanceM float64) float64 {
	if elevationDeg <= 0 {
		return 0
	}
	if distanceM > maxObstructionDistanceM {
		return 0
	}

	elevationFactor := math.Min(1, elevationDeg/45)
	distanceFactor := math.Max(0, (maxObstructionDistanceM-distanceM)/maxObstructionDistanceM)

	azimuthFactor := 0.5
	if azimuthDeg > 90 && azimuthDeg < 270 {
		azimuthFactor = 1.0
	}

	return elevationFactor * distanceFactor * azimuthFactor * maxImpactPerObstruction
}
