// Package shading estimates per-month and per-hour shading attenuation for a
// roof from nearby obstruction footprints, using simplified solar-position
// geometry. It is intentionally coarse: no shadow projection or ray tracing,
// just elevation/distance/azimuth heuristics that stay reproducible.
package shading

import "math"

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// solarDeclinationDeg approximates the solar declination for a month (0-11)
// using the classic Cooper formula with the month mapped to day 284+30*month.
func solarDeclinationDeg(month int) float64 {
	dayOfYear := float64(month) * 30
	return 23.45 * math.Sin(degToRad(360*(284+dayOfYear)/365))
}

// solarElevationDeg gives the sun's elevation at a local hour for a latitude,
// using a fixed year-average declination of about 4°. Negative elevations
// clamp to zero.
func solarElevationDeg(hour int, latitudeDeg float64) float64 {
	hourAngle := float64(hour-12) * 15 // degrees from solar noon
	declination := 23.45 * math.Sin(degToRad(360.0*172/365))

	lat := degToRad(latitudeDeg)
	dec := degToRad(declination)
	ha := degToRad(hourAngle)

	elevation := radToDeg(math.Asin(
		math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)))
	return math.Max(0, elevation)
}
