package geo

import "math"

// Centroid returns the vertex average of a ring. Good enough at building
// scale; not an area-weighted centroid.
func Centroid(ring []Point) Point {
	if len(ring) == 0 {
		return Point{}
	}
	var sumLat, sumLon float64
	for _, p := range ring {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(ring))
	return Point{Lat: sumLat / n, Lon: sumLon / n}
}

// RingAreaM2 computes the planar shoelace area of a lat/lon ring and rescales
// square degrees to square meters with the mean Earth radius.
//
// This is a known approximation: it treats one degree of longitude as one
// degree of latitude, so it is not corrected for latitude-dependent degree
// length. At building scale the error is acceptable and the behavior is kept
// deliberately.
func RingAreaM2(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	area := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		area += ring[i].Lon * ring[j].Lat
		area -= ring[j].Lon * ring[i].Lat
	}
	// One degree of arc on the sphere, in meters. Both axes use the same
	// factor, so longitude degrees are not shortened by cos(lat); at building
	// scale the resulting overestimate is accepted.
	const metersPerDeg = (math.Pi / 180) * EarthRadiusKm * 1000
	return math.Abs(area) / 2 * metersPerDeg * metersPerDeg
}

// LongestEdgeBearingDeg returns the compass bearing of the longest edge of a
// ring, the building's principal orientation. Rings with fewer than three
// vertices get 180 (south).
func LongestEdgeBearingDeg(ring []Point) float64 {
	if len(ring) < 3 {
		return 180
	}
	maxLen := 0.0
	orientation := 180.0
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		dLon := b.Lon - a.Lon
		dLat := b.Lat - a.Lat
		length := math.Sqrt(dLon*dLon + dLat*dLat)
		if length > maxLen {
			maxLen = length
			bearing := radToDeg(math.Atan2(dLon, dLat))
			orientation = math.Mod(bearing+360, 360)
		}
	}
	return orientation
}
