// Package geo holds the small amount of spherical and planar geometry the
// estimator needs: great-circle distance, forward azimuth, and polygon
// area/centroid/orientation on lat/lon rings.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for all spherical math.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// DistanceKm returns the great-circle distance between two points in km
// (haversine on a sphere of radius EarthRadiusKm).
func DistanceKm(a, b Point) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)) * EarthRadiusKm
}

// DistanceMeters returns the great-circle distance between two points in meters.
func DistanceMeters(a, b Point) float64 {
	return DistanceKm(a, b) * 1000
}

// BearingDeg returns the forward azimuth from a to b in compass degrees
// (0 = north, clockwise, [0, 360)).
func BearingDeg(a, b Point) float64 {
	dLon := degToRad(b.Lon - a.Lon)
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := radToDeg(math.Atan2(y, x))
	return math.Mod(bearing+360, 360)
}
