// Package geo holds coordinates and great-circle distance math.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for haversine distance.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS-84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm returns the haversine great-circle distance between a and b in kilometers.
// Out-of-range inputs are not rejected.
func DistanceKm(a, b Coordinate) float64 {
	lat1r := a.Latitude * math.Pi / 180
	lat2r := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceOrZero returns the distance between a and b, or 0 when either side is absent.
// Zero here means "unknown" as much as "colocated"; callers that need to tell them
// apart must check for nil themselves.
func DistanceOrZero(a, b *Coordinate) float64 {
	if a == nil || b == nil {
		return 0
	}
	return DistanceKm(*a, *b)
}

// ValidCoordinate checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidCoordinate(c Coordinate) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
