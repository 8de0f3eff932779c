package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Coordinate is a WGS84 point in decimal degrees.
// Values coming from a device GPS fix are trusted as-is; range validation
// belongs to the request DTOs.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters returns the great-circle distance between two coordinates
// in meters, computed with the haversine formula.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// RoundedDistanceMeters returns the distance rounded to the nearest meter.
// This is the value stored on attendance records and shown to users.
func RoundedDistanceMeters(a, b Coordinate) float64 {
	return math.Round(DistanceMeters(a, b))
}

// WithinRadius reports whether user is inside the geofence centered at
// center. The distance is rounded to the nearest meter before the
// comparison, and the boundary is inclusive: a rounded distance exactly
// equal to radiusMeters counts as inside.
func WithinRadius(user, center Coordinate, radiusMeters float64) bool {
	return RoundedDistanceMeters(user, center) <= radiusMeters
}
