package matching

import "math"

const earthRadiusKm = 6371

// FallbackDistanceKm is substituted whenever either party has no location
// on file. The mobile client has always shown these users at a flat 10 km,
// so the backend keeps the same policy for parity.
const FallbackDistanceKm = 10

// HaversineKm computes the great-circle distance between two coordinates
// in kilometers
func HaversineKm(a, b Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Long - a.Long) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DistanceBetween returns the distance between two users, substituting
// FallbackDistanceKm when either has no captured location
func DistanceBetween(a, b *UserProfile) float64 {
	if a.Location == nil || b.Location == nil {
		return FallbackDistanceKm
	}
	return HaversineKm(*a.Location, *b.Location)
}
