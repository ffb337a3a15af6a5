package domain

import (
	"fmt"
	"math"
)

// earthRadiusKm is the Earth mean radius used for great-circle distances.
const earthRadiusKm = 6371.0

// GeoPoint is a WGS-84 coordinate pair with an optional free-text place label.
// Immutable once constructed.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

// NewGeoPoint validates the coordinate ranges and returns a GeoPoint.
// Latitude must lie in [-90, 90] and longitude in [-180, 180]; both must be
// finite.
func NewGeoPoint(lat, lon float64, label string) (GeoPoint, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return GeoPoint{}, &ParseError{Field: "latitude", Value: fmt.Sprintf("%g", lat), Msg: "out of range [-90, 90]"}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return GeoPoint{}, &ParseError{Field: "longitude", Value: fmt.Sprintf("%g", lon), Msg: "out of range [-180, 180]"}
	}
	return GeoPoint{Latitude: lat, Longitude: lon, Label: label}, nil
}

// Distance returns the great-circle distance in kilometers between a and b
// using the haversine formula. Always finite and symmetric for valid points.
func Distance(a, b GeoPoint) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
