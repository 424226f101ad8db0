// Package qibla computes the direction and distance toward the Kaaba.
package qibla

import "github.com/ID-Brains/islam-station/internal/domain/geo"

// Kaaba is the fixed reference point in Makkah.
var Kaaba = geo.Coordinate{Latitude: 21.4225, Longitude: 39.8262}

// Result holds the qibla bearing and great-circle distance from a location.
type Result struct {
	BearingDegrees float64        `json:"qibla_direction"`
	DistanceKM     float64        `json:"distance_km"`
	Kaaba          geo.Coordinate `json:"kaaba_location"`
}

// Direction returns the initial great-circle bearing toward the Kaaba in
// degrees from north and the haversine distance in kilometers. At the Kaaba
// itself the bearing is undefined and 0 is returned by convention.
func Direction(loc geo.Coordinate) Result {
	return Result{
		BearingDegrees: geo.InitialBearing(loc, Kaaba),
		DistanceKM:     geo.DistanceKM(loc, Kaaba),
		Kaaba:          Kaaba,
	}
}
