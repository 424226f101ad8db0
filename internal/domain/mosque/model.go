package mosque

import "github.com/ID-Brains/islam-station/internal/domain/geo"

// Mosque is one row of the mosque directory.
type Mosque struct {
	ID       int64          `json:"mosque_id"`
	Name     string         `json:"name"`
	Address  string         `json:"address,omitempty"`
	City     string         `json:"city,omitempty"`
	Country  string         `json:"country,omitempty"`
	Location geo.Coordinate `json:"location"`
}

// NearbyMosque is a directory entry enriched with distance and bearing from
// the caller's position.
type NearbyMosque struct {
	Mosque
	DistanceKM     float64 `json:"distance_km"`
	BearingDegrees float64 `json:"bearing"`
}

// SearchResult pages through name search hits.
type SearchResult struct {
	Mosques []Mosque `json:"results"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
