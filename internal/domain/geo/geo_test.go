package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceKM(t *testing.T) {
	cairo := Coordinate{Latitude: 30.0444, Longitude: 31.2357}
	mecca := Coordinate{Latitude: 21.4225, Longitude: 39.8262}

	d := DistanceKM(cairo, mecca)
	require.InDelta(t, 1300, d, 30)

	require.InDelta(t, 0, DistanceKM(mecca, mecca), 1e-9)
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Coordinate{Latitude: 51.5074, Longitude: -0.1278}
	b := Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	require.InDelta(t, DistanceKM(a, b), DistanceKM(b, a), 1e-9)
}

func TestInitialBearing(t *testing.T) {
	origin := Coordinate{}

	// Due north and due east from the equator.
	require.InDelta(t, 0, InitialBearing(origin, Coordinate{Latitude: 10}), 1e-9)
	require.InDelta(t, 90, InitialBearing(origin, Coordinate{Longitude: 10}), 1e-9)
	require.InDelta(t, 180, InitialBearing(origin, Coordinate{Latitude: -10}), 1e-9)
	require.InDelta(t, 270, InitialBearing(origin, Coordinate{Longitude: -10}), 1e-9)
}

func TestInitialBearingIdenticalPoints(t *testing.T) {
	p := Coordinate{Latitude: 21.4225, Longitude: 39.8262}
	require.Equal(t, 0.0, InitialBearing(p, p))
}
