package aladhan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
)

func TestFetchDecodesTimings(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 200,
			"status": "OK",
			"data": {"timings": {
				"Imsak": "03:05",
				"Fajr": "03:15 (EET)",
				"Sunrise": "04:54",
				"Dhuhr": "11:58",
				"Asr": "15:34",
				"Maghrib": "19:01",
				"Isha": "20:31"
			}}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sched, err := client.Fetch(context.Background(),
		geo.Coordinate{Latitude: 30.0444, Longitude: 31.2357},
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		prayer.Egyptian)
	require.NoError(t, err)

	require.Equal(t, "/timings/15-06-2024", gotPath)
	require.Contains(t, gotQuery, "method=5")
	require.Equal(t, "2024-06-15", sched.Date)
	require.Equal(t, "aladhan_api", sched.Source)
	require.Equal(t, "03:15", sched.Times["fajr"], "timezone suffix stripped")
	require.Equal(t, "20:31", sched.Times["isha"])
}

func TestFetchAPIErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 400, "status": "Bad Request"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), geo.Coordinate{}, time.Now(), prayer.Egyptian)
	require.Error(t, err)
}

func TestFetchMissingTiming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 200, "status": "OK", "data": {"timings": {"Fajr": "03:15"}}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), geo.Coordinate{}, time.Now(), prayer.Egyptian)
	require.Error(t, err)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), geo.Coordinate{}, time.Now(), prayer.Egyptian)
	require.Error(t, err)
}

func TestMethodCodeFallback(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code": 200, "status": "OK", "data": {"timings": {
			"Imsak": "03:05", "Fajr": "03:15", "Sunrise": "04:54", "Dhuhr": "11:58",
			"Asr": "15:34", "Maghrib": "19:01", "Isha": "20:31"
		}}}`))
	}))
	defer srv.Close()

	// Turkey has no published AlAdhan code and falls back to Egyptian.
	_, err := NewClient(srv.URL).Fetch(context.Background(), geo.Coordinate{}, time.Now(), prayer.Turkey)
	require.NoError(t, err)
	require.Contains(t, gotQuery, "method=5")
}
