package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
	"github.com/ID-Brains/islam-station/internal/domain/qibla"
	"github.com/ID-Brains/islam-station/internal/infra/config"
	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

type stubPrayerService struct {
	timesFn   func(ctx context.Context, req prayer.TimesRequest) (prayer.TimesResponse, error)
	monthlyFn func(ctx context.Context, req prayer.MonthlyRequest) (prayer.MonthlyResponse, error)
}

func (s *stubPrayerService) Times(ctx context.Context, req prayer.TimesRequest) (prayer.TimesResponse, error) {
	if s.timesFn != nil {
		return s.timesFn(ctx, req)
	}
	return prayer.TimesResponse{}, nil
}

func (s *stubPrayerService) Monthly(ctx context.Context, req prayer.MonthlyRequest) (prayer.MonthlyResponse, error) {
	if s.monthlyFn != nil {
		return s.monthlyFn(ctx, req)
	}
	return prayer.MonthlyResponse{}, nil
}

func (s *stubPrayerService) Methods() []prayer.MethodInfo {
	return prayer.Methods()
}

func (s *stubPrayerService) Qibla(loc geo.Coordinate) qibla.Result {
	return qibla.Direction(loc)
}

type stubMosqueService struct {
	nearbyFn func(ctx context.Context, loc geo.Coordinate, radius, limit int) ([]mosque.NearbyMosque, error)
	getFn    func(ctx context.Context, id int64) (mosque.Mosque, error)
}

func (s *stubMosqueService) Nearby(ctx context.Context, loc geo.Coordinate, radius, limit int) ([]mosque.NearbyMosque, error) {
	if s.nearbyFn != nil {
		return s.nearbyFn(ctx, loc, radius, limit)
	}
	return nil, nil
}

func (s *stubMosqueService) Search(context.Context, string, string, string, int, int) (mosque.SearchResult, error) {
	return mosque.SearchResult{}, nil
}

func (s *stubMosqueService) Get(ctx context.Context, id int64) (mosque.Mosque, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return mosque.Mosque{}, nil
}

type stubDhikrService struct {
	randomFn func(ctx context.Context, categoryID int) (dhikr.Dhikr, error)
}

func (s *stubDhikrService) Random(ctx context.Context, categoryID int) (dhikr.Dhikr, error) {
	if s.randomFn != nil {
		return s.randomFn(ctx, categoryID)
	}
	return dhikr.Dhikr{}, nil
}

func (s *stubDhikrService) ByTimeOfDay(context.Context) ([]dhikr.Dhikr, error) {
	return nil, nil
}

type routerOptions struct {
	prayerSvc prayer.Service
	mosqueSvc mosque.Service
	dhikrSvc  dhikr.Service
	checks    []HealthCheck
}

func newRouterUnderTest(t *testing.T, opts routerOptions) http.Handler {
	t.Helper()

	if opts.prayerSvc == nil {
		opts.prayerSvc = &stubPrayerService{}
	}
	if opts.mosqueSvc == nil {
		opts.mosqueSvc = &stubMosqueService{}
	}
	if opts.dhikrSvc == nil {
		opts.dhikrSvc = &stubDhikrService{}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(opts.prayerSvc, opts.mosqueSvc, opts.dhikrSvc, opts.checks, logger)

	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.ReadTimeout = time.Second
	cfg.HTTP.WriteTimeout = time.Second
	cfg.HTTP.AllowedOrigins = []string{"*"}

	return NewRouter(cfg, handler, logger).Handler
}

func performGet(path string, router http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRouter_PrayerTimesSuccess(t *testing.T) {
	svc := &stubPrayerService{
		timesFn: func(ctx context.Context, req prayer.TimesRequest) (prayer.TimesResponse, error) {
			require.InDelta(t, 30.0444, req.Location.Latitude, 1e-9)
			require.InDelta(t, 31.2357, req.Location.Longitude, 1e-9)
			require.Equal(t, "Egyptian", req.Method)
			require.InDelta(t, 2.0, req.TimezoneOffset, 1e-9)
			require.Equal(t, map[string]int{"fajr": 5}, req.Adjustments)
			return prayer.TimesResponse{
				Date:        "2024-03-20",
				Method:      "Egyptian",
				PrayerTimes: map[string]string{"fajr": "04:30"},
				Source:      "calculation",
			}, nil
		},
	}

	recorder := performGet("/api/v1/prayer/times?lat=30.0444&lng=31.2357&method=Egyptian&timezone=2&adjust_fajr=5",
		newRouterUnderTest(t, routerOptions{prayerSvc: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got prayer.TimesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "2024-03-20", got.Date)
	require.Equal(t, "04:30", got.PrayerTimes["fajr"])
}

func TestRouter_PrayerTimesMissingCoordinates(t *testing.T) {
	recorder := performGet("/api/v1/prayer/times?lng=31.2357", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_PrayerTimesCoordinatesOutOfRange(t *testing.T) {
	recorder := performGet("/api/v1/prayer/times?lat=95&lng=31.2357", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_PrayerTimesUnknownMethod(t *testing.T) {
	svc := &stubPrayerService{
		timesFn: func(ctx context.Context, req prayer.TimesRequest) (prayer.TimesResponse, error) {
			return prayer.TimesResponse{}, apperrors.Wrap(apperrors.CodeUnknownMethod, "unknown calculation method", nil)
		},
	}

	recorder := performGet("/api/v1/prayer/times?lat=30&lng=31&method=Nope",
		newRouterUnderTest(t, routerOptions{prayerSvc: svc}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "unknown_method", errBody["error"]["code"])
}

func TestRouter_MethodsListsRegistry(t *testing.T) {
	recorder := performGet("/api/v1/prayer/methods", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Methods []prayer.MethodInfo `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Methods, 10)
}

func TestRouter_Qibla(t *testing.T) {
	recorder := performGet("/api/v1/prayer/qibla?lat=40.7128&lng=-74.006", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got qibla.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Greater(t, got.BearingDegrees, 55.0)
	require.Less(t, got.BearingDegrees, 60.0)
}

func TestRouter_MosqueByIDNotFound(t *testing.T) {
	svc := &stubMosqueService{
		getFn: func(ctx context.Context, id int64) (mosque.Mosque, error) {
			return mosque.Mosque{}, apperrors.Wrap(apperrors.CodeNotFound, "mosque not found", nil)
		},
	}

	recorder := performGet("/api/v1/mosques/42", newRouterUnderTest(t, routerOptions{mosqueSvc: svc}))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_MosqueByIDInvalidID(t *testing.T) {
	recorder := performGet("/api/v1/mosques/abc", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_MosquesNearbyPassesBounds(t *testing.T) {
	svc := &stubMosqueService{
		nearbyFn: func(ctx context.Context, loc geo.Coordinate, radius, limit int) ([]mosque.NearbyMosque, error) {
			require.Equal(t, 3000, radius)
			require.Equal(t, 5, limit)
			return []mosque.NearbyMosque{{Mosque: mosque.Mosque{ID: 1, Name: "Al-Azhar Mosque"}}}, nil
		},
	}

	recorder := performGet("/api/v1/mosques/nearby?lat=30&lng=31&radius=3000&limit=5",
		newRouterUnderTest(t, routerOptions{mosqueSvc: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Mosques []mosque.NearbyMosque `json:"mosques"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 1, got.Count)
	require.Equal(t, "Al-Azhar Mosque", got.Mosques[0].Name)
}

func TestRouter_DhikrRandomCategoryParam(t *testing.T) {
	svc := &stubDhikrService{
		randomFn: func(ctx context.Context, categoryID int) (dhikr.Dhikr, error) {
			require.Equal(t, dhikr.CategoryEvening, categoryID)
			return dhikr.Dhikr{ID: 3, CategoryID: categoryID, TextAr: "أمسينا"}, nil
		},
	}

	recorder := performGet("/api/v1/dhikr/random?category=2", newRouterUnderTest(t, routerOptions{dhikrSvc: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got dhikr.Dhikr
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, int64(3), got.ID)
}

func TestRouter_HealthReportsDependencies(t *testing.T) {
	checks := []HealthCheck{
		{Name: "postgres", Probe: func(ctx context.Context) error { return nil }},
		{Name: "valkey", Probe: func(ctx context.Context) error { return errors.New("connection refused") }},
	}

	recorder := performGet("/health", newRouterUnderTest(t, routerOptions{checks: checks}))
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var got struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "degraded", got.Status)
	require.Equal(t, "up", got.Dependencies["postgres"])
	require.Equal(t, "down", got.Dependencies["valkey"])
}

func TestRouter_HealthOK(t *testing.T) {
	recorder := performGet("/health", newRouterUnderTest(t, routerOptions{}))
	require.Equal(t, http.StatusOK, recorder.Code)
}
