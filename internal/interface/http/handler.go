package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

// HealthCheck probes one backing dependency for the health endpoint.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	prayerSvc prayer.Service
	mosqueSvc mosque.Service
	dhikrSvc  dhikr.Service
	checks    []HealthCheck
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(prayerSvc prayer.Service, mosqueSvc mosque.Service, dhikrSvc dhikr.Service, checks []HealthCheck, logger *slog.Logger) *Handler {
	return &Handler{
		prayerSvc: prayerSvc,
		mosqueSvc: mosqueSvc,
		dhikrSvc:  dhikrSvc,
		checks:    checks,
		logger:    logger.With("component", "http.handler"),
	}
}

// PrayerTimes returns one day's schedule with the next prayer countdown.
func (h *Handler) PrayerTimes(c *gin.Context) {
	loc, ok := h.bindCoordinate(c)
	if !ok {
		return
	}

	req := prayer.TimesRequest{
		Location:       loc,
		Date:           c.Query("date"),
		Method:         c.Query("method"),
		TimezoneOffset: queryFloat(c, "timezone", 0),
		Adjustments:    bindAdjustments(c),
	}

	resp, err := h.prayerSvc.Times(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, prayerHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MonthlyPrayerTimes returns one schedule per day of the requested month.
func (h *Handler) MonthlyPrayerTimes(c *gin.Context) {
	loc, ok := h.bindCoordinate(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	req := prayer.MonthlyRequest{
		Location:       loc,
		Year:           queryInt(c, "year", now.Year()),
		Month:          queryInt(c, "month", int(now.Month())),
		Method:         c.Query("method"),
		TimezoneOffset: queryFloat(c, "timezone", 0),
	}

	resp, err := h.prayerSvc.Monthly(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, prayerHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Methods lists the supported calculation methods and their parameters.
func (h *Handler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.prayerSvc.Methods()})
}

// Qibla returns the great circle bearing and distance to the Kaaba.
func (h *Handler) Qibla(c *gin.Context) {
	loc, ok := h.bindCoordinate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.prayerSvc.Qibla(loc))
}

// MosquesNearby lists mosques around the caller ordered by distance.
func (h *Handler) MosquesNearby(c *gin.Context) {
	loc, ok := h.bindCoordinate(c)
	if !ok {
		return
	}

	radius := queryInt(c, "radius", 0)
	limit := queryInt(c, "limit", 0)

	mosques, err := h.mosqueSvc.Nearby(c.Request.Context(), loc, radius, limit)
	if err != nil {
		abortWithError(c, mosqueHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mosques": mosques, "count": len(mosques)})
}

// MosquesSearch matches mosque names with optional city and country filters.
func (h *Handler) MosquesSearch(c *gin.Context) {
	result, err := h.mosqueSvc.Search(c.Request.Context(),
		c.Query("q"),
		c.Query("city"),
		c.Query("country"),
		queryInt(c, "limit", 0),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		abortWithError(c, mosqueHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// MosqueByID fetches a single mosque directory entry.
func (h *Handler) MosqueByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "mosque id must be an integer", err))
		return
	}

	m, err := h.mosqueSvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, mosqueHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, m)
}

// DhikrRandom returns the day's dhikr for a category.
func (h *Handler) DhikrRandom(c *gin.Context) {
	d, err := h.dhikrSvc.Random(c.Request.Context(), queryInt(c, "category", 0))
	if err != nil {
		abortWithError(c, dhikrHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, d)
}

// DhikrTimesOfDay lists adhkar matching the current time of day.
func (h *Handler) DhikrTimesOfDay(c *gin.Context) {
	items, err := h.dhikrSvc.ByTimeOfDay(c.Request.Context())
	if err != nil {
		abortWithError(c, dhikrHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"dhikr": items, "count": len(items)})
}

// Health reports service liveness and the state of backing dependencies.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{}
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			h.logger.Warn("health check failed", "dependency", check.Name, "error", err)
			deps[check.Name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[check.Name] = "up"
	}

	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	c.JSON(status, body)
}

func (h *Handler) bindCoordinate(c *gin.Context) (geo.Coordinate, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat must be a number", err))
		return geo.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lng must be a number", err))
		return geo.Coordinate{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "coordinates out of range", nil))
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Latitude: lat, Longitude: lng}, true
}

// bindAdjustments reads per prayer minute offsets from adjust_<name> params.
func bindAdjustments(c *gin.Context) map[string]int {
	var out map[string]int
	for _, name := range prayer.PrayerNames {
		raw := c.Query("adjust_" + name)
		if raw == "" {
			continue
		}
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if out == nil {
			out = make(map[string]int)
		}
		out[name] = minutes
	}
	return out
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func prayerHTTPError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "prayer_times_failed"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeUnknownMethod):
		status = http.StatusBadRequest
		code = "unknown_method"
	case apperrors.IsCode(err, apperrors.CodeUpstream):
		status = http.StatusBadGateway
		code = "upstream_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func mosqueHTTPError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "mosque_lookup_failed"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status = http.StatusNotFound
		code = "not_found"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func dhikrHTTPError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "dhikr_lookup_failed"
	if apperrors.IsCode(err, apperrors.CodeNotFound) {
		status = http.StatusNotFound
		code = "not_found"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
