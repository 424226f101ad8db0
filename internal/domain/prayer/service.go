package prayer

import (
	"context"
	"log/slog"
	"time"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/qibla"
	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

// Service exposes the prayer time operations consumed by the HTTP layer.
type Service interface {
	Times(ctx context.Context, req TimesRequest) (TimesResponse, error)
	Monthly(ctx context.Context, req MonthlyRequest) (MonthlyResponse, error)
	Methods() []MethodInfo
	Qibla(loc geo.Coordinate) qibla.Result
}

// Store caches daily schedules keyed by (location, date, method). The core
// calculation stays stateless; caching happens strictly at this layer.
type Store interface {
	Get(ctx context.Context, loc geo.Coordinate, date string, method string) (Schedule, bool, error)
	Save(ctx context.Context, sched Schedule, ttl time.Duration) error
}

// TimingsClient fetches a day's schedule from the AlAdhan API.
type TimingsClient interface {
	Fetch(ctx context.Context, loc geo.Coordinate, date time.Time, method Method) (Schedule, error)
}

// Geocoder resolves a country name for coordinates, best effort.
type Geocoder interface {
	CountryName(ctx context.Context, loc geo.Coordinate) (string, error)
}

// Config wires runtime settings for the prayer service.
type Config struct {
	DefaultMethod string
	CacheTTL      time.Duration
	// PreferAPI makes the service try the AlAdhan API before computing
	// locally; any API failure silently falls back to the calculation.
	PreferAPI bool
}

// TimesRequest asks for one day's schedule.
type TimesRequest struct {
	Location       geo.Coordinate
	Date           string // "2006-01-02"; empty means today
	Method         string
	TimezoneOffset float64
	Adjustments    map[string]int
}

// LocationInfo echoes the request coordinates with a resolved country.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

// TimesResponse is serialized back to API consumers.
type TimesResponse struct {
	Location    LocationInfo      `json:"location"`
	Date        string            `json:"date"`
	Method      string            `json:"method"`
	PrayerTimes map[string]string `json:"prayer_times"`
	NextPrayer  *NextInfo         `json:"next_prayer"`
	Clamped     bool              `json:"clamped,omitempty"`
	Source      string            `json:"source"`
}

// MonthlyRequest asks for a whole month of schedules.
type MonthlyRequest struct {
	Location       geo.Coordinate
	Year           int
	Month          int
	Method         string
	TimezoneOffset float64
}

// MonthlyResponse carries one schedule per day in ascending order.
type MonthlyResponse struct {
	Location geo.Coordinate `json:"location"`
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Method   string         `json:"method"`
	Days     []Schedule     `json:"days"`
}

type service struct {
	cfg      Config
	store    Store
	api      TimingsClient
	geocoder Geocoder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the prayer domain.
func NewService(cfg Config, store Store, api TimingsClient, geocoder Geocoder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		api:      api,
		geocoder: geocoder,
		logger:   logger.With("component", "prayer.service"),
		now:      time.Now,
	}
}

func (s *service) Times(ctx context.Context, req TimesRequest) (TimesResponse, error) {
	method, err := s.resolveMethod(req.Method)
	if err != nil {
		return TimesResponse{}, err
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return TimesResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}

	sched, err := s.schedule(ctx, req, method, date)
	if err != nil {
		return TimesResponse{}, err
	}

	// The schedule clock runs at the requested UTC offset, so the countdown
	// reference must too.
	localNow := s.now().UTC().Add(time.Duration(req.TimezoneOffset * float64(time.Hour)))
	next := NextPrayer(sched.Times, localNow)

	country := "Unknown"
	if s.geocoder != nil {
		if name, err := s.geocoder.CountryName(ctx, req.Location); err == nil && name != "" {
			country = name
		} else if err != nil {
			s.logger.Warn("reverse geocode failed", "error", err)
		}
	}

	return TimesResponse{
		Location: LocationInfo{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Country:   country,
		},
		Date:        sched.Date,
		Method:      string(method),
		PrayerTimes: sched.Times,
		NextPrayer:  next,
		Clamped:     sched.Clamped,
		Source:      sched.Source,
	}, nil
}

func (s *service) schedule(ctx context.Context, req TimesRequest, method Method, date time.Time) (Schedule, error) {
	dateKey := date.Format("2006-01-02")

	// Adjusted schedules are caller specific and bypass the shared cache.
	cacheable := len(req.Adjustments) == 0 && s.store != nil

	if cacheable {
		if cached, ok, err := s.store.Get(ctx, req.Location, dateKey, string(method)); err != nil {
			s.logger.Warn("schedule cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	var sched Schedule
	fetched := false
	if s.cfg.PreferAPI && s.api != nil {
		apiSched, err := s.api.Fetch(ctx, req.Location, date, method)
		if err != nil {
			s.logger.Warn("aladhan fetch failed, falling back to local calculation",
				"date", dateKey, "method", method, "error", err)
		} else {
			sched = apiSched
			fetched = true
		}
	}
	if !fetched {
		var err error
		sched, err = Calculate(req.Location, date, method, req.TimezoneOffset, req.Adjustments)
		if err != nil {
			return Schedule{}, err
		}
	}

	if cacheable {
		if err := s.store.Save(ctx, sched, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("schedule cache write failed", "error", err)
		}
	}
	return sched, nil
}

func (s *service) Monthly(ctx context.Context, req MonthlyRequest) (MonthlyResponse, error) {
	method, err := s.resolveMethod(req.Method)
	if err != nil {
		return MonthlyResponse{}, err
	}
	if req.Month < 1 || req.Month > 12 {
		return MonthlyResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "month must be between 1 and 12", nil)
	}

	days, err := CalculateMonth(req.Location, req.Year, time.Month(req.Month), method, req.TimezoneOffset)
	if err != nil {
		return MonthlyResponse{}, err
	}

	return MonthlyResponse{
		Location: req.Location,
		Year:     req.Year,
		Month:    req.Month,
		Method:   string(method),
		Days:     days,
	}, nil
}

func (s *service) Methods() []MethodInfo {
	return Methods()
}

func (s *service) Qibla(loc geo.Coordinate) qibla.Result {
	return qibla.Direction(loc)
}

func (s *service) resolveMethod(raw string) (Method, error) {
	if raw == "" {
		raw = s.cfg.DefaultMethod
	}
	return ParseMethod(raw)
}

func (s *service) resolveDate(input string) (time.Time, error) {
	if input == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", input)
}
