package mosque

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/pkg/arabic"
	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

// Repository is the read-only mosque directory the service queries.
type Repository interface {
	FindNearby(ctx context.Context, loc geo.Coordinate, radiusMeters, limit int) ([]Mosque, error)
	SearchByName(ctx context.Context, name, city, country string, limit, offset int) ([]Mosque, int, error)
	GetByID(ctx context.Context, id int64) (Mosque, bool, error)
}

// Config bounds the search parameters accepted from the HTTP layer.
type Config struct {
	DefaultRadiusMeters int
	MaxRadiusMeters     int
	DefaultLimit        int
	MaxLimit            int
}

// Service exposes mosque directory lookups.
type Service interface {
	Nearby(ctx context.Context, loc geo.Coordinate, radiusMeters, limit int) ([]NearbyMosque, error)
	Search(ctx context.Context, name, city, country string, limit, offset int) (SearchResult, error)
	Get(ctx context.Context, id int64) (Mosque, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the mosque domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.DefaultRadiusMeters <= 0 {
		cfg.DefaultRadiusMeters = 5000
	}
	if cfg.MaxRadiusMeters <= 0 {
		cfg.MaxRadiusMeters = 50000
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "mosque.service"),
	}
}

func (s *service) Nearby(ctx context.Context, loc geo.Coordinate, radiusMeters, limit int) ([]NearbyMosque, error) {
	if radiusMeters <= 0 {
		radiusMeters = s.cfg.DefaultRadiusMeters
	}
	if radiusMeters > s.cfg.MaxRadiusMeters {
		radiusMeters = s.cfg.MaxRadiusMeters
	}
	limit = s.clampLimit(limit)

	mosques, err := s.repo.FindNearby(ctx, loc, radiusMeters, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "nearby mosque lookup failed", err)
	}

	enriched := make([]NearbyMosque, 0, len(mosques))
	for _, m := range mosques {
		enriched = append(enriched, NearbyMosque{
			Mosque:         m,
			DistanceKM:     roundTo2(geo.DistanceKM(loc, m.Location)),
			BearingDegrees: roundTo2(geo.InitialBearing(loc, m.Location)),
		})
	}
	return enriched, nil
}

func (s *service) Search(ctx context.Context, name, city, country string, limit, offset int) (SearchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SearchResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "search term cannot be empty", nil)
	}
	// Arabic mosque names are stored without orthographic variants, so fold
	// the query the same way before matching.
	name = arabic.NormalizeSearch(name)

	limit = s.clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	mosques, total, err := s.repo.SearchByName(ctx, name, city, country, limit, offset)
	if err != nil {
		return SearchResult{}, apperrors.Wrap(apperrors.CodeStorage, "mosque search failed", err)
	}

	return SearchResult{
		Mosques: mosques,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (Mosque, error) {
	m, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Mosque{}, apperrors.Wrap(apperrors.CodeStorage, "mosque lookup failed", err)
	}
	if !ok {
		return Mosque{}, apperrors.Wrap(apperrors.CodeNotFound, "mosque not found", nil)
	}
	return m, nil
}

func (s *service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
