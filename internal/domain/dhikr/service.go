package dhikr

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

// Repository is the read-only dhikr collection backing the service.
type Repository interface {
	// Pick returns the day's entry for a category, rotating deterministically
	// with the day of year.
	Pick(ctx context.Context, categoryID int, dayOfYear int) (Dhikr, bool, error)
	ListByCategory(ctx context.Context, categoryID, limit int) ([]Dhikr, error)
}

// Service supplies dhikr appropriate to the request or the time of day.
type Service interface {
	Random(ctx context.Context, categoryID int) (Dhikr, error)
	ByTimeOfDay(ctx context.Context) ([]Dhikr, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the dhikr domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "dhikr.service"),
		now:    time.Now,
	}
}

func (s *service) Random(ctx context.Context, categoryID int) (Dhikr, error) {
	if categoryID <= 0 {
		categoryID = CategoryMorning
	}

	d, ok, err := s.repo.Pick(ctx, categoryID, s.now().UTC().YearDay())
	if err != nil {
		return Dhikr{}, apperrors.Wrap(apperrors.CodeStorage, "dhikr lookup failed", err)
	}
	if !ok {
		return Dhikr{}, apperrors.Wrap(apperrors.CodeNotFound, "no dhikr found for category", nil)
	}
	return d, nil
}

func (s *service) ByTimeOfDay(ctx context.Context) ([]Dhikr, error) {
	category := categoryForHour(s.now().UTC().Hour())

	items, err := s.repo.ListByCategory(ctx, category, 10)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "dhikr listing failed", err)
	}
	return items, nil
}

// categoryForHour buckets the day: morning 05-12, evening 17-20, night 20-05,
// general otherwise.
func categoryForHour(hour int) int {
	switch {
	case hour >= 5 && hour < 12:
		return CategoryMorning
	case hour >= 17 && hour < 20:
		return CategoryEvening
	case hour >= 20 || hour < 5:
		return CategoryNight
	default:
		return CategoryGeneral
	}
}
