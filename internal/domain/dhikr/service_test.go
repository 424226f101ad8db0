package dhikr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

func newTestService(repo Repository, at time.Time) *service {
	return &service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return at },
	}
}

func TestRandomDefaultsToMorningCategory(t *testing.T) {
	repo := &stubRepo{entry: Dhikr{ID: 3, CategoryID: CategoryMorning, TextAr: "سبحان الله"}}
	svc := newTestService(repo, time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))

	d, err := svc.Random(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), d.ID)
	require.Equal(t, CategoryMorning, repo.lastCategory)
	require.Equal(t, 167, repo.lastDayOfYear, "2024-06-15 is day 167 of a leap year")
}

func TestRandomEmptyCategory(t *testing.T) {
	svc := newTestService(&stubRepo{missing: true}, time.Now())

	_, err := svc.Random(context.Background(), CategoryNight)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestByTimeOfDayBuckets(t *testing.T) {
	cases := []struct {
		hour     int
		category int
	}{
		{hour: 6, category: CategoryMorning},
		{hour: 11, category: CategoryMorning},
		{hour: 13, category: CategoryGeneral},
		{hour: 18, category: CategoryEvening},
		{hour: 21, category: CategoryNight},
		{hour: 2, category: CategoryNight},
	}

	for _, tc := range cases {
		repo := &stubRepo{}
		svc := newTestService(repo, time.Date(2024, 6, 15, tc.hour, 30, 0, 0, time.UTC))
		_, err := svc.ByTimeOfDay(context.Background())
		require.NoError(t, err)
		require.Equal(t, tc.category, repo.lastCategory, "hour %d", tc.hour)
	}
}

func TestRepositoryFailureWrapped(t *testing.T) {
	svc := newTestService(&stubRepo{err: errors.New("boom")}, time.Now())
	_, err := svc.ByTimeOfDay(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

type stubRepo struct {
	entry         Dhikr
	missing       bool
	err           error
	lastCategory  int
	lastDayOfYear int
}

func (s *stubRepo) Pick(ctx context.Context, categoryID, dayOfYear int) (Dhikr, bool, error) {
	s.lastCategory = categoryID
	s.lastDayOfYear = dayOfYear
	if s.err != nil {
		return Dhikr{}, false, s.err
	}
	return s.entry, !s.missing, nil
}

func (s *stubRepo) ListByCategory(ctx context.Context, categoryID, limit int) ([]Dhikr, error) {
	s.lastCategory = categoryID
	if s.err != nil {
		return nil, s.err
	}
	return []Dhikr{s.entry}, nil
}
