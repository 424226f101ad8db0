package dhikrrepo

import (
	"context"
	"sync"

	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
)

// MemoryRepository is a slice-backed dhikr.Repository used when Postgres is
// not configured or unreachable at startup.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []dhikr.Dhikr
}

// NewMemoryRepository seeds the repository with the given entries.
func NewMemoryRepository(seed []dhikr.Dhikr) *MemoryRepository {
	return &MemoryRepository{entries: append([]dhikr.Dhikr(nil), seed...)}
}

func (r *MemoryRepository) Pick(_ context.Context, categoryID int, dayOfYear int) (dhikr.Dhikr, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var inCategory []dhikr.Dhikr
	for _, d := range r.entries {
		if d.CategoryID == categoryID {
			inCategory = append(inCategory, d)
		}
	}
	if len(inCategory) == 0 {
		return dhikr.Dhikr{}, false, nil
	}
	return inCategory[dayOfYear%len(inCategory)], true, nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, categoryID, limit int) ([]dhikr.Dhikr, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []dhikr.Dhikr
	for _, d := range r.entries {
		if d.CategoryID != categoryID {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
