package mosquerepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
)

// MemoryRepository is a slice-backed mosque.Repository used when Postgres is
// not configured or unreachable at startup.
type MemoryRepository struct {
	mu      sync.RWMutex
	mosques []mosque.Mosque
}

// NewMemoryRepository seeds the repository with the given entries.
func NewMemoryRepository(seed []mosque.Mosque) *MemoryRepository {
	return &MemoryRepository{mosques: append([]mosque.Mosque(nil), seed...)}
}

func (r *MemoryRepository) FindNearby(_ context.Context, loc geo.Coordinate, radiusMeters, limit int) ([]mosque.Mosque, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	radiusKM := float64(radiusMeters) / 1000

	type hit struct {
		m    mosque.Mosque
		dist float64
	}
	var hits []hit
	for _, m := range r.mosques {
		d := geo.DistanceKM(loc, m.Location)
		if d <= radiusKM {
			hits = append(hits, hit{m: m, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]mosque.Mosque, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.m)
	}
	return out, nil
}

func (r *MemoryRepository) SearchByName(_ context.Context, name, city, country string, limit, offset int) ([]mosque.Mosque, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)

	var matched []mosque.Mosque
	for _, m := range r.mosques {
		if !strings.Contains(strings.ToLower(m.Name), needle) {
			continue
		}
		if city != "" && !strings.EqualFold(m.City, city) {
			continue
		}
		if country != "" && !strings.EqualFold(m.Country, country) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (mosque.Mosque, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.mosques {
		if m.ID == id {
			return m, true, nil
		}
	}
	return mosque.Mosque{}, false, nil
}
