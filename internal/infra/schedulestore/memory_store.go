package schedulestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
)

// MemoryStore is the in-process fallback used when Valkey is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	sched     prayer.Schedule
	expiresAt time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, loc geo.Coordinate, date, method string) (prayer.Schedule, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[memoryKey(loc, date, method)]
	s.mu.RUnlock()
	if !ok {
		return prayer.Schedule{}, false, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, memoryKey(loc, date, method))
		s.mu.Unlock()
		return prayer.Schedule{}, false, nil
	}
	return entry.sched, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, sched prayer.Schedule, ttl time.Duration) error {
	entry := memoryEntry{sched: sched}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[memoryKey(sched.Location, sched.Date, sched.Method)] = entry
	s.mu.Unlock()
	return nil
}

func memoryKey(loc geo.Coordinate, date, method string) string {
	return fmt.Sprintf("%.4f:%.4f:%s:%s", loc.Latitude, loc.Longitude, date, method)
}
