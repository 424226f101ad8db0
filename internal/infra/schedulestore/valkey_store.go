// Package schedulestore caches computed daily prayer schedules keyed by
// (location, date, method). The calculation core stays stateless; this cache
// sits strictly in front of it.
package schedulestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
)

// ValkeyStore persists schedules in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "prayer"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, loc geo.Coordinate, date, method string) (prayer.Schedule, bool, error) {
	cmd := s.client.B().Get().Key(s.key(loc, date, method)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return prayer.Schedule{}, false, nil
		}
		return prayer.Schedule{}, false, err
	}

	var sched prayer.Schedule
	if err := json.Unmarshal([]byte(payload), &sched); err != nil {
		return prayer.Schedule{}, false, err
	}
	return sched, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, sched prayer.Schedule, ttl time.Duration) error {
	payload, err := json.Marshal(sched)
	if err != nil {
		return err
	}

	key := s.key(sched.Location, sched.Date, sched.Method)
	if ttl > 0 {
		cmd := s.client.B().Set().Key(key).Value(string(payload)).Ex(ttl).Build()
		return s.client.Do(ctx, cmd).Error()
	}
	cmd := s.client.B().Set().Key(key).Value(string(payload)).Build()
	return s.client.Do(ctx, cmd).Error()
}

// key rounds coordinates to four decimal places (~11 m) so nearby requests
// share cache entries.
func (s *ValkeyStore) key(loc geo.Coordinate, date, method string) string {
	return fmt.Sprintf("%s:sched:%.4f:%.4f:%s:%s", s.prefix, loc.Latitude, loc.Longitude, date, method)
}
