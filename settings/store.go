package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Setting keys. Values are plain strings in Redis; absent keys fall back to
// the defaults below.
const (
	KeyOpeningTime = "STORE_OPENING_TIME" // "08:00"
	KeyClosingTime = "STORE_CLOSING_TIME" // "20:00"
	KeyOpenDays    = "STORE_OPEN_DAYS"    // "1,2,3,4,5,6" (time.Weekday numbers)
	KeyPageSize    = "PAGE_SIZE"
)

const (
	DefaultOpeningTime = "08:00"
	DefaultClosingTime = "20:00"
	DefaultOpenDays    = "1,2,3,4,5,6"
	DefaultPageSize    = 20
)

// Store is the persisted key-value configuration store, backed by Redis.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func key(name string) string { return fmt.Sprintf("ld:setting:%s", name) }

func (s *Store) Get(ctx context.Context, name, def string) (string, error) {
	v, err := s.rdb.Get(ctx, key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, name, value string) error {
	return s.rdb.Set(ctx, key(name), value, 0).Err()
}

// PageSize never fails; bad or absent values fall back to the default.
func (s *Store) PageSize(ctx context.Context) int {
	v, err := s.Get(ctx, KeyPageSize, "")
	if err != nil || v == "" {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultPageSize
	}
	return n
}

// Hours assembles the validated business-hours configuration. Unparseable
// stored values degrade to the defaults rather than blocking orders.
func (s *Store) Hours(ctx context.Context) (StoreHours, error) {
	opening, err := s.Get(ctx, KeyOpeningTime, DefaultOpeningTime)
	if err != nil {
		return StoreHours{}, err
	}
	closing, err := s.Get(ctx, KeyClosingTime, DefaultClosingTime)
	if err != nil {
		return StoreHours{}, err
	}
	days, err := s.Get(ctx, KeyOpenDays, DefaultOpenDays)
	if err != nil {
		return StoreHours{}, err
	}

	h := StoreHours{}
	if h.Opening, err = ParseClock(opening); err != nil {
		h.Opening, _ = ParseClock(DefaultOpeningTime)
	}
	if h.Closing, err = ParseClock(closing); err != nil {
		h.Closing, _ = ParseClock(DefaultClosingTime)
	}
	if h.OpenDays, err = ParseOpenDays(days); err != nil {
		h.OpenDays, _ = ParseOpenDays(DefaultOpenDays)
	}
	return h, nil
}
