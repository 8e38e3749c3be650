package slots

import (
	"context"
	"errors"
	"fmt"
	"removal-pricing-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const slotKeyPrefix = "economy_slots:"

// RedisSlotFinder reads remaining shared-van capacity per day from Redis.
// A date must also pass the calendar rules before capacity is consulted.
type RedisSlotFinder struct {
	Client   *redis.Client
	Calendar *CalendarSlotFinder
}

func NewRedisSlotFinder(client *redis.Client, calendar *CalendarSlotFinder) *RedisSlotFinder {
	return &RedisSlotFinder{Client: client, Calendar: calendar}
}

func slotKey(date time.Time) string {
	return slotKeyPrefix + date.Format(time.DateOnly)
}

func (f *RedisSlotFinder) HasEconomySlot(ctx context.Context, date time.Time) (_ bool, err error) {
	defer obs.Time(ctx, "slots.redis.HasEconomySlot")(&err)

	if f.Client == nil {
		return false, errors.New("economy slot: redis client is nil")
	}
	if f.Calendar != nil {
		ok, err := f.Calendar.HasEconomySlot(ctx, date)
		if err != nil || !ok {
			return false, err
		}
	}

	remaining, err := f.Client.Get(ctx, slotKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("economy slot %s: %w", date.Format(time.DateOnly), err)
	}
	return remaining > 0, nil
}

// SetCapacity publishes the number of economy slots left on a day.
// The counters are written by cmd/dbtool from ECONOMY_SLOTS.
func (f *RedisSlotFinder) SetCapacity(ctx context.Context, date time.Time, remaining int64) error {
	if f.Client == nil {
		return errors.New("set economy slots: redis client is nil")
	}
	if err := f.Client.Set(ctx, slotKey(date), remaining, 0).Err(); err != nil {
		return fmt.Errorf("set economy slots %s: %w", date.Format(time.DateOnly), err)
	}
	return nil
}
