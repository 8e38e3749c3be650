package slots

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayCapacity is the number of economy slots left on one day.
type DayCapacity struct {
	Date      time.Time
	Remaining int64
}

// ParseSchedule reads "YYYY-MM-DD=N" pairs separated by commas, e.g. "2026-03-03=4,2026-03-04=0".
// Days are returned in date order; a day listed twice is an error.
func ParseSchedule(s string) ([]DayCapacity, error) {
	var out []DayCapacity
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, count, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("economy schedule %q: want YYYY-MM-DD=N", part)
		}
		day = strings.TrimSpace(day)
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return nil, fmt.Errorf("economy schedule %q: %w", part, err)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("economy schedule %q: remaining must be a non-negative integer", part)
		}
		if seen[day] {
			return nil, fmt.Errorf("economy schedule: %s listed twice", day)
		}
		seen[day] = true
		out = append(out, DayCapacity{Date: date, Remaining: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Publish writes every day's capacity, stopping at the first failure.
func (f *RedisSlotFinder) Publish(ctx context.Context, days []DayCapacity) error {
	for _, d := range days {
		if err := f.SetCapacity(ctx, d.Date, d.Remaining); err != nil {
			return err
		}
	}
	return nil
}
