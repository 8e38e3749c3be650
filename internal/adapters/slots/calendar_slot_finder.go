package slots

import (
	"context"
	"time"
)

// CalendarSlotFinder offers an economy slot on any future weekday inside the booking horizon.
type CalendarSlotFinder struct {
	HorizonDays int
	Now         func() time.Time
}

func NewCalendarSlotFinder(horizonDays int) *CalendarSlotFinder {
	return &CalendarSlotFinder{HorizonDays: horizonDays, Now: time.Now}
}

func (f *CalendarSlotFinder) HasEconomySlot(ctx context.Context, date time.Time) (bool, error) {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	if !date.After(now) {
		return false, nil
	}
	if date.Sub(now) > time.Duration(f.HorizonDays)*24*time.Hour {
		return false, nil
	}

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}
	return true, nil
}
