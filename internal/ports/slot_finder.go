package ports

import (
	"context"
	"time"
)

// Port: availability of shared-van (economy) capacity.
type SlotFinder interface {
	// Report whether an economy multi-drop slot exists for the given date.
	HasEconomySlot(ctx context.Context, date time.Time) (bool, error)
}
