package services

import (
	"fmt"
	"removal-pricing-service/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	decZero  = decimal.Zero
	decOne   = decimal.NewFromInt(1)
	decSixty = decimal.NewFromInt(60)

	// Largest single settled amount: £10tn. A whole breakdown of such amounts still fits int64.
	maxSettledPence = decimal.New(1, 15)
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// pence settles an unrounded amount to whole pence, rounding half away from zero.
// Amounts beyond maxSettledPence are rejected rather than truncated.
func pence(d decimal.Decimal) (int64, error) {
	r := d.Round(0)
	if r.Abs().GreaterThan(maxSettledPence) {
		return 0, fmt.Errorf("settle %s pence: %w", r.String(), domain.ErrAmountOutOfRange)
	}
	return r.IntPart(), nil
}

// ledger settles amounts for one calculation and keeps the first settlement error,
// so fee helpers stay single-valued. Check err before using any settled value.
type ledger struct {
	err error
}

func (l *ledger) pence(d decimal.Decimal) int64 {
	if l.err != nil {
		return 0
	}
	v, err := pence(d)
	if err != nil {
		l.err = err
		return 0
	}
	return v
}

// sum settles a total of already-settled amounts without risking int64 overflow.
func (l *ledger) sum(amounts ...int64) int64 {
	total := decZero
	for _, a := range amounts {
		total = total.Add(decInt(a))
	}
	return l.pence(total)
}
