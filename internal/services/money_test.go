package services

import (
	"errors"
	"removal-pricing-service/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPenceRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2.5", 3},
		{"-2.5", -3},
		{"2.4999", 2},
		{"-2.4999", -2},
		{"1874.5", 1875},
		{"0", 0},
	}

	for _, tc := range cases {
		got, err := pence(decimal.RequireFromString(tc.in))
		if err != nil {
			t.Fatalf("pence(%s): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("pence(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPenceRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"1000000000000001", "-1000000000000001", "1e300", "18446744073709551616"} {
		if _, err := pence(decimal.RequireFromString(in)); !errors.Is(err, domain.ErrAmountOutOfRange) {
			t.Errorf("pence(%s) err = %v, want ErrAmountOutOfRange", in, err)
		}
	}
	if got, err := pence(decimal.New(1, 15)); err != nil || got != 1_000_000_000_000_000 {
		t.Errorf("pence(1e15) = %d, %v; want 1e15, nil", got, err)
	}
}

func TestLedgerVatRounding(t *testing.T) {
	cases := []struct {
		subtotal int64
		rate     float64
		want     int64
	}{
		{12345, 0.20, 2469},
		{12347, 0.20, 2469},
		{12348, 0.20, 2470},
		{20, 0.175, 4},
		{60, 0.175, 11},
	}

	for _, tc := range cases {
		var l ledger
		got := l.pence(decInt(tc.subtotal).Mul(dec(tc.rate)))
		if l.err != nil {
			t.Fatalf("vat on %d: %v", tc.subtotal, l.err)
		}
		if got != tc.want {
			t.Errorf("vat on %d at %v = %d, want %d", tc.subtotal, tc.rate, got, tc.want)
		}
	}
}

func TestLedgerKeepsFirstError(t *testing.T) {
	var l ledger
	if got := l.pence(decimal.RequireFromString("1e40")); got != 0 {
		t.Errorf("out of range settled to %d, want 0", got)
	}
	if got := l.pence(decInt(5)); got != 0 {
		t.Errorf("settled %d after a failure, want 0", got)
	}
	if !errors.Is(l.err, domain.ErrAmountOutOfRange) {
		t.Fatalf("err = %v, want ErrAmountOutOfRange", l.err)
	}

	var ok ledger
	if got := ok.sum(9_000_000_000_000, 1_800_000_000_000); got != 10_800_000_000_000 || ok.err != nil {
		t.Errorf("sum = %d, %v", got, ok.err)
	}
}
