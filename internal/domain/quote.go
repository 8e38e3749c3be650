package domain

import "time"

// An immutable record of a quote as it was issued.
// Hash covers the canonical input and result payloads.
type QuoteSnapshot struct {
	ID             string
	InputHash      string
	Hash           string
	AmountGbpMinor int64
	Tier           PricingTier
	CreatedAt      time.Time
	Input          []byte
	Result         []byte
}
