package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/metrics"
	"removal-pricing-service/internal/platform/obs"
	"removal-pricing-service/internal/ports"
	"time"
)

// QuoteService prices a job and records the issued quote as an immutable snapshot.
// A quote is only returned once its snapshot is stored, so a later payment can be
// checked against exactly what was quoted.
type QuoteService struct {
	Engine *Engine
	Repo   ports.QuoteRepository
}

func NewQuoteService(engine *Engine, repo ports.QuoteRepository) *QuoteService {
	return &QuoteService{Engine: engine, Repo: repo}
}

func (s *QuoteService) Quote(ctx context.Context, in domain.PricingInput) (*domain.PricingResult, *domain.QuoteSnapshot, error) {
	if s.Engine == nil || s.Repo == nil {
		return nil, nil, errors.New("quote: service not configured")
	}

	start := time.Now()
	res, err := s.Engine.Price(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	took := time.Since(start)

	snap, err := NewSnapshot(in, res)
	if err != nil {
		return nil, nil, fmt.Errorf("quote: %w", err)
	}

	if err := s.save(ctx, snap); err != nil {
		return nil, nil, fmt.Errorf("quote: %w", err)
	}

	metrics.ObserveQuote(string(res.Tier), res.AmountGbpMinor, took)
	return res, snap, nil
}

func (s *QuoteService) save(ctx context.Context, snap *domain.QuoteSnapshot) (err error) {
	defer obs.Time(ctx, "quote.snapshot.save")(&err)
	return s.Repo.SaveSnapshot(ctx, snap)
}

func (s *QuoteService) Get(ctx context.Context, id string) (*domain.QuoteSnapshot, error) {
	snap, err := s.Repo.GetSnapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote %q: %w", id, err)
	}
	return snap, nil
}

// VerifyAmount confirms that amount is exactly what quote id charged and that the
// stored snapshot is intact.
func (s *QuoteService) VerifyAmount(ctx context.Context, id string, amount int64) (*domain.QuoteSnapshot, error) {
	snap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if want := snapshotHash(snap.Input, snap.Result); want != snap.Hash {
		return nil, fmt.Errorf("verify quote %q: stored hash does not match payload: %w", id, domain.ErrSnapshotCorrupt)
	}
	if snap.AmountGbpMinor != amount {
		return nil, fmt.Errorf("verify quote %q: quoted %d, got %d: %w", id, snap.AmountGbpMinor, amount, domain.ErrAmountMismatch)
	}
	return snap, nil
}

// NewSnapshot canonicalises input and result and hashes them together.
func NewSnapshot(in domain.PricingInput, res *domain.PricingResult) (*domain.QuoteSnapshot, error) {
	input, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal input: %w", err)
	}
	result, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal result: %w", err)
	}

	inputSum := sha256.Sum256(input)
	return &domain.QuoteSnapshot{
		ID:             res.Metadata.RequestID,
		InputHash:      hex.EncodeToString(inputSum[:]),
		Hash:           snapshotHash(input, result),
		AmountGbpMinor: res.AmountGbpMinor,
		Tier:           res.Tier,
		CreatedAt:      res.Metadata.CalculatedAt,
		Input:          input,
		Result:         result,
	}, nil
}

func snapshotHash(input, result []byte) string {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte{0})
	h.Write(result)
	return hex.EncodeToString(h.Sum(nil))
}
