package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "quote:snapshot:"

// Input and Result are kept as strings so the hashed bytes are stored verbatim.
type redisSnapshot struct {
	ID             string    `json:"id"`
	InputHash      string    `json:"input_hash"`
	Hash           string    `json:"snapshot_hash"`
	AmountGbpMinor int64     `json:"amount_gbp_minor"`
	Tier           string    `json:"tier"`
	CreatedAt      time.Time `json:"created_at"`
	Input          string    `json:"input_json"`
	Result         string    `json:"result_json"`
}

// RedisQuoteRepository stores snapshots with SETNX so an issued quote is never overwritten.
// TTL of zero keeps snapshots indefinitely.
type RedisQuoteRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisQuoteRepository(client *redis.Client, ttl time.Duration) *RedisQuoteRepository {
	return &RedisQuoteRepository{Client: client, TTL: ttl}
}

func (r *RedisQuoteRepository) SaveSnapshot(ctx context.Context, s *domain.QuoteSnapshot) (err error) {
	defer obs.Time(ctx, "quote.redis.SaveSnapshot")(&err)

	if r.Client == nil {
		return errors.New("save snapshot: redis client is nil")
	}
	if s == nil || s.ID == "" {
		return errors.New("save snapshot: id must not be empty")
	}

	payload, err := json.Marshal(redisSnapshot{
		ID:             s.ID,
		InputHash:      s.InputHash,
		Hash:           s.Hash,
		AmountGbpMinor: s.AmountGbpMinor,
		Tier:           string(s.Tier),
		CreatedAt:      s.CreatedAt,
		Input:          string(s.Input),
		Result:         string(s.Result),
	})
	if err != nil {
		return fmt.Errorf("save snapshot id=%q: marshal: %w", s.ID, err)
	}

	ok, err := r.Client.SetNX(ctx, snapshotKeyPrefix+s.ID, payload, r.TTL).Result()
	if err != nil {
		return fmt.Errorf("save snapshot id=%q: setnx: %w", s.ID, err)
	}
	if !ok {
		return fmt.Errorf("save snapshot id=%q: %w", s.ID, domain.ErrSnapshotExists)
	}
	return nil
}

func (r *RedisQuoteRepository) GetSnapshot(ctx context.Context, id string) (_ *domain.QuoteSnapshot, err error) {
	defer obs.Time(ctx, "quote.redis.GetSnapshot")(&err)

	if r.Client == nil {
		return nil, errors.New("get snapshot: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, snapshotKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot id=%q: %w", id, err)
	}

	var rs redisSnapshot
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("get snapshot id=%q: unmarshal: %w", id, err)
	}

	return &domain.QuoteSnapshot{
		ID:             rs.ID,
		InputHash:      rs.InputHash,
		Hash:           rs.Hash,
		AmountGbpMinor: rs.AmountGbpMinor,
		Tier:           domain.PricingTier(rs.Tier),
		CreatedAt:      rs.CreatedAt,
		Input:          []byte(rs.Input),
		Result:         []byte(rs.Result),
	}, nil
}
