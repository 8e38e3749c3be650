package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"strings"
)

// SQLQuoteRepository stores quote snapshots in Postgres. Rows are insert-only.
type SQLQuoteRepository struct {
	DB *sql.DB
}

func NewSQLQuoteRepository(db *sql.DB) *SQLQuoteRepository {
	return &SQLQuoteRepository{DB: db}
}

func (r *SQLQuoteRepository) SaveSnapshot(ctx context.Context, s *domain.QuoteSnapshot) (err error) {
	defer obs.Time(ctx, "quote.sql.SaveSnapshot")(&err)

	if r.DB == nil {
		return errors.New("save snapshot: db is nil")
	}
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("save snapshot: id must not be empty")
	}

	q := `
	INSERT INTO quote_snapshots (
		id, input_hash, snapshot_hash, amount_gbp_minor, tier, created_at, input_json, result_json
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO NOTHING;
	`

	res, err := r.DB.ExecContext(ctx, q,
		s.ID, s.InputHash, s.Hash, s.AmountGbpMinor, string(s.Tier), s.CreatedAt, string(s.Input), string(s.Result),
	)
	if err != nil {
		return fmt.Errorf("save snapshot id=%q: %w", s.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save snapshot id=%q: rows affected: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("save snapshot id=%q: %w", s.ID, domain.ErrSnapshotExists)
	}

	return nil
}

func (r *SQLQuoteRepository) GetSnapshot(ctx context.Context, id string) (_ *domain.QuoteSnapshot, err error) {
	defer obs.Time(ctx, "quote.sql.GetSnapshot")(&err)

	if r.DB == nil {
		return nil, errors.New("get snapshot: db is nil")
	}

	q := `
	SELECT id, input_hash, snapshot_hash, amount_gbp_minor, tier, created_at, input_json, result_json
	FROM quote_snapshots
	WHERE id = $1;
	`

	var (
		s             domain.QuoteSnapshot
		tier          string
		input, result string
	)
	err = r.DB.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.InputHash, &s.Hash, &s.AmountGbpMinor, &tier, &s.CreatedAt, &input, &result,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot id=%q: scan row: %w", id, err)
	}

	s.Tier = domain.PricingTier(tier)
	s.Input = []byte(input)
	s.Result = []byte(result)
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
