package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantfold/arbscan/internal/domain"
)

// OpportunityStore implements domain.OpportunityStore using PostgreSQL.
type OpportunityStore struct {
	pool *pgxpool.Pool
}

// NewOpportunityStore creates an OpportunityStore backed by the given pool.
func NewOpportunityStore(pool *pgxpool.Pool) *OpportunityStore {
	return &OpportunityStore{pool: pool}
}

const opportunityCols = `id, event, outcome, buy_platform, buy_price,
	sell_platform, sell_price, raw_spread_pct, net_spread_pct, detected_at`

// Insert stores a batch of opportunities from one scan in a single
// transaction, so a scan's history is all-or-nothing.
func (s *OpportunityStore) Insert(ctx context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		return nil
	}

	const query = `
		INSERT INTO opportunities (` + opportunityCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin insert: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, o := range opps {
		batch.Queue(query,
			o.ID, o.Event, o.Outcome, o.BuyPlatform, o.BuyPrice,
			o.SellPlatform, o.SellPrice, o.RawSpreadPct, o.NetSpreadPct, o.DetectedAt,
		)
	}

	res := tx.SendBatch(ctx, batch)
	for range opps {
		if _, err := res.Exec(); err != nil {
			_ = res.Close()
			return fmt.Errorf("postgres: insert opportunity: %w", err)
		}
	}
	if err := res.Close(); err != nil {
		return fmt.Errorf("postgres: close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit insert: %w", err)
	}
	return nil
}

// ListRecent returns the most recent opportunities, newest first. A limit of
// 0 means no limit.
func (s *OpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	query := `SELECT ` + opportunityCols + `
		FROM opportunities
		ORDER BY detected_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list opportunities: %w", err)
	}
	defer rows.Close()

	var opps []domain.Opportunity
	for rows.Next() {
		var o domain.Opportunity
		if err := rows.Scan(
			&o.ID, &o.Event, &o.Outcome, &o.BuyPlatform, &o.BuyPrice,
			&o.SellPlatform, &o.SellPrice, &o.RawSpreadPct, &o.NetSpreadPct, &o.DetectedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity row: %w", err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate opportunities: %w", err)
	}
	return opps, nil
}
