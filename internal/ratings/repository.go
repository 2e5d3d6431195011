package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/quickrate/internal/contracts"
)

// ErrNotFound is returned when a ticker has no persisted panel
var ErrNotFound = errors.New("panel snapshot not found")

const schemaDDL = `
	CREATE SCHEMA IF NOT EXISTS rating;

	CREATE TABLE IF NOT EXISTS rating.panel_snapshots (
		id           BIGSERIAL PRIMARY KEY,
		ticker       TEXT NOT NULL,
		sector       TEXT NOT NULL,
		catalog_hash TEXT NOT NULL,
		overall      DOUBLE PRECISION NOT NULL,
		grade        TEXT NOT NULL,
		payload      JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_panel_snapshots_ticker_created
		ON rating.panel_snapshots (ticker, created_at DESC);
`

// Repository persists panel snapshots
// ⭐ SSOT: 패널 스냅샷 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new snapshot repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the snapshot table when missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure snapshot schema: %w", err)
	}
	return nil
}

// Save stores one panel snapshot
func (r *Repository) Save(ctx context.Context, panel *contracts.Panel) error {
	payload, err := json.Marshal(panel)
	if err != nil {
		return fmt.Errorf("failed to marshal panel: %w", err)
	}

	createdAt := panel.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO rating.panel_snapshots (
			ticker, sector, catalog_hash, overall, grade, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		panel.Ticker, string(panel.Sector), panel.CatalogHash,
		panel.Rating.Overall, string(panel.Rating.Grade), payload, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save panel snapshot: %w", err)
	}

	return nil
}

// Latest returns the most recent snapshot of a ticker
func (r *Repository) Latest(ctx context.Context, ticker string) (*contracts.Panel, error) {
	query := `
		SELECT payload
		FROM rating.panel_snapshots
		WHERE ticker = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, ticker).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest panel: %w", err)
	}

	var panel contracts.Panel
	if err := json.Unmarshal(payload, &panel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal panel: %w", err)
	}

	return &panel, nil
}

// DeleteOlderThan removes snapshots created before cutoff
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rating.panel_snapshots WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
