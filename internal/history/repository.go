package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coinsight/predictor/pkg/models"
)

// Run is one recorded prediction invocation. The pipeline result itself is
// ephemeral; this audit row is written after the fact by the caller.
type Run struct {
	ID         int64     `db:"id"`
	Asset      string    `db:"asset"`
	Direction  string    `db:"direction"`
	Confidence float64   `db:"confidence"`
	RowCount   int       `db:"row_count"`
	WindowFrom time.Time `db:"window_from"`
	WindowTo   time.Time `db:"window_to"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repository stores prediction run history in Postgres
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new history repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// RecordRun inserts one prediction run.
func (r *Repository) RecordRun(ctx context.Context, asset string, result *models.PredictionResult, rows []models.FeatureRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("cannot record a run without feature rows")
	}

	run := Run{
		Asset:      asset,
		Direction:  result.Direction,
		Confidence: result.Confidence,
		RowCount:   len(rows),
		WindowFrom: rows[0].Day,
		WindowTo:   rows[len(rows)-1].Day,
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO prediction_runs
		(asset, direction, confidence, row_count, window_from, window_to)
		VALUES (:asset, :direction, :confidence, :row_count, :window_from, :window_to)
	`, run)
	if err != nil {
		return fmt.Errorf("failed to record prediction run: %w", err)
	}

	return nil
}

// RecentRuns returns the latest runs for an asset, newest first.
func (r *Repository) RecentRuns(ctx context.Context, asset string, limit int) ([]Run, error) {
	runs := []Run{}
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, asset, direction, confidence, row_count, window_from, window_to, created_at
		FROM prediction_runs
		WHERE asset = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, asset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction runs: %w", err)
	}
	return runs, nil
}
