package clickhouse

import (
	"context"
	"fmt"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// Repository archives raw ticks and merged feature rows to ClickHouse for
// offline analysis and later retraining.
type Repository struct {
	db *sqlx.DB
}

// New connects to ClickHouse and returns the archive repository.
func New(dsn string) (*Repository, error) {
	db, err := sqlx.Open("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("clickhouse connection established")

	return &Repository{db: db}, nil
}

// Close closes the connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// ArchiveTicks saves a raw tick batch.
func (r *Repository) ArchiveTicks(ctx context.Context, asset string, ticks []models.PriceTick) error {
	if len(ticks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO price_ticks (timestamp, asset, price)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, tick := range ticks {
		if _, err := stmt.ExecContext(ctx, tick.Timestamp, asset, tick.Price); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert tick: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debug("archived ticks to ClickHouse",
		zap.String("asset", asset),
		zap.Int("count", len(ticks)),
	)

	return nil
}

// ArchiveFeatureRows saves a merged feature table.
func (r *Repository) ArchiveFeatureRows(ctx context.Context, asset string, rows []models.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO feature_rows
		(day, asset, price_range, total_score, total_comments, average_upvote_ratio,
		 total_posts, percentage_negative, percentage_neutral, percentage_positive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.Day,
			asset,
			row.Range,
			row.TotalScore,
			row.TotalComments,
			row.AvgUpvoteRatio,
			row.TotalPosts,
			row.PctNegative,
			row.PctNeutral,
			row.PctPositive,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert feature row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debug("archived feature rows to ClickHouse",
		zap.String("asset", asset),
		zap.Int("count", len(rows)),
	)

	return nil
}
