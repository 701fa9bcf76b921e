package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// Exporter serializes aggregate tables to CSV. Parent directories are
// created on demand. A failed export returns an error and the caller owns
// removing the partial file; nothing is retried here.
type Exporter struct{}

// NewExporter creates new CSV exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportRedditDaily writes the per-day reddit aggregate table.
func (e *Exporter) ExportRedditDaily(rows []models.DailyRedditAggregate, path string) error {
	header := []string{
		"Date", "total_score", "total_comments", "average_upvote_ratio",
		"total_posts", "percentage_negative", "percentage_neutral", "percentage_positive",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			models.FormatDay(row.Day),
			strconv.Itoa(row.TotalScore),
			strconv.Itoa(row.TotalComments),
			formatFloat(row.AvgUpvoteRatio),
			strconv.Itoa(row.TotalPosts),
			formatFloat(row.PctNegative),
			formatFloat(row.PctNeutral),
			formatFloat(row.PctPositive),
		})
	}
	return e.write(path, header, records)
}

// ExportPriceDaily writes the per-day price aggregate table.
func (e *Exporter) ExportPriceDaily(rows []models.DailyPriceAggregate, path string) error {
	header := []string{"Date", "Open", "Close", "Range"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			models.FormatDay(row.Day),
			formatFloat(row.Open),
			formatFloat(row.Close),
			formatFloat(row.Range),
		})
	}
	return e.write(path, header, records)
}

// ExportFeatures writes the merged feature table.
func (e *Exporter) ExportFeatures(rows []models.FeatureRow, path string) error {
	header := []string{
		"Date", "Range", "total_score", "total_comments", "average_upvote_ratio",
		"total_posts", "percentage_negative", "percentage_neutral", "percentage_positive",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			models.FormatDay(row.Day),
			formatFloat(row.Range),
			formatFloat(row.TotalScore),
			formatFloat(row.TotalComments),
			formatFloat(row.AvgUpvoteRatio),
			formatFloat(row.TotalPosts),
			formatFloat(row.PctNegative),
			formatFloat(row.PctNeutral),
			formatFloat(row.PctPositive),
		})
	}
	return e.write(path, header, records)
}

// write streams header and records to path, failing on the first error.
func (e *Exporter) write(path string, header []string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	logger.Debug("exported CSV",
		zap.String("path", path),
		zap.Int("rows", len(records)),
	)

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
