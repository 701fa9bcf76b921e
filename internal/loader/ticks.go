package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// tickPayload mirrors the price collaborator JSON contract.
type tickPayload struct {
	Date  *string  `json:"date"`
	Price *float64 `json:"price"`
}

// LoadTicks reads an already-fetched batch of price ticks from a JSON array
// or an archived CSV, chosen by file extension. Tick order is preserved:
// per-day open/close depend on it.
func LoadTicks(path string) ([]models.PriceTick, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ticks file: %w", err)
	}
	defer file.Close()

	var ticks []models.PriceTick
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ticks, err = decodeTicksCSV(file)
	default:
		ticks, err = decodeTicksJSON(file)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("loaded price ticks",
		zap.String("path", path),
		zap.Int("count", len(ticks)),
	)

	return ticks, nil
}

func decodeTicksJSON(r io.Reader) ([]models.PriceTick, error) {
	var payload []tickPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ticks JSON: %w", err)
	}

	ticks := make([]models.PriceTick, 0, len(payload))
	for _, p := range payload {
		if p.Date == nil {
			return nil, &models.SchemaError{Field: "date"}
		}
		if p.Price == nil {
			return nil, &models.SchemaError{Field: "price"}
		}
		ts, err := parseTimestamp(*p.Date)
		if err != nil {
			return nil, &models.SchemaError{Field: "date"}
		}
		ticks = append(ticks, models.PriceTick{Timestamp: ts, Price: *p.Price})
	}
	return ticks, nil
}

func decodeTicksCSV(r io.Reader) ([]models.PriceTick, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ticks CSV header: %w", err)
	}

	dateIdx, priceIdx := -1, -1
	for i, name := range header {
		switch name {
		case "Date":
			dateIdx = i
		case "Price (USD)", "Price":
			priceIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, &models.SchemaError{Field: "Date"}
	}
	if priceIdx < 0 {
		return nil, &models.SchemaError{Field: "Price (USD)"}
	}

	var ticks []models.PriceTick
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ticks CSV record: %w", err)
		}

		ts, err := parseTimestamp(record[dateIdx])
		if err != nil {
			return nil, &models.SchemaError{Field: "Date"}
		}
		price, err := strconv.ParseFloat(record[priceIdx], 64)
		if err != nil {
			return nil, &models.SchemaError{Field: "Price (USD)"}
		}
		ticks = append(ticks, models.PriceTick{Timestamp: ts, Price: price})
	}
	return ticks, nil
}

// timestampLayouts are the formats the collaborators are known to emit,
// most specific first. All values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
