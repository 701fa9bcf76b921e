package aggregate

import (
	"testing"
	"time"

	"github.com/coinsight/predictor/pkg/models"
)

func tick(ts time.Time, price float64) models.PriceTick {
	return models.PriceTick{Timestamp: ts, Price: price}
}

func TestPriceAggregator_OpenCloseFromArrivalOrder(t *testing.T) {
	agg := NewPriceAggregator()

	d1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	ticks := []models.PriceTick{
		tick(d1, 100),
		tick(d1.Add(time.Hour), 110),
		tick(d2, 90),
	}

	rows, err := agg.Aggregate(ticks, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	tests := []struct {
		row   models.DailyPriceAggregate
		open  float64
		close float64
		rng   float64
	}{
		{rows[0], 100, 110, 10},
		{rows[1], 90, 90, 0},
	}
	for _, tt := range tests {
		if tt.row.Open != tt.open || tt.row.Close != tt.close || tt.row.Range != tt.rng {
			t.Errorf("%s: got open=%v close=%v range=%v, want %v/%v/%v",
				models.FormatDay(tt.row.Day), tt.row.Open, tt.row.Close, tt.row.Range,
				tt.open, tt.close, tt.rng)
		}
	}
}

func TestPriceAggregator_ArrivalOrderNotTimestampOrder(t *testing.T) {
	agg := NewPriceAggregator()

	// Later wall-clock tick arrives first: open must still be the first
	// arrival, the aggregator never re-sorts the stream.
	ticks := []models.PriceTick{
		tick(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), 200),
		tick(time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), 150),
	}

	rows, err := agg.Aggregate(ticks, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Open != 200 || rows[0].Close != 150 {
		t.Errorf("got open=%v close=%v, want 200/150", rows[0].Open, rows[0].Close)
	}
}

func TestPriceAggregator_AllowedDayFilter(t *testing.T) {
	agg := NewPriceAggregator()

	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	ticks := []models.PriceTick{
		tick(d1, 100),
		tick(d2, 200),
	}

	rows, err := agg.Aggregate(ticks, []time.Time{d2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || !rows[0].Day.Equal(d2) {
		t.Fatalf("expected only %s, got %d row(s)", models.FormatDay(d2), len(rows))
	}
}

func TestPriceAggregator_FilterMatchingNothing(t *testing.T) {
	agg := NewPriceAggregator()

	ticks := []models.PriceTick{
		tick(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100),
	}
	allowed := []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	_, err := agg.Aggregate(ticks, allowed)
	if !models.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestPriceAggregator_SingleTickDay(t *testing.T) {
	agg := NewPriceAggregator()

	rows, err := agg.Aggregate([]models.PriceTick{
		tick(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 105),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Open != 105 || rows[0].Close != 105 || rows[0].Range != 0 {
		t.Errorf("single-tick day: open=%v close=%v range=%v, want 105/105/0",
			rows[0].Open, rows[0].Close, rows[0].Range)
	}
}
