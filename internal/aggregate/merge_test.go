package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/coinsight/predictor/pkg/models"
)

func redditRow(day time.Time) models.DailyRedditAggregate {
	return models.DailyRedditAggregate{
		Day:        day,
		TotalScore: 10,
		TotalPosts: 1,
		PctNeutral: 100,
	}
}

func TestFeatureMerger_JoinAndOrder(t *testing.T) {
	merger := NewFeatureMerger(NewPriceAggregator(), 2)

	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	// Reddit rows deliberately out of order; the merge sorts ascending.
	redditRows := []models.DailyRedditAggregate{redditRow(d2), redditRow(d1)}
	ticks := []models.PriceTick{
		tick(d1.Add(2*time.Hour), 100),
		tick(d1.Add(4*time.Hour), 105),
		tick(d2.Add(2*time.Hour), 105),
		tick(d2.Add(4*time.Hour), 95),
	}

	rows, priceRows, err := merger.Merge(redditRows, []time.Time{d1, d2}, ticks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || len(priceRows) != 2 {
		t.Fatalf("expected 2 feature and 2 price rows, got %d/%d", len(rows), len(priceRows))
	}
	if !rows[0].Day.Equal(d1) || !rows[1].Day.Equal(d2) {
		t.Errorf("rows out of order: %v, %v", rows[0].Day, rows[1].Day)
	}
	if rows[0].Range != 5 || rows[1].Range != -10 {
		t.Errorf("ranges = [%v, %v], want [5, -10]", rows[0].Range, rows[1].Range)
	}
}

func TestFeatureMerger_SingleCommonDay(t *testing.T) {
	merger := NewFeatureMerger(NewPriceAggregator(), 2)

	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	redditRows := []models.DailyRedditAggregate{redditRow(d1), redditRow(d2)}
	// Price ticks cover only one of the selected days
	ticks := []models.PriceTick{tick(d1, 100), tick(d1.Add(time.Hour), 101)}

	_, _, err := merger.Merge(redditRows, []time.Time{d1, d2}, ticks)
	if !models.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}

	var insufficient *models.InsufficientDataError
	if errors.As(err, &insufficient) {
		if insufficient.Side != "price" {
			t.Errorf("short side = %q, want price", insufficient.Side)
		}
		if insufficient.Found != 1 || insufficient.Need != 2 {
			t.Errorf("found/need = %d/%d, want 1/2", insufficient.Found, insufficient.Need)
		}
	}
}

func TestFeatureMerger_NoPriceCoverageAtAll(t *testing.T) {
	merger := NewFeatureMerger(NewPriceAggregator(), 2)

	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	redditRows := []models.DailyRedditAggregate{redditRow(d1), redditRow(d2)}
	ticks := []models.PriceTick{tick(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 100)}

	_, _, err := merger.Merge(redditRows, []time.Time{d1, d2}, ticks)
	if !models.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}
