package aggregate

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// PriceAggregator buckets price ticks by UTC calendar day and derives
// per-day open/close/range.
type PriceAggregator struct{}

// NewPriceAggregator creates new price aggregator
func NewPriceAggregator() *PriceAggregator {
	return &PriceAggregator{}
}

type priceBucket struct {
	open     float64
	close    float64
	hasOpen  bool
	hasClose bool
}

// Aggregate groups ticks by day, ascending. Open is the first tick seen for
// the day in input order and close the last: the input order is the source
// order, ticks are never re-sorted. A nil allowedDays aggregates every day
// present; a non-nil filter that matches no tick at all is an insufficient
// data condition.
func (a *PriceAggregator) Aggregate(ticks []models.PriceTick, allowedDays []time.Time) ([]models.DailyPriceAggregate, error) {
	var allowed map[time.Time]bool
	if allowedDays != nil {
		allowed = make(map[time.Time]bool, len(allowedDays))
		for _, day := range allowedDays {
			allowed[models.DayOf(day)] = true
		}
	}

	buckets := make(map[time.Time]*priceBucket)
	for _, tick := range ticks {
		day := models.DayOf(tick.Timestamp)
		if allowed != nil && !allowed[day] {
			continue
		}

		bucket, ok := buckets[day]
		if !ok {
			bucket = &priceBucket{}
			buckets[day] = bucket
		}
		if !bucket.hasOpen {
			bucket.open = tick.Price
			bucket.hasOpen = true
		}
		bucket.close = tick.Price
		bucket.hasClose = true
	}

	if allowed != nil && len(buckets) == 0 {
		return nil, &models.InsufficientDataError{
			Side:  "price",
			Found: 0,
			Need:  len(allowed),
		}
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	rows := make([]models.DailyPriceAggregate, 0, len(days))
	for _, day := range days {
		bucket := buckets[day]
		if !bucket.hasClose {
			// Malformed upstream bucket: carry the open forward instead of
			// emitting a hole.
			logger.Warn("price bucket missing close, falling back to open",
				zap.String("day", models.FormatDay(day)),
			)
			bucket.close = bucket.open
		}
		rows = append(rows, models.DailyPriceAggregate{
			Day:   day,
			Open:  bucket.open,
			Close: bucket.close,
			Range: bucket.close - bucket.open,
		})
	}

	return rows, nil
}
