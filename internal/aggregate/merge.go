package aggregate

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// MinFeatureRows is the smallest merged table the downstream model can take
// a window from.
const MinFeatureRows = 2

// FeatureMerger inner-joins the reddit and price aggregates on day and
// enforces the minimum row contract.
type FeatureMerger struct {
	prices  *PriceAggregator
	minRows int
}

// NewFeatureMerger creates new feature merger requiring at least minRows
// joined rows.
func NewFeatureMerger(prices *PriceAggregator, minRows int) *FeatureMerger {
	if minRows < MinFeatureRows {
		minRows = MinFeatureRows
	}
	return &FeatureMerger{
		prices:  prices,
		minRows: minRows,
	}
}

// Merge restricts the price aggregation to the reddit-selected days, joins
// the two aggregates on day and returns feature rows ascending by day,
// along with the restricted price table for export.
// A prediction must never run on a single day of combined data, so fewer
// than minRows aligned rows is an error naming the side that fell short.
func (m *FeatureMerger) Merge(redditRows []models.DailyRedditAggregate, selectedDays []time.Time, ticks []models.PriceTick) ([]models.FeatureRow, []models.DailyPriceAggregate, error) {
	priceRows, err := m.prices.Aggregate(ticks, selectedDays)
	if err != nil {
		return nil, nil, err
	}

	priceByDay := make(map[time.Time]models.DailyPriceAggregate, len(priceRows))
	for _, row := range priceRows {
		priceByDay[row.Day] = row
	}

	rows := make([]models.FeatureRow, 0, len(redditRows))
	for _, reddit := range redditRows {
		price, ok := priceByDay[reddit.Day]
		if !ok {
			continue
		}
		rows = append(rows, models.FeatureRow{
			Day:            reddit.Day,
			Range:          price.Range,
			TotalScore:     float64(reddit.TotalScore),
			TotalComments:  float64(reddit.TotalComments),
			AvgUpvoteRatio: reddit.AvgUpvoteRatio,
			TotalPosts:     float64(reddit.TotalPosts),
			PctNegative:    reddit.PctNegative,
			PctNeutral:     reddit.PctNeutral,
			PctPositive:    reddit.PctPositive,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })

	if len(rows) < m.minRows {
		side := "merge"
		if len(priceRows) < len(redditRows) {
			side = "price"
		} else if len(redditRows) < m.minRows {
			side = "reddit"
		}
		return nil, nil, &models.InsufficientDataError{
			Side:  side,
			Found: len(rows),
			Need:  m.minRows,
		}
	}

	logger.Debug("merged feature rows",
		zap.Int("rows", len(rows)),
		zap.String("from", models.FormatDay(rows[0].Day)),
		zap.String("to", models.FormatDay(rows[len(rows)-1].Day)),
	)

	return rows, priceRows, nil
}
