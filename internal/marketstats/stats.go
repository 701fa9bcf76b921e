package marketstats

import (
	"fmt"

	"github.com/cinar/indicator"
	"github.com/shopspring/decimal"

	"github.com/coinsight/predictor/pkg/models"
)

// Summary holds window statistics over a tick batch, the numbers the
// dashboard shows next to a prediction.
type Summary struct {
	Latest     float64 `json:"latest"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Average    float64 `json:"average"`
	Volatility float64 `json:"volatility"` // standard deviation of price
	SMA        float64 `json:"sma"`        // short moving average, last value
	ChangePct  float64 `json:"change_pct"` // first tick to last tick
}

// smaPeriod is the short moving average window in ticks.
const smaPeriod = 24

// Summarize computes window statistics over ticks in input order.
func Summarize(ticks []models.PriceTick) (*Summary, error) {
	if len(ticks) < 2 {
		return nil, fmt.Errorf("need at least 2 ticks for market statistics, got %d", len(ticks))
	}

	prices := make([]float64, len(ticks))
	for i, tick := range ticks {
		prices[i] = tick.Price
	}

	n := len(prices)
	high := indicator.Max(n, prices)
	low := indicator.Min(n, prices)
	avg := indicator.Sma(n, prices)
	std := indicator.Std(n, prices)

	period := smaPeriod
	if period > n {
		period = n
	}
	sma := indicator.Sma(period, prices)

	first := decimal.NewFromFloat(prices[0])
	last := decimal.NewFromFloat(prices[n-1])
	changePct := 0.0
	if !first.IsZero() {
		changePct = last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return &Summary{
		Latest:     prices[n-1],
		High:       high[n-1],
		Low:        low[n-1],
		Average:    avg[n-1],
		Volatility: std[n-1],
		SMA:        sma[n-1],
		ChangePct:  changePct,
	}, nil
}
