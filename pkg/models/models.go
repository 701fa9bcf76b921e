package models

import "time"

// RawPost is a single social post as delivered by the Reddit collaborator.
type RawPost struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"time"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Score       int       `json:"upvote"`
	NumComments int       `json:"num_comments"`
	Text        string    `json:"text"`
	UpvoteRatio *float64  `json:"upvote_ratio"` // nil when the source omitted it
}

// PriceTick is a single timestamped price observation.
type PriceTick struct {
	Timestamp time.Time `json:"date"`
	Price     float64   `json:"price"`
}

// DailyRedditAggregate holds per-day engagement and sentiment statistics.
type DailyRedditAggregate struct {
	Day            time.Time `json:"Date"`
	TotalScore     int       `json:"total_score"`
	TotalComments  int       `json:"total_comments"`
	AvgUpvoteRatio float64   `json:"average_upvote_ratio"`
	TotalPosts     int       `json:"total_posts"`
	PctNegative    float64   `json:"percentage_negative"`
	PctNeutral     float64   `json:"percentage_neutral"`
	PctPositive    float64   `json:"percentage_positive"`
}

// DailyPriceAggregate holds per-day open/close derived from tick arrival order.
type DailyPriceAggregate struct {
	Day   time.Time `json:"Date"`
	Open  float64   `json:"Open"`
	Close float64   `json:"Close"`
	Range float64   `json:"Range"` // Close - Open
}

// FeatureRow is one day's combined social and price statistics, the unit
// consumed by the predictor.
type FeatureRow struct {
	Day            time.Time
	Range          float64
	TotalScore     float64
	TotalComments  float64
	AvgUpvoteRatio float64
	TotalPosts     float64
	PctNegative    float64
	PctNeutral     float64
	PctPositive    float64
}

// FeatureColumns is the canonical column order of a FeatureRow. The scaler
// and model were fitted on exactly this set.
var FeatureColumns = []string{
	"total_score",
	"total_comments",
	"average_upvote_ratio",
	"total_posts",
	"percentage_negative",
	"percentage_neutral",
	"percentage_positive",
	"Range",
}

// Feature returns the named column value, or false when the column is unknown.
func (r FeatureRow) Feature(name string) (float64, bool) {
	switch name {
	case "total_score":
		return r.TotalScore, true
	case "total_comments":
		return r.TotalComments, true
	case "average_upvote_ratio":
		return r.AvgUpvoteRatio, true
	case "total_posts":
		return r.TotalPosts, true
	case "percentage_negative":
		return r.PctNegative, true
	case "percentage_neutral":
		return r.PctNeutral, true
	case "percentage_positive":
		return r.PctPositive, true
	case "Range":
		return r.Range, true
	}
	return 0, false
}

// PredictionResult is the decoded model output. It is ephemeral and never
// persisted by the pipeline itself.
type PredictionResult struct {
	Direction  string  `json:"direction"` // "up" or "down"
	Confidence float64 `json:"confident"` // raw probability as 0-100
}

// DayOf truncates a timestamp to its UTC calendar day. The result is always
// midnight UTC so day values compare and hash consistently.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day bucket in the exchange format used across CSV
// exports and collaborator payloads.
func FormatDay(day time.Time) string {
	return day.Format("2006-01-02")
}
