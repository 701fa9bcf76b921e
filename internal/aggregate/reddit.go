package aggregate

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/internal/sentiment"
	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// DefaultRecentDays is how many most-recent distinct days of posts are kept
// when the caller does not override it.
const DefaultRecentDays = 2

// Classifier labels a piece of text. Satisfied by sentiment.Classifier.
type Classifier interface {
	Classify(text string) sentiment.Label
}

// RedditAggregator buckets raw posts by UTC calendar day and computes
// per-day engagement and sentiment statistics.
type RedditAggregator struct {
	classifier Classifier
	recentDays int
}

// NewRedditAggregator creates new reddit aggregator keeping the recentDays
// most recent distinct days.
func NewRedditAggregator(classifier Classifier, recentDays int) *RedditAggregator {
	if recentDays <= 0 {
		recentDays = DefaultRecentDays
	}
	return &RedditAggregator{
		classifier: classifier,
		recentDays: recentDays,
	}
}

// Aggregate groups posts by day and returns one aggregate row per retained
// day, ascending, together with the retained day set. The day set is
// returned so the price aggregation can be restricted to the same days.
func (a *RedditAggregator) Aggregate(posts []models.RawPost) ([]models.DailyRedditAggregate, []time.Time, error) {
	buckets := make(map[time.Time][]models.RawPost)
	for _, post := range posts {
		day := models.DayOf(post.Timestamp)
		buckets[day] = append(buckets[day], post)
	}

	if len(buckets) < a.recentDays {
		return nil, nil, &models.InsufficientDataError{
			Side:  "reddit",
			Found: len(buckets),
			Need:  a.recentDays,
		}
	}

	// Keep the most recent days only
	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	selected := days[:a.recentDays]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Before(selected[j]) })

	rows := make([]models.DailyRedditAggregate, 0, len(selected))
	for _, day := range selected {
		rows = append(rows, a.aggregateDay(day, buckets[day]))
	}

	logger.Debug("aggregated reddit posts",
		zap.Int("days", len(rows)),
		zap.Int("posts", len(posts)),
	)

	return rows, selected, nil
}

// aggregateDay computes one day's statistics from its posts.
func (a *RedditAggregator) aggregateDay(day time.Time, posts []models.RawPost) models.DailyRedditAggregate {
	row := models.DailyRedditAggregate{Day: day, TotalPosts: len(posts)}

	var ratioSum float64
	counts := make(map[sentiment.Label]int)

	for _, post := range posts {
		row.TotalScore += post.Score
		row.TotalComments += post.NumComments

		// Missing ratios count as zero before averaging. Lossy, but the
		// fitted model expects exactly this behavior.
		if post.UpvoteRatio != nil {
			ratioSum += *post.UpvoteRatio
		}

		label := a.classifier.Classify(post.Title + " " + post.Text)
		counts[label]++
	}

	row.AvgUpvoteRatio = ratioSum / float64(len(posts))

	total := float64(len(posts))
	row.PctNegative = float64(counts[sentiment.Negative]) / total * 100
	row.PctNeutral = float64(counts[sentiment.Neutral]) / total * 100
	row.PctPositive = float64(counts[sentiment.Positive]) / total * 100

	return row
}
