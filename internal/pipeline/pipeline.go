package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/internal/aggregate"
	"github.com/coinsight/predictor/internal/predict"
	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// Options control one pipeline invocation.
type Options struct {
	RecentDays   int      // distinct post days to keep, min 2
	TimeSteps    int      // model window length
	FeatureOrder []string // nil = canonical column order
}

// Result carries the prediction together with the intermediate tables so
// callers can export or archive them. Everything here is request-scoped.
type Result struct {
	Prediction  *models.PredictionResult
	RedditDaily []models.DailyRedditAggregate
	PriceDaily  []models.DailyPriceAggregate
	Features    []models.FeatureRow
}

// Pipeline runs aggregate -> merge -> predict over one fetched batch pair.
// All dependencies are injected once at construction and read-only after
// that, so a single Pipeline is safe for concurrent callers.
type Pipeline struct {
	classifier aggregate.Classifier
	predictor  *predict.Predictor
}

// New creates new pipeline
func New(classifier aggregate.Classifier, predictor *predict.Predictor) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		predictor:  predictor,
	}
}

// Run processes the batches sequentially: the two aggregations are pure and
// independent, but nothing here needs the extra parallelism. No retries,
// the failures are data-shape problems. A caller deadline arrives via ctx.
func (p *Pipeline) Run(ctx context.Context, posts []models.RawPost, ticks []models.PriceTick, opts Options) (*Result, error) {
	reddit := aggregate.NewRedditAggregator(p.classifier, opts.RecentDays)
	prices := aggregate.NewPriceAggregator()
	merger := aggregate.NewFeatureMerger(prices, opts.TimeSteps)

	redditRows, selectedDays, err := reddit.Aggregate(posts)
	if err != nil {
		return nil, err
	}

	features, priceRows, err := merger.Merge(redditRows, selectedDays, ticks)
	if err != nil {
		return nil, err
	}

	prediction, err := p.predictor.Predict(ctx, features, opts.TimeSteps, opts.FeatureOrder)
	if err != nil {
		return nil, err
	}

	logger.Info("pipeline run complete",
		zap.Int("posts", len(posts)),
		zap.Int("ticks", len(ticks)),
		zap.Int("feature_rows", len(features)),
		zap.String("direction", prediction.Direction),
	)

	return &Result{
		Prediction:  prediction,
		RedditDaily: redditRows,
		PriceDaily:  priceRows,
		Features:    features,
	}, nil
}
