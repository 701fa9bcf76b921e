package predict

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// DefaultTimeSteps matches the window the shipped model was trained with.
const DefaultTimeSteps = 2

// Predictor scales a feature table, slices the most recent window and
// decodes the scorer output into a direction/confidence pair.
type Predictor struct {
	scaler Scaler
	scorer Scorer
}

// NewPredictor creates new predictor around externally loaded scaler and
// model. Both are read-only after construction, safe to share.
func NewPredictor(scaler Scaler, scorer Scorer) *Predictor {
	return &Predictor{
		scaler: scaler,
		scorer: scorer,
	}
}

// Predict runs scale -> window -> score -> decode over rows ordered
// ascending by day. featureOrder names the column order the scaler and
// model were fitted on; nil means the canonical order. The column set must
// match exactly, anything else risks a silently wrong prediction.
func (p *Predictor) Predict(ctx context.Context, rows []models.FeatureRow, timeSteps int, featureOrder []string) (*models.PredictionResult, error) {
	if timeSteps <= 0 {
		timeSteps = DefaultTimeSteps
	}
	if featureOrder == nil {
		featureOrder = models.FeatureColumns
	}

	matrix, err := buildMatrix(rows, featureOrder)
	if err != nil {
		return nil, err
	}

	scaled, err := p.scaler.Transform(matrix)
	if err != nil {
		return nil, &models.InferenceError{Stage: "scale", Err: err}
	}

	// The merger should have enforced this already
	if len(scaled) < timeSteps {
		return nil, &models.InsufficientDataError{
			Side:  "merge",
			Found: len(scaled),
			Need:  timeSteps,
		}
	}

	window := scaled[len(scaled)-timeSteps:]

	probability, err := p.scorer.Score(ctx, window)
	if err != nil {
		return nil, &models.InferenceError{Stage: "score", Err: err}
	}
	if probability < 0 || probability > 1 || math.IsNaN(probability) {
		return nil, &models.InferenceError{
			Stage: "score",
			Err:   fmt.Errorf("model probability %v out of [0, 1]", probability),
		}
	}

	result := decode(probability)

	logger.Info("prediction decoded",
		zap.String("direction", result.Direction),
		zap.Float64("confident", result.Confidence),
		zap.Int("time_steps", timeSteps),
	)

	return result, nil
}

// buildMatrix reorders each row's features per featureOrder, asserting the
// requested columns are exactly the canonical set.
func buildMatrix(rows []models.FeatureRow, featureOrder []string) ([][]float64, error) {
	if len(featureOrder) != len(models.FeatureColumns) {
		return nil, &models.SchemaError{Field: "featureOrder"}
	}
	seen := make(map[string]bool, len(featureOrder))
	var probe models.FeatureRow
	for _, name := range featureOrder {
		if _, ok := probe.Feature(name); !ok || seen[name] {
			return nil, &models.SchemaError{Field: name}
		}
		seen[name] = true
	}

	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		values := make([]float64, len(featureOrder))
		for j, name := range featureOrder {
			values[j], _ = row.Feature(name)
		}
		matrix[i] = values
	}
	return matrix, nil
}

// decode maps the raw probability to a direction and its confidence. The
// confidence is the raw probability as a percentage, for a "down" call too.
func decode(probability float64) *models.PredictionResult {
	direction := "down"
	if probability > 0.5 {
		direction = "up"
	}
	return &models.PredictionResult{
		Direction:  direction,
		Confidence: math.Round(probability*10000) / 100,
	}
}
