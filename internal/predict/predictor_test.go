package predict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coinsight/predictor/pkg/models"
)

// constantScorer always returns the same probability.
type constantScorer struct {
	p float64
}

func (s constantScorer) Score(_ context.Context, _ [][]float64) (float64, error) {
	return s.p, nil
}

// failingScorer simulates a broken model invocation.
type failingScorer struct{}

func (failingScorer) Score(_ context.Context, _ [][]float64) (float64, error) {
	return 0, errors.New("model blew up")
}

func identityScaler() *MinMaxScaler {
	n := len(models.FeatureColumns)
	scale := make([]float64, n)
	min := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	return &MinMaxScaler{Scale: scale, Min: min}
}

func featureRows(n int) []models.FeatureRow {
	rows := make([]models.FeatureRow, n)
	for i := range rows {
		rows[i] = models.FeatureRow{
			Day:        time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Range:      float64(i),
			TotalScore: float64(10 * i),
			TotalPosts: 1,
			PctNeutral: 100,
		}
	}
	return rows
}

func TestPredictor_Decode(t *testing.T) {
	tests := []struct {
		name       string
		p          float64
		direction  string
		confidence float64
	}{
		{"above threshold", 0.7, "up", 70.0},
		{"below threshold", 0.3, "down", 30.0},
		{"exact threshold reads down", 0.5, "down", 50.0},
		{"rounded to two decimals", 0.123456, "down", 12.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := NewPredictor(identityScaler(), constantScorer{p: tt.p})

			result, err := predictor.Predict(context.Background(), featureRows(2), 2, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Direction != tt.direction {
				t.Errorf("direction = %q, want %q", result.Direction, tt.direction)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", result.Confidence, tt.confidence)
			}
		})
	}
}

func TestPredictor_TooFewRows(t *testing.T) {
	predictor := NewPredictor(identityScaler(), constantScorer{p: 0.7})

	_, err := predictor.Predict(context.Background(), featureRows(1), 2, nil)
	if !models.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestPredictor_BadFeatureOrder(t *testing.T) {
	predictor := NewPredictor(identityScaler(), constantScorer{p: 0.7})

	tests := []struct {
		name  string
		order []string
	}{
		{"unknown column", []string{
			"total_score", "total_comments", "average_upvote_ratio", "total_posts",
			"percentage_negative", "percentage_neutral", "percentage_positive", "bogus",
		}},
		{"wrong arity", []string{"total_score", "Range"}},
		{"duplicate column", []string{
			"total_score", "total_score", "average_upvote_ratio", "total_posts",
			"percentage_negative", "percentage_neutral", "percentage_positive", "Range",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := predictor.Predict(context.Background(), featureRows(2), 2, tt.order)
			if !models.IsSchemaError(err) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
		})
	}
}

func TestPredictor_ScorerFailure(t *testing.T) {
	predictor := NewPredictor(identityScaler(), failingScorer{})

	_, err := predictor.Predict(context.Background(), featureRows(2), 2, nil)
	var inference *models.InferenceError
	if !errors.As(err, &inference) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
	if inference.Stage != "score" {
		t.Errorf("stage = %q, want score", inference.Stage)
	}
}

func TestPredictor_CustomFeatureOrderIsPermutation(t *testing.T) {
	// A reordered column list is legal as long as the set matches.
	order := []string{
		"Range", "percentage_positive", "percentage_neutral", "percentage_negative",
		"total_posts", "average_upvote_ratio", "total_comments", "total_score",
	}
	predictor := NewPredictor(identityScaler(), constantScorer{p: 0.7})

	result, err := predictor.Predict(context.Background(), featureRows(2), 2, order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != "up" {
		t.Errorf("direction = %q, want up", result.Direction)
	}
}
