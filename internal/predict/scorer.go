package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Scorer maps a scaled feature window to an up-probability in [0, 1].
// The trained model is consumed as an opaque scorer behind this interface.
type Scorer interface {
	Score(ctx context.Context, window [][]float64) (float64, error)
}

// LinearScorer scores a window with exported per-step linear weights and a
// sigmoid, the distilled form of the trained sequence model.
type LinearScorer struct {
	Weights [][]float64 `json:"weights"` // [timeStep][feature]
	Bias    float64     `json:"bias"`
}

// LoadLinearScorer reads exported model weights from a JSON sidecar.
func LoadLinearScorer(path string) (*LinearScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var scorer LinearScorer
	if err := json.Unmarshal(data, &scorer); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}

	if len(scorer.Weights) == 0 {
		return nil, fmt.Errorf("model file carries no weights")
	}

	return &scorer, nil
}

// Score computes sigmoid(bias + sum(weights .* window)).
func (s *LinearScorer) Score(_ context.Context, window [][]float64) (float64, error) {
	if len(window) != len(s.Weights) {
		return 0, fmt.Errorf("window has %d steps, model expects %d", len(window), len(s.Weights))
	}

	z := s.Bias
	for i, step := range window {
		if len(step) != len(s.Weights[i]) {
			return 0, fmt.Errorf("window step %d has %d features, model expects %d",
				i, len(step), len(s.Weights[i]))
		}
		for j, v := range step {
			z += v * s.Weights[i][j]
		}
	}

	return 1 / (1 + math.Exp(-z)), nil
}
