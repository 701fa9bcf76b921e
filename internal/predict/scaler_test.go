package predict

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestMinMaxScaler_Transform(t *testing.T) {
	scaler := &MinMaxScaler{
		Scale: []float64{0.5, 2},
		Min:   []float64{1, -1},
	}

	scaled, err := scaler.Transform([][]float64{{4, 3}, {0, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]float64{{3, 5}, {1, -1}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(scaled[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("scaled[%d][%d] = %v, want %v", i, j, scaled[i][j], want[i][j])
			}
		}
	}
}

func TestMinMaxScaler_WidthMismatch(t *testing.T) {
	scaler := &MinMaxScaler{Scale: []float64{1, 1}, Min: []float64{0, 0}}

	if _, err := scaler.Transform([][]float64{{1, 2, 3}}); err == nil {
		t.Fatal("expected width mismatch error")
	}
}

func TestLoadMinMaxScaler(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scaler.json")
	if err := os.WriteFile(path, []byte(`{"scale":[1,2],"min":[0,-1]}`), 0644); err != nil {
		t.Fatal(err)
	}

	scaler, err := LoadMinMaxScaler(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scaler.Scale) != 2 || scaler.Min[1] != -1 {
		t.Errorf("unexpected parameters: %+v", scaler)
	}
}

func TestLoadMinMaxScaler_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scaler.json")
	if err := os.WriteFile(path, []byte(`{"scale":[1,2],"min":[0]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMinMaxScaler(path); err == nil {
		t.Fatal("expected error for mismatched parameter lengths")
	}
}

func TestLinearScorer_Score(t *testing.T) {
	scorer := &LinearScorer{
		Weights: [][]float64{{1, 0}, {0, 1}},
		Bias:    0,
	}

	p, err := scorer.Score(context.Background(), [][]float64{{0, 5}, {5, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// z = 0, sigmoid(0) = 0.5
	if math.Abs(p-0.5) > 1e-12 {
		t.Errorf("p = %v, want 0.5", p)
	}
}

func TestLinearScorer_WindowMismatch(t *testing.T) {
	scorer := &LinearScorer{Weights: [][]float64{{1}}, Bias: 0}

	if _, err := scorer.Score(context.Background(), [][]float64{{1}, {2}}); err == nil {
		t.Fatal("expected window length mismatch error")
	}
}
