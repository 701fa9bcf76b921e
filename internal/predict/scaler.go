package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler transforms a feature matrix with externally fitted parameters.
// The pipeline never fits a scaler, it only applies one.
type Scaler interface {
	Transform(rows [][]float64) ([][]float64, error)
}

// MinMaxScaler applies the affine transform exported by the training run:
// scaled = x*Scale[i] + Min[i] per column.
type MinMaxScaler struct {
	Scale []float64 `json:"scale"`
	Min   []float64 `json:"min"`
}

// LoadMinMaxScaler reads fitted scaler parameters from a JSON sidecar.
func LoadMinMaxScaler(path string) (*MinMaxScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler file: %w", err)
	}

	var scaler MinMaxScaler
	if err := json.Unmarshal(data, &scaler); err != nil {
		return nil, fmt.Errorf("failed to parse scaler file: %w", err)
	}

	if len(scaler.Scale) == 0 || len(scaler.Scale) != len(scaler.Min) {
		return nil, fmt.Errorf("malformed scaler parameters: %d scale vs %d min values",
			len(scaler.Scale), len(scaler.Min))
	}

	return &scaler, nil
}

// Transform scales every row column-wise. Row width must match the fitted
// parameter width.
func (s *MinMaxScaler) Transform(rows [][]float64) ([][]float64, error) {
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Scale) {
			return nil, fmt.Errorf("row %d has %d columns, scaler fitted on %d", i, len(row), len(s.Scale))
		}
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = v*s.Scale[j] + s.Min[j]
		}
		scaled[i] = out
	}
	return scaled, nil
}
