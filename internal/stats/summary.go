// Package stats summarizes prediction-run outputs.
package stats

import (
	"fmt"
	"math"

	"pinet/internal/model"
)

// Summary describes the first output component across the molecules of one
// run. Compared, MAE and RMSE are filled only for molecules that carry a
// reference value.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Compared int     `json:"compared,omitempty"`
	MAE      float64 `json:"mae,omitempty"`
	RMSE     float64 `json:"rmse,omitempty"`
}

// Summarize reduces per-molecule output rows to a Summary. references may
// be nil; when given it must have one entry per output row, with nil
// entries for molecules without a reference value.
func Summarize(outputs [][]float64, references []*float64) (Summary, error) {
	if len(outputs) == 0 {
		return Summary{}, fmt.Errorf("%w: no outputs to summarize", model.ErrInput)
	}
	if references != nil && len(references) != len(outputs) {
		return Summary{}, fmt.Errorf("%w: reference rows: got=%d want=%d", model.ErrShape, len(references), len(outputs))
	}

	values := make([]float64, len(outputs))
	for i, row := range outputs {
		if len(row) == 0 {
			return Summary{}, fmt.Errorf("%w: empty output row %d", model.ErrShape, i)
		}
		values[i] = row[0]
	}

	mean, std := avgStd(values)
	summary := Summary{
		Count: len(values),
		Mean:  mean,
		Std:   std,
		Min:   minFloat(values),
		Max:   maxFloat(values),
	}

	var absSum, sqSum float64
	for i, reference := range references {
		if reference == nil {
			continue
		}
		diff := values[i] - *reference
		absSum += math.Abs(diff)
		sqSum += diff * diff
		summary.Compared++
	}
	if summary.Compared > 0 {
		summary.MAE = absSum / float64(summary.Compared)
		summary.RMSE = math.Sqrt(sqSum / float64(summary.Compared))
	}
	return summary, nil
}

func avgStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	avg := sum / float64(len(values))

	variance := 0.0
	for _, value := range values {
		diff := value - avg
		variance += diff * diff
	}
	return avg, math.Sqrt(variance / float64(len(values)))
}

func maxFloat(values []float64) float64 {
	max := values[0]
	for _, value := range values[1:] {
		if value > max {
			max = value
		}
	}
	return max
}

func minFloat(values []float64) float64 {
	min := values[0]
	for _, value := range values[1:] {
		if value < min {
			min = value
		}
	}
	return min
}
