package stats

import (
	"errors"
	"math"
	"testing"

	"pinet/internal/model"
)

func TestSummarizeBasics(t *testing.T) {
	outputs := [][]float64{{1}, {2}, {3}, {4}}
	summary, err := Summarize(outputs, nil)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Count != 4 {
		t.Fatalf("unexpected count: got=%d want=4", summary.Count)
	}
	if summary.Mean != 2.5 {
		t.Fatalf("unexpected mean: got=%v want=2.5", summary.Mean)
	}
	if summary.Min != 1 || summary.Max != 4 {
		t.Fatalf("unexpected extremes: min=%v max=%v", summary.Min, summary.Max)
	}
	wantStd := math.Sqrt(1.25)
	if math.Abs(summary.Std-wantStd) > 1e-12 {
		t.Fatalf("unexpected std: got=%v want=%v", summary.Std, wantStd)
	}
	if summary.Compared != 0 {
		t.Fatalf("unexpected compared count without references: %d", summary.Compared)
	}
}

func TestSummarizeErrorsAgainstReferences(t *testing.T) {
	outputs := [][]float64{{1}, {2}, {5}}
	r1, r2 := 1.5, 2.0
	references := []*float64{&r1, &r2, nil}

	summary, err := Summarize(outputs, references)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Compared != 2 {
		t.Fatalf("unexpected compared count: got=%d want=2", summary.Compared)
	}
	if math.Abs(summary.MAE-0.25) > 1e-12 {
		t.Fatalf("unexpected mae: got=%v want=0.25", summary.MAE)
	}
	wantRMSE := math.Sqrt(0.125)
	if math.Abs(summary.RMSE-wantRMSE) > 1e-12 {
		t.Fatalf("unexpected rmse: got=%v want=%v", summary.RMSE, wantRMSE)
	}
}

func TestSummarizeUsesFirstOutputComponent(t *testing.T) {
	outputs := [][]float64{{1, 100}, {3, -100}}
	summary, err := Summarize(outputs, nil)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Mean != 2 {
		t.Fatalf("unexpected mean: got=%v want=2", summary.Mean)
	}
}

func TestSummarizeRejections(t *testing.T) {
	if _, err := Summarize(nil, nil); !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error for empty outputs, got: %v", err)
	}
	if _, err := Summarize([][]float64{{1}, {}}, nil); !errors.Is(err, model.ErrShape) {
		t.Fatalf("expected shape error for empty row, got: %v", err)
	}
	r := 1.0
	if _, err := Summarize([][]float64{{1}, {2}}, []*float64{&r}); !errors.Is(err, model.ErrShape) {
		t.Fatalf("expected shape error for reference mismatch, got: %v", err)
	}
}
