package metrics

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(160, 220); math.Abs(got-72.7272) > 0.001 {
		t.Errorf("Expected ~72.73%%, got %f", got)
	}
	if got := Accuracy(220, 220); got != 100.0 {
		t.Errorf("Expected 100%% for an exact match, got %f", got)
	}
}

func TestAccuracy_ZeroOptimumIsPerfect(t *testing.T) {
	if got := Accuracy(0, 0); got != 100.0 {
		t.Errorf("Expected 100%% when the optimum itself is zero, got %f", got)
	}
}

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{Dataset: "P_01", Accuracy: 100.0},
		{Dataset: "P_02", Accuracy: 80.0},
		{Dataset: "P_03", Accuracy: 90.0},
	}

	s := Summarize(samples)

	if s.Datasets != 3 {
		t.Errorf("Expected 3 datasets, got %d", s.Datasets)
	}
	if math.Abs(s.Mean-90.0) > 1e-9 {
		t.Errorf("Expected mean 90, got %f", s.Mean)
	}
	if s.Min != 80.0 || s.Max != 100.0 {
		t.Errorf("Expected min 80 max 100, got %f and %f", s.Min, s.Max)
	}
	if s.WorstDataset != "P_02" {
		t.Errorf("Expected worst dataset P_02, got %q", s.WorstDataset)
	}
	if s.ExactMatches != 1 {
		t.Errorf("Expected 1 exact match, got %d", s.ExactMatches)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Datasets != 0 || s.Mean != 0 || s.WorstDataset != "" {
		t.Errorf("Expected the zero Summary for no samples, got %+v", s)
	}
}
