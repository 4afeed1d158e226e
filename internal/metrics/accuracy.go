package metrics

import "math"

// Accuracy computes a heuristic's profit as a percentage of the proven
// optimum, the quality metric reported per benchmark run.
//
// A zero optimum means the instance has no profitable packing at all, in
// which case any feasible answer is trivially perfect.
func Accuracy(heuristicProfit, optimalProfit int) float64 {
	if optimalProfit == 0 {
		return 100.0
	}
	return 100.0 * float64(heuristicProfit) / float64(optimalProfit)
}

// Summary aggregates per-dataset accuracy figures over a benchmark suite.
type Summary struct {
	Datasets     int     `json:"datasets"`
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	WorstDataset string  `json:"worst_dataset"`
	ExactMatches int     `json:"exact_matches"`
}

// Sample is one dataset's accuracy observation.
type Sample struct {
	Dataset  string
	Accuracy float64
}

// Summarize rolls a set of samples up into a Summary. An empty input
// yields the zero Summary.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	s := Summary{
		Datasets: len(samples),
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
	}
	total := 0.0
	for _, sample := range samples {
		total += sample.Accuracy
		if sample.Accuracy < s.Min {
			s.Min = sample.Accuracy
			s.WorstDataset = sample.Dataset
		}
		if sample.Accuracy > s.Max {
			s.Max = sample.Accuracy
		}
		if sample.Accuracy >= 100.0 {
			s.ExactMatches++
		}
	}
	s.Mean = total / float64(len(samples))
	return s
}
