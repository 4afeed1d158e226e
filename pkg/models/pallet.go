package models

import "time"

// Pallet is a single loadable item: a unique id plus its weight and the
// profit earned by shipping it. Created once at load time, never mutated.
type Pallet struct {
	ID     int `json:"id"`
	Weight int `json:"weight"`
	Profit int `json:"profit"`
}

// Dataset pairs a truck capacity with the pallets available for loading.
type Dataset struct {
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Pallets  []Pallet `json:"pallets"`
}

// Solution is a feasible subset of pallets plus its derived totals.
// SelectedIDs lists pallet ids in the order the algorithm considered them
// (input order for the exact algorithms, ascending id for the heuristic).
type Solution struct {
	SelectedIDs []int `json:"selectedIds"`
	TotalWeight int   `json:"totalWeight"`
	TotalProfit int   `json:"totalProfit"`
}

// EmptySolution is the canonical result when nothing fits: no pallets,
// profit 0. Returned fresh so callers can append safely.
func EmptySolution() Solution {
	return Solution{SelectedIDs: []int{}}
}

// RunRecord captures one timed algorithm invocation for the results log,
// the database and the live event stream.
type RunRecord struct {
	RunID     string    `json:"runId"`
	Algorithm string    `json:"algorithm"`
	Dataset   string    `json:"dataset"`
	Pallets   int       `json:"pallets"`
	Capacity  int       `json:"capacity"`
	Solution  Solution  `json:"solution"`
	ElapsedMS float64   `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Divergence records a dataset where the ratio-greedy heuristic returned a
// lower profit than the exact optimum. Expected behavior, tracked so the
// heuristic's quality can be monitored over time.
type Divergence struct {
	Dataset       string  `json:"dataset"`
	OptimalProfit int     `json:"optimalProfit"`
	GreedyProfit  int     `json:"greedyProfit"`
	Accuracy      float64 `json:"accuracy"` // percent of optimal
}
