// Package solver implements five interchangeable 0/1 knapsack strategies
// over the same immutable (pallets, capacity) input: two exhaustive
// searches, two dynamic-programming formulations and a ratio-greedy
// heuristic. The four exact algorithms resolve equal-profit ties through a
// single shared comparator (see ordering.go) so they return the identical
// Solution for any input; the heuristic carries no such guarantee.
//
// Algorithms assume already-validated input: non-negative weights, profits
// and capacity, unique ids. They enforce no size limits of their own — the
// caller decides when an exponential strategy is affordable.
package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// Algorithm names as they appear in the results log, the database and the
// HTTP API.
const (
	AlgoExhaustive   = "exhaustive"
	AlgoBacktracking = "backtracking"
	AlgoDPTable      = "dp-table"
	AlgoDPRolling    = "dp-rolling"
	AlgoGreedy       = "greedy"
)

// Func is the single operation every algorithm exposes.
type Func func(pallets []models.Pallet, capacity int) models.Solution

var registry = map[string]Func{
	AlgoExhaustive:   SolveExhaustive,
	AlgoBacktracking: SolveBacktrack,
	AlgoDPTable:      SolveDPTable,
	AlgoDPRolling:    SolveDPRolling,
	AlgoGreedy:       SolveGreedy,
}

// Lookup resolves an algorithm by name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns every algorithm name in suite order: exact strategies from
// slowest to fastest, heuristic last.
func Names() []string {
	return []string{AlgoExhaustive, AlgoBacktracking, AlgoDPTable, AlgoDPRolling, AlgoGreedy}
}

// IsExact reports whether the named algorithm guarantees an optimal
// solution under the tie-break policy.
func IsExact(name string) bool {
	return name != AlgoGreedy && name != ""
}

// IsExponential reports whether the named algorithm enumerates the subset
// space and therefore needs a small item count to finish.
func IsExponential(name string) bool {
	return name == AlgoExhaustive || name == AlgoBacktracking
}
