package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// SolveDPRolling runs the same recurrence as SolveDPTable collapsed to a
// single array of C+1 cells indexed by residual capacity. For each pallet
// the array is scanned downward from C to the pallet's weight. The
// direction is mandatory: cells[j-w] still holds the previous item's row
// when cells[j] is updated, so each pallet enters a cell at most once per
// pass. An upward scan would let a pallet stack on top of itself, turning
// this into an unbounded knapsack.
//
// After all pallets, the answer is the policy-best over every cell 0..C —
// not necessarily cells[C], since the optimum may leave capacity unused.
// O(n·C) time, O(C) space; the variant of choice once the 2D table's
// memory becomes prohibitive.
func SolveDPRolling(pallets []models.Pallet, capacity int) models.Solution {
	n := len(pallets)
	words := (n + 63) / 64

	cells := make([]state, capacity+1)

	for i, p := range pallets {
		if p.Weight > capacity {
			continue
		}
		for j := capacity; j >= p.Weight; j-- {
			inc := cells[j-p.Weight].extend(i, p, words)
			if betterState(inc, cells[j], pallets) {
				cells[j] = inc
			}
		}
	}

	best := cells[0]
	for j := 1; j <= capacity; j++ {
		if betterState(cells[j], best, pallets) {
			best = cells[j]
		}
	}
	return best.solution(pallets)
}
