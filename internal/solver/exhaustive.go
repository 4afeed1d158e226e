package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// SolveExhaustive enumerates every subset of the pallet list by treating an
// integer counter as a bitmask over item indices, keeping the best feasible
// subset under the tie-break policy. O(n·2ⁿ) — the correctness baseline the
// other algorithms are checked against, not a production strategy.
//
// Masks are visited in increasing numeric order and the incumbent is only
// replaced on a strict improvement, so the result is fully deterministic.
func SolveExhaustive(pallets []models.Pallet, capacity int) models.Solution {
	n := len(pallets)
	best := Candidate{IDs: []int{}}

	ids := make([]int, 0, n)
	total := uint64(1) << uint(n)
	for mask := uint64(0); mask < total; mask++ {
		weight, profit := 0, 0
		ids = ids[:0]
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			weight += pallets[i].Weight
			profit += pallets[i].Profit
			ids = append(ids, pallets[i].ID)
		}
		if weight > capacity {
			continue
		}
		cand := Candidate{Profit: profit, Weight: weight, IDs: ids}
		if Better(cand, best) {
			best = Candidate{Profit: profit, Weight: weight, IDs: append([]int(nil), ids...)}
		}
	}
	return best.solution()
}
