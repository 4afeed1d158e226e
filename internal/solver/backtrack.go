package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// SolveBacktrack explores the same subset space as SolveExhaustive as a
// depth-first binary decision tree: at each item, descend the exclude
// branch first, then the include branch. A branch is cut the moment its
// accumulated weight exceeds capacity — weight only grows along a path, so
// nothing below can recover. Worst case stays O(2ⁿ), but tight capacities
// prune most of the tree.
//
// Every surviving leaf is evaluated with the same strict comparator as the
// exhaustive search, so both return the identical Solution for any input.
func SolveBacktrack(pallets []models.Pallet, capacity int) models.Solution {
	n := len(pallets)
	best := Candidate{IDs: []int{}}
	cur := make([]int, 0, n)

	var descend func(index, weight, profit int)
	descend = func(index, weight, profit int) {
		if weight > capacity {
			return
		}
		if index == n {
			cand := Candidate{Profit: profit, Weight: weight, IDs: cur}
			if Better(cand, best) {
				best = Candidate{Profit: profit, Weight: weight, IDs: append([]int(nil), cur...)}
			}
			return
		}

		descend(index+1, weight, profit)

		cur = append(cur, pallets[index].ID)
		descend(index+1, weight+pallets[index].Weight, profit+pallets[index].Profit)
		cur = cur[:len(cur)-1]
	}
	descend(0, 0, 0)

	return best.solution()
}
