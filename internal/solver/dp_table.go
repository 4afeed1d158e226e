package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// SolveDPTable solves the knapsack with the classic (n+1)×(C+1) tabulation.
// Cell (i, j) holds the best subset of the first i pallets with total
// weight ≤ j under the tie-break policy:
//
//	cell(i, j) = better of { cell(i-1, j),                       // exclude
//	                         cell(i-1, j-wᵢ) extended by item i } // include, j ≥ wᵢ
//
// Each cell carries full state — profit, weight, count and a bitset of
// selected indices — so the answer is read straight out of cell(n, C) with
// no backtracking pass. O(n·C) time and space; the per-cell bitset keeps
// memory at one word per 64 items instead of a growing id slice, but for
// very large capacities the table itself is the practical limit and
// SolveDPRolling should be used instead.
func SolveDPTable(pallets []models.Pallet, capacity int) models.Solution {
	n := len(pallets)
	words := (n + 63) / 64
	cols := capacity + 1

	// Flat layout, row i at cells[i*cols:]. Row 0 is the empty solution for
	// every residual capacity.
	cells := make([]state, (n+1)*cols)

	for i := 1; i <= n; i++ {
		p := pallets[i-1]
		for j := 0; j <= capacity; j++ {
			cell := cells[(i-1)*cols+j]
			if j >= p.Weight {
				inc := cells[(i-1)*cols+j-p.Weight].extend(i-1, p, words)
				if betterState(inc, cell, pallets) {
					cell = inc
				}
			}
			cells[i*cols+j] = cell
		}
	}

	return cells[n*cols+capacity].solution(pallets)
}
