package solver

import (
	"math"
	"sort"

	"github.com/loadbay/pallet-engine/pkg/models"
)

// SolveGreedy packs pallets in ascending weight/profit density order (lower
// means more profit per unit of weight), breaking density ties by taking
// the higher pallet id first. Each pallet is taken iff it still fits; a
// skipped pallet is never reconsidered. The selection is re-sorted by id
// before reporting, which changes presentation only.
//
// This is an approximation: it ignores the exact algorithms' tie-break
// policy and can return strictly less profit than them, increasingly so as
// the item count grows. Every partial selection still respects the
// capacity bound, so the returned Solution is always feasible.
func SolveGreedy(pallets []models.Pallet, capacity int) models.Solution {
	density := func(p models.Pallet) float64 {
		if p.Profit == 0 {
			// Weight with nothing in return sorts last.
			return math.Inf(1)
		}
		return float64(p.Weight) / float64(p.Profit)
	}

	order := make([]int, len(pallets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := density(pallets[order[a]]), density(pallets[order[b]])
		if da != db {
			return da < db
		}
		return pallets[order[a]].ID > pallets[order[b]].ID
	})

	sol := models.EmptySolution()
	remaining := capacity
	for _, idx := range order {
		p := pallets[idx]
		if p.Weight > remaining {
			continue
		}
		remaining -= p.Weight
		sol.SelectedIDs = append(sol.SelectedIDs, p.ID)
		sol.TotalWeight += p.Weight
		sol.TotalProfit += p.Profit
	}

	sort.Ints(sol.SelectedIDs)
	return sol
}
