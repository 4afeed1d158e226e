package solver

import "github.com/loadbay/pallet-engine/pkg/models"

// Candidate is a feasible subset as seen by the search algorithms: its
// totals plus the pallet ids in the order they were considered during
// construction (input order for every exact algorithm).
type Candidate struct {
	Profit int
	Weight int
	IDs    []int
}

// Better reports whether a is strictly preferred over b under the engine's
// tie-break policy:
//
//  1. higher total profit,
//  2. fewer selected pallets,
//  3. the lexicographically larger id sequence, compared in construction
//     order — NOT over sorted ids. Two equal-profit, equal-count subsets
//     that differ only in which pallets they pick are ranked by the first
//     position where their id sequences diverge, larger id winning.
//
// The relation is a strict total order over distinct subsets (two subsets
// with identical id sequences are the same subset), so best-so-far updates
// and DP max-reduction are traversal-order independent. It is also
// extension-monotone: appending the same pallet to two ordered candidates
// preserves their order, which is what lets both DP variants use it as a
// max-reducer over partial states.
func Better(a, b Candidate) bool {
	if a.Profit != b.Profit {
		return a.Profit > b.Profit
	}
	if len(a.IDs) != len(b.IDs) {
		return len(a.IDs) < len(b.IDs)
	}
	for i := range a.IDs {
		if a.IDs[i] != b.IDs[i] {
			return a.IDs[i] > b.IDs[i]
		}
	}
	return false
}

// state is the per-cell DP representation: totals plus a bitset over pallet
// indices instead of an id slice, so cells never grow by copy.
type state struct {
	profit int
	weight int
	count  int
	bits   bitset // nil means the empty solution
}

// extend returns a new state with pallet index idx added. The receiver is
// never mutated; DP cells share nothing.
func (s state) extend(idx int, p models.Pallet, words int) state {
	nb := make(bitset, words)
	copy(nb, s.bits)
	nb.set(idx)
	return state{
		profit: s.profit + p.Profit,
		weight: s.weight + p.Weight,
		count:  s.count + 1,
		bits:   nb,
	}
}

// betterState is Better over bitset states: the id sequence of a state is
// its set pallet indices walked in increasing index order, which is exactly
// construction order for the DP algorithms. Must agree with Better on every
// pair of subsets; ordering_test.go pins that.
func betterState(a, b state, pallets []models.Pallet) bool {
	if a.profit != b.profit {
		return a.profit > b.profit
	}
	if a.count != b.count {
		return a.count < b.count
	}
	ai, bi := -1, -1
	for k := 0; k < a.count; k++ {
		ai = a.bits.next(ai + 1)
		bi = b.bits.next(bi + 1)
		if pallets[ai].ID != pallets[bi].ID {
			return pallets[ai].ID > pallets[bi].ID
		}
	}
	return false
}

// solution materializes a DP state into the caller-facing form, ids in
// construction order.
func (s state) solution(pallets []models.Pallet) models.Solution {
	sol := models.EmptySolution()
	sol.TotalWeight = s.weight
	sol.TotalProfit = s.profit
	for i := s.bits.next(0); i >= 0; i = s.bits.next(i + 1) {
		sol.SelectedIDs = append(sol.SelectedIDs, pallets[i].ID)
	}
	return sol
}

func (c Candidate) solution() models.Solution {
	sol := models.EmptySolution()
	sol.TotalWeight = c.Weight
	sol.TotalProfit = c.Profit
	sol.SelectedIDs = append(sol.SelectedIDs, c.IDs...)
	return sol
}
