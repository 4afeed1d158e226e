package solver

import "math/bits"

// bitset is a fixed-width bit vector over pallet indices. DP cells store
// their selected subset this way instead of an id slice, keeping per-cell
// memory at one word per 64 items regardless of how many cells share state.
type bitset []uint64

func (b bitset) set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

// next returns the smallest set index >= from, or -1 when none remains.
func (b bitset) next(from int) int {
	if from < 0 {
		from = 0
	}
	w := from >> 6
	if w >= len(b) {
		return -1
	}
	// Mask off bits below from in the first word, then scan whole words.
	word := b[w] &^ ((1 << uint(from&63)) - 1)
	for {
		if word != 0 {
			return w<<6 + bits.TrailingZeros64(word)
		}
		w++
		if w >= len(b) {
			return -1
		}
		word = b[w]
	}
}
