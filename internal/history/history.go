// Package history implements the quiet-move ordering heuristic: a
// from/to butterfly table per color, bumped on every quiet-move beta
// cutoff and
// halved at the start of each new search so stale bonuses from earlier
// positions fade out.
//
// Shaped like a HistoryCount[color][from][to] table bumped by 1<<depth
// on cutoff, pulled into its own package rather than kept as a field the
// searcher pokes directly.
package history

import (
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// History is a from/to butterfly table, one per color, used to rank quiet
// moves that have historically produced cutoffs.
type History struct {
	count [ColorLength][SqLength][SqLength]int32
}

// NewHistory returns an empty table.
func NewHistory() *History {
	return &History{}
}

// Bump rewards a quiet move that caused a beta cutoff at the given
// remaining depth: deeper cutoffs count for more, so a move that refutes
// near the root outweighs one that only helped close to the leaves.
func (h *History) Bump(c Color, from, to Square, depth int) {
	if depth < 0 {
		depth = 0
	}
	h.count[c][from][to] += int32(1) << uint(depth)
	const cap = 1 << 24
	if h.count[c][from][to] > cap {
		h.halveAll()
	}
}

// Score returns the current ordering weight of a quiet move.
func (h *History) Score(c Color, from, to Square) int32 {
	return h.count[c][from][to]
}

// Age halves every entry, called once per new `go` command so history
// from a previous search decays rather than accumulating forever.
func (h *History) Age() {
	h.halveAll()
}

func (h *History) halveAll() {
	for c := 0; c < int(ColorLength); c++ {
		for from := 0; from < int(SqLength); from++ {
			for to := 0; to < int(SqLength); to++ {
				h.count[c][from][to] /= 2
			}
		}
	}
}
