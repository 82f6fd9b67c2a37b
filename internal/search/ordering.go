package search

import (
	"sort"

	"github.com/kestrel-chess/kestrel/internal/history"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// orderMoves sorts list in place: the transposition-table move first,
// then captures by SEE-adjusted MVV-LVA descending, then quiet moves by
// history score descending; ties broken by raw move value ascending for
// determinism.
func orderMoves(pos *position.Position, list *moveslice.MoveList, ttMove Move, hist *history.History) {
	n := list.Len()
	scores := make([]int64, n)
	for i := 0; i < n; i++ {
		m := list.At(i)
		scores[i] = moveOrderScore(pos, m, ttMove, hist)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return list.At(ia) < list.At(ib)
	})
	sorted := make([]Move, n)
	for i, j := range idx {
		sorted[i] = list.At(j)
	}
	for i, m := range sorted {
		list.Set(i, m)
	}
}

const (
	ttMoveScore      = int64(1) << 40
	captureBaseScore = int64(1) << 30
)

// moveOrderScore ranks a single move for orderMoves; higher sorts first.
func moveOrderScore(pos *position.Position, m, ttMove Move, hist *history.History) int64 {
	if m == ttMove {
		return ttMoveScore
	}
	if isCapture(pos, m) {
		victim := pos.PieceOn(m.To()).TypeOf()
		if m.IsEnPassant() {
			victim = Pawn
		}
		attacker := pos.PieceOn(m.From()).TypeOf()
		mvvLva := int64(victim.ValueOf())*16 - int64(attacker.ValueOf())
		return captureBaseScore + mvvLva*1000 + int64(see(pos, m))
	}
	return int64(hist.Score(pos.SideToMove(), m.From(), m.To()))
}

// isCapture reports whether m removes an enemy piece from the board,
// the only fact SEE and MVV-LVA ordering need; Move carries no explicit
// capture flag (packed representation only needs from/to/flag).
func isCapture(pos *position.Position, m Move) bool {
	return m.IsEnPassant() || pos.PieceOn(m.To()) != PieceNone
}
