package movegen

import (
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
)

// Perft counts the leaf nodes reachable in exactly depth plies from pos,
// used to validate the generator against perft scenarios.
func Perft(pos *position.Position, depth int) uint64 {
	g := NewGenerator()
	return perft(g, pos, depth)
}

func perft(g *Generator, pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var list moveslice.MoveList
	g.Generate(pos, false, &list)
	if depth == 1 {
		return uint64(list.Len())
	}
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		pos.DoMove(m)
		nodes += perft(g, pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}

// Divide returns the per-root-move subtree node counts at depth, useful
// for isolating a generator bug against a reference perft tool.
func Divide(pos *position.Position, depth int) map[string]uint64 {
	g := NewGenerator()
	var list moveslice.MoveList
	g.Generate(pos, false, &list)
	out := make(map[string]uint64, list.Len())
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		pos.DoMove(m)
		var n uint64
		if depth <= 1 {
			n = 1
		} else {
			n = perft(g, pos, depth-1)
		}
		pos.UndoMove()
		out[m.StringUci()] = n
	}
	return out
}
