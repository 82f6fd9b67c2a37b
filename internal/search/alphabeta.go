package search

import (
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/kestrel-chess/kestrel/internal/transpositiontable"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// mateValue returns the score for being checkmated at ply plies from the
// root: closer mates (smaller ply) score further from zero, so the search
// always prefers the fastest mate and the slowest loss.
func mateValue(ply int) Value {
	return -ValueMate + Value(ply)
}

// search implements alpha-beta state machine for one node.
// depth is the remaining search depth; ply is the distance from the root
// (used for mate-distance scoring and the TT horizon). Returns the score
// from the side-to-move's perspective, or an aborted=true marker if the
// stop flag or node limit tripped mid-subtree.
func (s *Search) search(pos *position.Position, depth, ply int, alpha, beta Value) (Value, bool) {
	if s.checkStop() {
		return 0, true
	}

	if ply > 0 {
		if pos.IsRepetition() || pos.IsFiftyMove() || pos.IsInsufficientMaterial() {
			return ValueDraw, false
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply)
	}

	var list moveslice.MoveList
	s.gen.Generate(pos, false, &list)
	if list.Len() == 0 {
		if pos.IsCheck() {
			return mateValue(ply), false
		}
		s.stats.Stalemates++
		return ValueDraw, false
	}

	key := pos.ZobristKey()
	var ttMove Move
	if entry := s.tt.Probe(key); entry != nil {
		s.stats.TTHits++
		ttMove = entry.Move()
		if entry.Horizon() >= ply+depth {
			switch entry.Bound() {
			case transpositiontable.BoundExact:
				s.stats.TTCuts++
				return entry.Value(), false
			case transpositiontable.BoundLower:
				if entry.Value() >= beta {
					s.stats.TTCuts++
					return entry.Value(), false
				}
			case transpositiontable.BoundUpper:
				if entry.Value() <= alpha {
					s.stats.TTCuts++
					return entry.Value(), false
				}
			}
		}
	} else {
		s.stats.TTMisses++
	}

	orderMoves(pos, &list, ttMove, s.hist)

	origAlpha := alpha
	var best Value = -ValueInfinite
	var bestMove Move
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		pos.DoMove(m)
		s.stats.Nodes++
		value, aborted := s.search(pos, depth-1, ply+1, -beta, -alpha)
		pos.UndoMove()
		if aborted {
			return 0, true
		}
		value = -value

		if value > best {
			best = value
			bestMove = m
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			s.stats.BetaCuts++
			if i == 0 {
				s.stats.BetaCuts1st++
			}
			if !isCapture(pos, m) {
				s.hist.Bump(pos.SideToMove(), m.From(), m.To(), depth)
			}
			break
		}
	}

	bound := transpositiontable.BoundExact
	switch {
	case alpha >= beta:
		bound = transpositiontable.BoundLower
	case alpha <= origAlpha:
		bound = transpositiontable.BoundUpper
	}
	s.tt.Store(key, bestMove, best, ValueNone, ply+depth, bound)

	return best, false
}

// quiescence implements the tail search described in : only
// captures, promotions, and (when in check) evasions are generated; a
// static-eval stand-pat score lower-bounds the result, and SEE < 0
// captures are pruned.
func (s *Search) quiescence(pos *position.Position, alpha, beta Value, ply int) (Value, bool) {
	if s.checkStop() {
		return 0, true
	}
	if pos.IsRepetition() || pos.IsFiftyMove() || pos.IsInsufficientMaterial() {
		return ValueDraw, false
	}

	standPat := s.eval.Evaluate(pos)
	s.stats.Evaluations++
	if standPat >= beta {
		return beta, false
	}
	if standPat > alpha {
		alpha = standPat
	}

	var list moveslice.MoveList
	s.gen.Generate(pos, true, &list)
	if list.Len() == 0 {
		if pos.IsCheck() {
			return mateValue(ply), false
		}
		return alpha, false
	}

	orderMoves(pos, &list, MoveNone, s.hist)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if !pos.IsCheck() && isCapture(pos, m) && see(pos, m) < 0 {
			s.stats.SeePrunes++
			continue
		}
		pos.DoMove(m)
		s.stats.QNodes++
		value, aborted := s.quiescence(pos, -beta, -alpha, ply+1)
		pos.UndoMove()
		if aborted {
			return 0, true
		}
		value = -value

		if value >= beta {
			return beta, false
		}
		if value > alpha {
			alpha = value
		}
	}
	return alpha, false
}
