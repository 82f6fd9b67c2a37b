// Package evaluator implements the static evaluation function: tapered
// material, piece-square tables, pawn structure, passed pawns, center
// control and king safety, all combined from white's point of view and
// then flipped to the side to move.
//
// Shaped as a reusable object that records the position being scored at
// the start of each Evaluate call, plus an optional pawn cache.
package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Evaluator holds the loaded piece-square tables and the optional pawn
// cache. Create one with NewEvaluator; it is safe to reuse across an
// entire search since it carries no per-position state between calls.
type Evaluator struct {
	pst       *pstTables
	pawnCache *pawnCache
	position  *position.Position
}

// NewEvaluator loads the configured PST files and, if enabled, allocates
// the pawn-structure cache. A load failure is fatal: the caller must not
// enter search mode if err != nil.
func NewEvaluator() (*Evaluator, error) {
	ev := config.Settings.Eval
	pst, err := loadPST(ev.PSTFileOpening, ev.PSTFileEndgame)
	if err != nil {
		return nil, err
	}
	e := &Evaluator{pst: pst}
	if ev.UsePawnCache {
		e.pawnCache = newPawnCache(ev.PawnCacheSizeMB)
	} else {
		logging.GetLog().Info("pawn cache disabled in configuration")
	}
	return e, nil
}

// Evaluate scores pos from the side-to-move's perspective, in centipawns.
// Insufficient material short-circuits to a draw.
func (e *Evaluator) Evaluate(pos *position.Position) Value {
	if pos.IsInsufficientMaterial() {
		return ValueDraw
	}
	e.position = pos

	var s Score
	s.Add(materialScore(pos))
	s.Add(e.pstScore(pos))
	s.Add(e.evaluatePawns())
	s.Add(evaluateCenter(pos))
	white := evaluateKingSafety(pos, White)
	black := evaluateKingSafety(pos, Black)
	white.Sub(black)
	s.Add(white)
	s.Add(pieceScore(pos))

	phase := gamePhase(pos)
	value := s.Taper(phase)
	return value * Value(pos.SideToMove().Sign())
}

// materialScore returns the white-minus-black material difference,
// including the bishop-pair bonus, using config's tunable piece values
// rather than the fixed types.PieceValue table the search's SEE consults
// ("Material": values are an evaluation knob; SEE needs a
// stable ordering table instead).
func materialScore(pos *position.Position) Score {
	ev := config.Settings.Eval
	values := [PkLength]int{
		Pawn:   ev.PawnValue,
		Knight: ev.KnightValue,
		Bishop: ev.BishopValue,
		Rook:   ev.RookValue,
		Queen:  ev.QueenValue,
	}
	total := 0
	for pk := Pawn; pk <= Queen; pk++ {
		diff := pos.Pieces(White, pk).PopCount() - pos.Pieces(Black, pk).PopCount()
		total += diff * values[pk]
	}
	if pos.Pieces(White, Bishop).PopCount() >= 2 {
		total += ev.BishopPairBonus
	}
	if pos.Pieces(Black, Bishop).PopCount() >= 2 {
		total -= ev.BishopPairBonus
	}
	v := Value(total)
	return Score{Opening: v, Endgame: v}
}

// pstScore sums piece-square-table values for every piece on the board,
// white minus black ("Piece-square tables").
func (e *Evaluator) pstScore(pos *position.Position) Score {
	var s Score
	for pk := Pawn; pk <= King; pk++ {
		white := pos.Pieces(White, pk)
		for white != BbZero {
			sq := white.PopLsb()
			op, eg := e.pst.at(pk, White, sq)
			s.Opening += Value(op)
			s.Endgame += Value(eg)
		}
		black := pos.Pieces(Black, pk)
		for black != BbZero {
			sq := black.PopLsb()
			op, eg := e.pst.at(pk, Black, sq)
			s.Opening -= Value(op)
			s.Endgame -= Value(eg)
		}
	}
	return s
}
