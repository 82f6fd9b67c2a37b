package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// evaluatePawns returns the white-minus-black pawn-structure score:
// doubled/isolated/phalanx pawns plus passed-pawn rank and king-proximity
// bonuses. Consults and fills e.pawnCache when enabled, keyed by
// Position.PawnKey combined with both king squares (the passed-pawn terms
// depend on where the kings stand).
func (e *Evaluator) evaluatePawns() Score {
	key := e.position.PawnKey() ^
		attacks.ZPiece[MakePiece(White, King)][e.position.KingSquare(White)] ^
		attacks.ZPiece[MakePiece(Black, King)][e.position.KingSquare(Black)]
	if e.pawnCache != nil {
		if s, ok := e.pawnCache.get(key); ok {
			return s
		}
	}

	s := evaluatePawnsForColor(e.position, White)
	black := evaluatePawnsForColor(e.position, Black)
	s.Sub(black)

	if e.pawnCache != nil {
		e.pawnCache.put(key, s)
	}
	return s
}

func evaluatePawnsForColor(pos *position.Position, us Color) Score {
	them := us.Flip()
	ownPawns := pos.Pieces(us, Pawn)
	enemyPawns := pos.Pieces(them, Pawn)
	ourKing := pos.KingSquare(us)
	theirKing := pos.KingSquare(them)
	ev := config.Settings.Eval

	var s Score
	pawns := ownPawns
	for pawns != BbZero {
		sq := pawns.PopLsb()
		f := sq.FileOf()

		if (ownPawns & f.Bb() &^ sq.Bb()) != BbZero {
			s.Opening += Value(ev.PawnDoubledMidMalus)
			s.Endgame += Value(ev.PawnDoubledEndMalus)
		}

		isolated := true
		if f > 0 && (ownPawns&(f-1).Bb()) != BbZero {
			isolated = false
		}
		if f < 7 && (ownPawns&(f+1).Bb()) != BbZero {
			isolated = false
		}
		if isolated {
			s.Opening += Value(ev.PawnIsolatedMidMalus)
			s.Endgame += Value(ev.PawnIsolatedEndMalus)
		}

		if phalanxMask(sq)&ownPawns != BbZero {
			s.Opening += Value(ev.PawnPhalanxMidBonus)
			s.Endgame += Value(ev.PawnPhalanxEndBonus)
		}

		if attacks.PassedPawnMask(us, sq)&enemyPawns == BbZero {
			rank := relativeRank(us, sq)
			s.Opening += Value(int(rank) * ev.PassedPawnMidBonus / 4)
			s.Endgame += Value(int(rank) * ev.PassedPawnEndBonus / 4)

			s.Endgame += Value((7 - attacks.KingDistance(ourKing, sq)) * ev.PassedPawnKingDistBonus / 7)
			s.Endgame -= Value((7 - attacks.KingDistance(theirKing, sq)) * ev.PassedPawnEnemyKingMalus / 7)
		}
	}
	return s
}

// phalanxMask returns the two squares (east and west neighbor on the same
// rank) whose occupation by an own pawn forms a phalanx with sq.
func phalanxMask(sq Square) Bitboard {
	var m Bitboard
	if sq.FileOf() > 0 {
		m |= (sq - 1).Bb()
	}
	if sq.FileOf() < 7 {
		m |= (sq + 1).Bb()
	}
	return m
}

// relativeRank returns sq's rank from us's own side, 0 (own back rank) to
// 7 (promotion rank).
func relativeRank(us Color, sq Square) Rank {
	if us == White {
		return sq.RankOf()
	}
	return Rank(7 - int(sq.RankOf()))
}
