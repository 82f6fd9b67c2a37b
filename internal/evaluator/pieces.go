package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// pieceScore returns per-piece positional bonuses not captured by the
// plain piece-square tables: knights/bishops behind a pawn, a bishop's
// view of the center, and a rook sharing the queen's file or sitting on
// an open file, white minus black.
func pieceScore(pos *position.Position) Score {
	var s Score
	s.Add(minorBehindPawn(pos, White, Knight))
	s.Sub(minorBehindPawn(pos, Black, Knight))
	s.Add(minorBehindPawn(pos, White, Bishop))
	s.Sub(minorBehindPawn(pos, Black, Bishop))
	s.Add(bishopCenterAim(pos, White))
	s.Sub(bishopCenterAim(pos, Black))
	s.Add(rookFileBonus(pos, White))
	s.Sub(rookFileBonus(pos, Black))
	return s
}

const minorBehindPawnBonus Value = 8
const bishopCenterAimBonus Value = 6
const rookOnQueenFileBonus Value = 6
const rookOnOpenFileBonus Value = 20

func minorBehindPawn(pos *position.Position, us Color, kind PieceKind) Score {
	ownPawns := pos.Pieces(us, Pawn)

	var shielded Bitboard
	if us == White {
		shielded = ownPawns.ShiftSouth()
	} else {
		shielded = ownPawns.ShiftNorth()
	}

	count := (pos.Pieces(us, kind) & shielded).PopCount()
	v := Value(count) * minorBehindPawnBonus
	return Score{Opening: v}
}

func bishopCenterAim(pos *position.Position, us Color) Score {
	occ := pos.Occupied()
	bishops := pos.Pieces(us, Bishop)
	total := 0
	for bishops != BbZero {
		sq := bishops.PopLsb()
		total += (attacks.BishopAttacks(sq, occ) & smallCenter).PopCount()
	}
	return Score{Opening: Value(total) * bishopCenterAimBonus}
}

func rookFileBonus(pos *position.Position, us Color) Score {
	var s Score
	queens := pos.Pieces(us, Queen)
	pawns := pos.Pieces(us, Pawn)
	enemyPawns := pos.Pieces(us.Flip(), Pawn)
	rooks := pos.Pieces(us, Rook)
	for rooks != BbZero {
		sq := rooks.PopLsb()
		fileMask := sq.FileOf().Bb()
		if fileMask&queens != BbZero {
			s.Opening += rookOnQueenFileBonus
			s.Endgame += rookOnQueenFileBonus
		}
		if fileMask&pawns == BbZero {
			bonus := rookOnOpenFileBonus
			if fileMask&enemyPawns != BbZero {
				bonus /= 2 // semi-open, not fully open
			}
			s.Opening += bonus
		}
	}
	return s
}
