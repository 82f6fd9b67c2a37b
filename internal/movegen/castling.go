package movegen

import (
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

type castleOption struct {
	right            CastlingRights
	kingFrom, kingTo Square
	mustBeEmpty      Bitboard // squares between king and rook that must be empty
	mustBeSafe       [3]Square
}

var castleOptions = [4]castleOption{
	{CastlingWhiteKingside, SqE1, SqG1, SqF1.Bb() | SqG1.Bb(), [3]Square{SqE1, SqF1, SqG1}},
	{CastlingWhiteQueenside, SqE1, SqC1, SqB1.Bb() | SqC1.Bb() | SqD1.Bb(), [3]Square{SqE1, SqD1, SqC1}},
	{CastlingBlackKingside, SqE8, SqG8, SqF8.Bb() | SqG8.Bb(), [3]Square{SqE8, SqF8, SqG8}},
	{CastlingBlackQueenside, SqE8, SqC8, SqB8.Bb() | SqC8.Bb() | SqD8.Bb(), [3]Square{SqE8, SqD8, SqC8}},
}

// generateCastling emits legal castling moves. Only called when the side
// to move is not in check: castling is disallowed while in check.
func generateCastling(pos *position.Position, us Color, enemyAttack, occ Bitboard, emit func(Move) bool) {
	rights := pos.CastlingRights()
	for _, opt := range castleOptions {
		if (us == White) != (opt.kingFrom == SqE1) {
			continue
		}
		if !rights.Has(opt.right) {
			continue
		}
		if occ&opt.mustBeEmpty != BbZero {
			continue
		}
		safe := true
		for _, sq := range opt.mustBeSafe {
			if enemyAttack.Has(sq) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		if emit(NewMove(opt.kingFrom, opt.kingTo, Castle)) {
			return
		}
	}
}
