package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// smallCenter is the four central squares d4,e4,d5,e5.
const smallCenter Bitboard = SqD4Bb | SqE4Bb | SqD5Bb | SqE5Bb

const (
	SqD4Bb Bitboard = 1 << SqD4
	SqE4Bb Bitboard = 1 << SqE4
	SqD5Bb Bitboard = 1 << SqD5
	SqE5Bb Bitboard = 1 << SqE5
)

// evaluateCenter returns the white-minus-black center-control score: a
// pawn bonus for occupying one of the four small-center squares, plus an
// attack-count bonus for every piece (of either side) attacking into the
// small center.
func evaluateCenter(pos *position.Position) Score {
	ev := config.Settings.Eval
	var s Score

	whitePawnCenter := (pos.Pieces(White, Pawn) & smallCenter).PopCount()
	blackPawnCenter := (pos.Pieces(Black, Pawn) & smallCenter).PopCount()
	bonus := Value((whitePawnCenter - blackPawnCenter) * ev.CenterPawnBonus)
	s.Opening += bonus
	s.Endgame += bonus / 2

	occ := pos.Occupied()
	whiteAttacks := centerAttackCount(pos, White, occ)
	blackAttacks := centerAttackCount(pos, Black, occ)
	attackBonus := Value((whiteAttacks - blackAttacks) * ev.CenterAttackBonus)
	s.Opening += attackBonus

	return s
}

func centerAttackCount(pos *position.Position, us Color, occ Bitboard) int {
	count := 0
	for _, kind := range [...]PieceKind{Knight, Bishop, Rook, Queen} {
		pieces := pos.Pieces(us, kind)
		for pieces != BbZero {
			sq := pieces.PopLsb()
			var a Bitboard
			if kind.IsSlider() {
				a = attacks.SliderAttacks(kind, sq, occ)
			} else {
				a = attacks.KnightAttacks(sq)
			}
			count += (a & smallCenter).PopCount()
		}
	}
	pawns := pos.Pieces(us, Pawn)
	for pawns != BbZero {
		sq := pawns.PopLsb()
		count += (attacks.PawnAttacks(us, sq) & smallCenter).PopCount()
	}
	return count
}
