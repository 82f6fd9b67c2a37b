package search

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// maxSeeDepth bounds the attacker chain: 32 is more than either side can
// ever muster on one square (16 pieces per side, king included).
const maxSeeDepth = 32

// see returns the static exchange evaluation of move from the mover's
// point of view: the net material gained after both sides capture on
// move.To() with least-valuable-attacker-first, playing on only while it
// improves the capturing side's result.
func see(pos *position.Position, move Move) Value {
	// An en-passant capture always wins at least a pawn's worth and the
	// square it resolves on (To()) never holds the captured pawn, so the
	// generic occupant-value lookup below would undercount it; treat it
	// as a fixed pawn gain instead of walking the exchange.
	if move.IsEnPassant() {
		return PieceValue[Pawn]
	}

	var gain [maxSeeDepth]Value
	depth := 0

	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := pos.PieceOn(fromSquare)
	side := pos.SideToMove()

	occupied := pos.Occupied()
	attackers := pos.AttackersTo(toSquare, occupied)

	gain[depth] = pos.PieceOn(toSquare).TypeOf().ValueOf()

	for {
		depth++
		side = side.Flip()

		if move.IsPromotion() && depth == 1 {
			gain[depth] = move.PromotionKind().ValueOf() - Pawn.ValueOf() - gain[depth-1]
		} else {
			gain[depth] = movedPiece.TypeOf().ValueOf() - gain[depth-1]
		}

		// Standing pat here would leave the previous capturer ahead;
		// no attacker can improve on that, so the exchange is done.
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attackers.PopSquare(fromSquare)
		occupied.PopSquare(fromSquare)
		attackers |= revealedAttackers(pos, toSquare, occupied)

		fromSquare = leastValuableAttacker(pos, attackers, side)
		if fromSquare == SqNone || depth == maxSeeDepth-1 {
			break
		}
		movedPiece = pos.PieceOn(fromSquare)
	}

	depth--
	for depth > 0 {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

// revealedAttackers returns slider attacks to sq that might have been
// unmasked by removing a piece from occupied. Knight/king/pawn attacks
// never depend on occupancy, so recomputing them here would just
// resurrect an attacker leastValuableAttacker already consumed; only
// bishops/rooks/queens can ever be newly revealed this way.
func revealedAttackers(pos *position.Position, sq Square, occupied Bitboard) Bitboard {
	var att Bitboard
	for _, c := range [2]Color{White, Black} {
		diag := pos.Pieces(c, Bishop) | pos.Pieces(c, Queen)
		att |= attacks.BishopAttacks(sq, occupied) & diag
		orth := pos.Pieces(c, Rook) | pos.Pieces(c, Queen)
		att |= attacks.RookAttacks(sq, occupied) & orth
	}
	return att & occupied
}

// leastValuableAttacker returns the attacker of color side with the
// smallest material value, breaking ties by bitboard order (arbitrary but
// deterministic).
func leastValuableAttacker(pos *position.Position, attackers Bitboard, side Color) Square {
	for pk := Pawn; pk <= King; pk++ {
		if b := attackers & pos.Pieces(side, pk); b != BbZero {
			return b.Lsb()
		}
	}
	return SqNone
}

func max(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}
