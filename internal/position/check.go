package position

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// IsSquareAttacked reports whether any piece of color by attacks sq, using
// occupied as the blocker set for sliding attacks. Exported so the move
// generator can reuse it (e.g. for castling square safety) without
// recomputing the logic.
func IsSquareAttacked(sq Square, by Color, pieceBb [PkLength]Bitboard, colorBb [ColorLength]Bitboard, occupied Bitboard) bool {
	enemy := colorBb[by]
	if attacks.KnightAttacks(sq)&pieceBb[Knight]&enemy != BbZero {
		return true
	}
	if attacks.KingAttacks(sq)&pieceBb[King]&enemy != BbZero {
		return true
	}
	// Pawn attacks are reciprocal: a pawn of color `by` attacks sq iff sq
	// is among the attack squares of the opposite color standing on sq.
	if attacks.PawnAttacks(by.Flip(), sq)&pieceBb[Pawn]&enemy != BbZero {
		return true
	}
	diag := enemy & (pieceBb[Bishop] | pieceBb[Queen])
	if diag != BbZero && attacks.BishopAttacks(sq, occupied)&diag != BbZero {
		return true
	}
	orth := enemy & (pieceBb[Rook] | pieceBb[Queen])
	if orth != BbZero && attacks.RookAttacks(sq, occupied)&orth != BbZero {
		return true
	}
	return false
}

// sideToMoveAttacked reports whether the side-to-move's king is currently
// attacked by the opponent, recomputed from scratch. Cached into
// Position.inCheck after every DoMove/UndoMove.
func (p *Position) sideToMoveAttacked() bool {
	king := p.kingSquare[p.sideToMove]
	return IsSquareAttacked(king, p.sideToMove.Flip(), p.pieceBb, p.colorBb, p.Occupied())
}

// AttacksTo returns the set of squares from which the given color attacks
// sq, over the given occupancy. SEE reaches it through AttackersTo.
func AttacksTo(sq Square, by Color, pieceBb [PkLength]Bitboard, colorBb [ColorLength]Bitboard, occupied Bitboard) Bitboard {
	enemy := colorBb[by]
	var att Bitboard
	att |= attacks.KnightAttacks(sq) & pieceBb[Knight] & enemy
	att |= attacks.KingAttacks(sq) & pieceBb[King] & enemy
	att |= attacks.PawnAttacks(by.Flip(), sq) & pieceBb[Pawn] & enemy
	att |= attacks.BishopAttacks(sq, occupied) & (pieceBb[Bishop] | pieceBb[Queen]) & enemy
	att |= attacks.RookAttacks(sq, occupied) & (pieceBb[Rook] | pieceBb[Queen]) & enemy
	return att
}

// AttackersTo returns attackers of either color to sq over the given
// occupancy, used by SEE's least-valuable-attacker iteration.
func AttackersTo(sq Square, pieceBb [PkLength]Bitboard, colorBb [ColorLength]Bitboard, occupied Bitboard) Bitboard {
	return AttacksTo(sq, White, pieceBb, colorBb, occupied) | AttacksTo(sq, Black, pieceBb, colorBb, occupied)
}

// AttacksTo returns the set of squares from which by attacks sq on this
// position's current occupancy, for callers outside the package (such as
// the movegen legality test) that only have a *Position in hand.
func (p *Position) AttacksTo(sq Square, by Color, occupied Bitboard) Bitboard {
	return AttacksTo(sq, by, p.pieceBb, p.colorBb, occupied)
}

// AttackersTo returns attackers of either color to sq over occupied,
// recomputed against this position's piece placement.
func (p *Position) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	return AttackersTo(sq, p.pieceBb, p.colorBb, occupied)
}
