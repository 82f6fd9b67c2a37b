// Package movegen implements the legal move generator: an opponent-attack
// map built with the own king removed from the board, single/double check
// detection, pin-ray restriction, and a quiescence filter, writing into a
// caller-owned moveslice.MoveList (capacity 256, no heap allocation per
// call).
//
// Shaped like a small object exposing Generate/HasAnyLegal entry points
// over a reusable buffer, but computing the attack-map-and-pin-ray
// algorithm directly rather than the simpler pseudo-legal-then-filter-by-
// DoMove approach some engines use.
package movegen

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Generator produces legal moves for a position. It carries no state
// between calls; every Generate/HasAnyLegal call resets its scratch data
// from scratch, so a single Generator may be reused (and should be, to
// avoid repeated construction) across an entire search.
type Generator struct{}

// NewGenerator returns a ready-to-use Generator.
func NewGenerator() *Generator { return &Generator{} }

// pin describes one pinned own piece and the line it may still move
// along (the pinner's line through the king).
type pin struct {
	sq   Square
	line Bitboard
}

// Generate fills out with the legal moves of the side to move. When
// quiescence is true only captures, promotions, and (if in check) check
// evasions are admitted. Returns the move count.
func (g *Generator) Generate(pos *position.Position, quiescence bool, out *moveslice.MoveList) int {
	out.Clear()
	walk(pos, quiescence, func(m Move) bool {
		out.Add(m)
		return false
	})
	return out.Len()
}

// HasAnyLegal reports whether the side to move has at least one legal
// move, short-circuiting as soon as one is produced.
func (g *Generator) HasAnyLegal(pos *position.Position) bool {
	found := false
	walk(pos, false, func(Move) bool {
		found = true
		return true
	})
	return found
}

// walk enumerates legal moves of the side to move, calling emit for each;
// emit returns true to stop enumeration early.
func walk(pos *position.Position, quiescence bool, emit func(Move) bool) {
	us := pos.SideToMove()
	them := us.Flip()
	own := pos.OccupiedBy(us)
	opp := pos.OccupiedBy(them)
	occ := own | opp
	kingSq := pos.KingSquare(us)

	enemyAttack, checkRay, doubleCheck, inCheck := attackMapAndChecks(pos, us, them, kingSq, occ)

	addPiece := func(from, to Square) bool {
		isCapture := opp.Has(to)
		if !admit(quiescence, inCheck, isCapture, false) {
			return false
		}
		return emit(NewMove(from, to, Quiet))
	}

	// King moves are always generated, check or not.
	kingDest := attacks.KingAttacks(kingSq) &^ own &^ enemyAttack
	for kingDest != BbZero {
		to := kingDest.PopLsb()
		if addPiece(kingSq, to) {
			return
		}
	}

	if doubleCheck {
		return // only the king can move out of a double check
	}

	pins := findPins(pos, us, them, kingSq, occ, own)

	// Knights.
	knights := pos.Pieces(us, Knight)
	for knights != BbZero {
		from := knights.PopLsb()
		dest := attacks.KnightAttacks(from) &^ own
		dest = restrictTo(dest, from, inCheck, checkRay, pins)
		for dest != BbZero {
			to := dest.PopLsb()
			if addPiece(from, to) {
				return
			}
		}
	}

	// Bishops, rooks, queens.
	if stopSliders(pos, us, Bishop, occ, own, inCheck, checkRay, pins, quiescence, opp, emit) {
		return
	}
	if stopSliders(pos, us, Rook, occ, own, inCheck, checkRay, pins, quiescence, opp, emit) {
		return
	}
	if stopSliders(pos, us, Queen, occ, own, inCheck, checkRay, pins, quiescence, opp, emit) {
		return
	}

	if generatePawnMoves(pos, us, them, occ, opp, kingSq, inCheck, checkRay, pins, quiescence, emit) {
		return
	}

	if !inCheck {
		generateCastling(pos, us, enemyAttack, occ, emit)
	}
}

func stopSliders(pos *position.Position, us Color, kind PieceKind, occ, own Bitboard, inCheck bool, checkRay Bitboard, pins []pin, quiescence bool, opp Bitboard, emit func(Move) bool) bool {
	pieces := pos.Pieces(us, kind)
	for pieces != BbZero {
		from := pieces.PopLsb()
		dest := attacks.SliderAttacks(kind, from, occ) &^ own
		dest = restrictTo(dest, from, inCheck, checkRay, pins)
		for dest != BbZero {
			to := dest.PopLsb()
			isCapture := opp.Has(to)
			if !admit(quiescence, inCheck, isCapture, false) {
				continue
			}
			if emit(NewMove(from, to, Quiet)) {
				return true
			}
		}
	}
	return false
}

// admit applies the quiescence filter of : always admitted
// outside quiescence; in quiescence, admitted only if in check (all
// evasions), a capture, or a promotion.
func admit(quiescence, inCheck, isCapture, isPromotion bool) bool {
	if !quiescence {
		return true
	}
	return inCheck || isCapture || isPromotion
}

// restrictTo intersects a piece's pseudo-legal destinations with the
// check-evasion ray (if in check) and its pin line (if pinned).
func restrictTo(dest Bitboard, from Square, inCheck bool, checkRay Bitboard, pins []pin) Bitboard {
	if inCheck {
		dest &= checkRay
	}
	for i := range pins {
		if pins[i].sq == from {
			dest &= pins[i].line
			break
		}
	}
	return dest
}

// attackMapAndChecks computes the union of every enemy attack (over the
// board with the own king removed, so the king cannot "hide" behind
// itself along a check ray) plus the single-check evasion ray and
// double-check flag, per step 2.
func attackMapAndChecks(pos *position.Position, us, them Color, kingSq Square, occ Bitboard) (enemyAttack, checkRay Bitboard, doubleCheck, inCheck bool) {
	occNoKing := occ &^ kingSq.Bb()
	checkers := 0
	checkRay = BbZero

	record := func(attackerSq Square, ray Bitboard) {
		checkers++
		if checkers == 1 {
			checkRay = ray
		} else {
			doubleCheck = true
		}
	}

	knights := pos.Pieces(them, Knight)
	for knights != BbZero {
		sq := knights.PopLsb()
		a := attacks.KnightAttacks(sq)
		enemyAttack |= a
		if a.Has(kingSq) {
			record(sq, sq.Bb())
		}
	}

	enemyAttack |= attacks.KingAttacks(pos.KingSquare(them))

	pawns := pos.Pieces(them, Pawn)
	for pawns != BbZero {
		sq := pawns.PopLsb()
		a := attacks.PawnAttacks(them, sq)
		enemyAttack |= a
		if a.Has(kingSq) {
			record(sq, sq.Bb())
		}
	}

	diag := pos.Pieces(them, Bishop) | pos.Pieces(them, Queen)
	for diag != BbZero {
		sq := diag.PopLsb()
		a := attacks.BishopAttacks(sq, occNoKing)
		enemyAttack |= a
		if a.Has(kingSq) {
			record(sq, attacks.Between(kingSq, sq))
		}
	}

	orth := pos.Pieces(them, Rook) | pos.Pieces(them, Queen)
	for orth != BbZero {
		sq := orth.PopLsb()
		a := attacks.RookAttacks(sq, occNoKing)
		enemyAttack |= a
		if a.Has(kingSq) {
			record(sq, attacks.Between(kingSq, sq))
		}
	}

	inCheck = checkers > 0
	if !inCheck {
		checkRay = BbAll
	}
	return
}

// findPins locates own pieces pinned against the king: an enemy slider
// aligned with the king along a line it moves on (diagonal for
// bishops/queens, rank or file for rooks/queens) with exactly one occupied
// square (an own piece) strictly between them.
func findPins(pos *position.Position, us, them Color, kingSq Square, occ, own Bitboard) []pin {
	var pins [8]pin
	n := 0

	scan := func(sliders Bitboard, lines func(Square, Bitboard) Bitboard) {
		for sliders != BbZero {
			sq := sliders.PopLsb()
			if !lines(sq, BbZero).Has(kingSq) {
				continue
			}
			between := attacks.Between(sq, kingSq) &^ kingSq.Bb()
			occupants := between & occ
			if occupants.PopCount() != 1 {
				continue
			}
			if occupants&own == BbZero {
				continue
			}
			if n < len(pins) {
				pinnedSq := occupants.Lsb()
				pins[n] = pin{sq: pinnedSq, line: attacks.Align(kingSq, pinnedSq)}
				n++
			}
		}
	}

	scan(pos.Pieces(them, Bishop)|pos.Pieces(them, Queen), attacks.BishopAttacks)
	scan(pos.Pieces(them, Rook)|pos.Pieces(them, Queen), attacks.RookAttacks)

	return pins[:n]
}
