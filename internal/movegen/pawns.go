package movegen

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

var promotionFlags = [4]MoveFlag{PromoQueen, PromoKnight, PromoRook, PromoBishop}

// generatePawnMoves emits pushes, double pushes, captures, promotions and
// en passant for the side to move's pawns, returning true if emit
// requested an early stop.
func generatePawnMoves(pos *position.Position, us, them Color, occ, opp Bitboard, kingSq Square, inCheck bool, checkRay Bitboard, pins []pin, quiescence bool, emit func(Move) bool) bool {
	lastRank := Rank8
	startRank := Rank2
	if us == Black {
		lastRank = Rank1
		startRank = Rank7
	}

	pawns := pos.Pieces(us, Pawn)
	for pawns != BbZero {
		from := pawns.PopLsb()
		pinLine := BbAll
		for i := range pins {
			if pins[i].sq == from {
				pinLine = pins[i].line
				break
			}
		}

		// Single and double pushes.
		single := attacks.PawnSinglePush(us, from) &^ occ
		if single != BbZero {
			restricted := single
			if inCheck {
				restricted &= checkRay
			}
			restricted &= pinLine
			if restricted != BbZero {
				to := restricted.Lsb()
				if emitPawnMove(from, to, lastRank, quiescence, inCheck, false, emit) {
					return true
				}
			}
			if from.RankOf() == startRank && admit(quiescence, inCheck, false, false) {
				double := attacks.PawnDoublePush(us, from) &^ occ
				if inCheck {
					double &= checkRay
				}
				double &= pinLine
				if double != BbZero {
					if emit(NewMove(from, double.Lsb(), DoublePush)) {
						return true
					}
				}
			}
		}

		// Captures (including promotions by capture).
		captures := attacks.PawnAttacks(us, from) & opp
		if inCheck {
			captures &= checkRay
		}
		captures &= pinLine
		for captures != BbZero {
			to := captures.PopLsb()
			if emitPawnMove(from, to, lastRank, quiescence, inCheck, true, emit) {
				return true
			}
		}

		// En passant: admitted as a capture, and legal under check only if
		// it captures the checking pawn or blocks a sliding check along
		// the destination square (it can never resolve check by a king
		// move, so the ordinary checkRay test almost works, except that
		// the captured pawn sits one rank off the destination square, so
		// "captures the checker" needs its own test).
		ep := pos.EnPassantSquare()
		if ep != SqNone && attacks.PawnAttacks(us, from).Has(ep) && admit(quiescence, inCheck, true, false) {
			capturedSq := checkerPawnSquare(pos, us, ep)
			legalUnderCheck := !inCheck || checkRay.Has(ep) || (checkRay.PopCount() == 1 && checkRay.Lsb() == capturedSq)
			if legalUnderCheck && pinLine.Has(ep) && legalEnPassant(pos, us, them, from, ep, kingSq, occ) {
				if emit(NewMove(from, ep, EnPassant)) {
					return true
				}
			}
		}
	}
	return false
}

// checkerPawnSquare returns the square of the pawn captured by an en
// passant move (one rank behind the ep target square).
func checkerPawnSquare(pos *position.Position, us Color, ep Square) Square {
	if us == White {
		return ep.To(South)
	}
	return ep.To(North)
}

func emitPawnMove(from, to Square, lastRank Rank, quiescence, inCheck, isCapture bool, emit func(Move) bool) bool {
	if to.RankOf() == lastRank {
		if !admit(quiescence, inCheck, isCapture, true) {
			return false
		}
		for _, flag := range promotionFlags {
			if emit(NewMove(from, to, flag)) {
				return true
			}
		}
		return false
	}
	if !admit(quiescence, inCheck, isCapture, false) {
		return false
	}
	return emit(NewMove(from, to, Quiet))
}

// legalEnPassant implements en-passant pin test: recompute
// occupancy with both the moving pawn and the captured pawn removed (and
// the destination added), then check whether an enemy rook or queen on
// the king's rank then attacks the king. This catches the case where two
// pawns disappearing from the same rank in one move exposes the king to a
// horizontal pin that ordinary per-piece pin detection never considers.
func legalEnPassant(pos *position.Position, us, them Color, from, ep, kingSq Square, occ Bitboard) bool {
	capturedSq := checkerPawnSquare(pos, us, ep)
	occAfter := occ
	occAfter &^= from.Bb()
	occAfter &^= capturedSq.Bb()
	occAfter |= ep.Bb()

	orthSliders := pos.Pieces(them, Rook) | pos.Pieces(them, Queen)
	if orthSliders == BbZero {
		return true
	}
	return attacks.RookAttacks(kingSq, occAfter)&orthSliders == BbZero
}
