// Package attacks holds the process-wide, read-only precomputed tables:
// blank-board attack masks for knights, kings and pawns, between/align ray
// tables, a king-distance table, magic bitboards for the sliding pieces,
// and the Zobrist key tables. Everything here is built once by package
// init and never mutated afterwards, so it is safe to share across any
// number of readers.
package attacks

import (
	. "github.com/kestrel-chess/kestrel/internal/types"
)

var (
	knightAttacks [SqLength]Bitboard
	kingAttacks   [SqLength]Bitboard
	// pawnAttacks[color][square] is the set of squares a pawn of that
	// color standing on square captures to.
	pawnAttacks [ColorLength][SqLength]Bitboard
	// pawnPushes[color][square] holds the single (index 0) and, from the
	// starting rank, double (index 1) quiet push target, BbZero if none.
	pawnPushes [ColorLength][SqLength][2]Bitboard

	// between[a][b] is the set of squares from a (exclusive) toward b, up
	// to and including b, when they share a rank, file or diagonal; BbZero
	// otherwise (the "ray" table).
	between [SqLength][SqLength]Bitboard
	// align[a][b] is the full line through a and b in both directions,
	// BbZero if a and b are not aligned.
	align [SqLength][SqLength]Bitboard

	// passedPawnMask[color][square] is the set of enemy-pawn squares that
	// would block a pawn of that color on that square from being passed.
	passedPawnMask [ColorLength][SqLength]Bitboard

	kingDistanceTbl [SqLength][SqLength]int
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

func init() {
	initLeaperAttacks()
	initPawnAttacks()
	initRayTables()
	initPassedPawnMasks()
	initKingDistance()
	initMagics()
	initZobrist()
}

func initLeaperAttacks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())
		var kn, kg Bitboard
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				kn.PushSquare(SquareOf(File(nf), Rank(nr)))
			}
		}
		for _, d := range kingDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				kg.PushSquare(SquareOf(File(nf), Rank(nr)))
			}
		}
		knightAttacks[sq] = kn
		kingAttacks[sq] = kg
	}
}

func initPawnAttacks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())
		// White captures northeast/northwest.
		var wa, ba Bitboard
		if r+1 < 8 {
			if f-1 >= 0 {
				wa.PushSquare(SquareOf(File(f-1), Rank(r+1)))
			}
			if f+1 < 8 {
				wa.PushSquare(SquareOf(File(f+1), Rank(r+1)))
			}
		}
		if r-1 >= 0 {
			if f-1 >= 0 {
				ba.PushSquare(SquareOf(File(f-1), Rank(r-1)))
			}
			if f+1 < 8 {
				ba.PushSquare(SquareOf(File(f+1), Rank(r-1)))
			}
		}
		pawnAttacks[White][sq] = wa
		pawnAttacks[Black][sq] = ba

		var wp, bp [2]Bitboard
		if r+1 < 8 {
			wp[0].PushSquare(SquareOf(File(f), Rank(r+1)))
			if r == int(Rank2) && r+2 < 8 {
				wp[1].PushSquare(SquareOf(File(f), Rank(r+2)))
			}
		}
		if r-1 >= 0 {
			bp[0].PushSquare(SquareOf(File(f), Rank(r-1)))
			if r == int(Rank7) && r-2 >= 0 {
				bp[1].PushSquare(SquareOf(File(f), Rank(r-2)))
			}
		}
		pawnPushes[White][sq] = wp
		pawnPushes[Black][sq] = bp
	}
}

// KnightAttacks returns the blank-board knight attack set from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the blank-board king attack set from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the capture target squares of a pawn of color c on
// sq, ignoring whether those squares are occupied.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }

// PawnSinglePush returns the single quiet push target of a pawn of color c
// on sq, ignoring blockers.
func PawnSinglePush(c Color, sq Square) Bitboard { return pawnPushes[c][sq][0] }

// PawnDoublePush returns the double push target (only non-zero from the
// starting rank) of a pawn of color c on sq, ignoring blockers.
func PawnDoublePush(c Color, sq Square) Bitboard { return pawnPushes[c][sq][1] }

// Between returns the squares from a (exclusive) toward b, including b
// itself, when aligned on a rank, file or diagonal; BbZero otherwise.
func Between(a, b Square) Bitboard { return between[a][b] }

// Align returns the full line through a and b, both directions, BbZero if
// not aligned.
func Align(a, b Square) Bitboard { return align[a][b] }

// PassedPawnMask returns the enemy-pawn squares that would stop a pawn of
// color c on sq from being passed.
func PassedPawnMask(c Color, sq Square) Bitboard { return passedPawnMask[c][sq] }

// KingDistance returns the precomputed Chebyshev distance between a and b.
func KingDistance(a, b Square) int { return kingDistanceTbl[a][b] }

func initKingDistance() {
	for a := SqA1; a <= SqH8; a++ {
		for b := SqA1; b <= SqH8; b++ {
			kingDistanceTbl[a][b] = SquareDistance(a, b)
		}
	}
}

// slidingRayDirs are the 4 diagonal and 4 orthogonal directions, split so
// magic generation can reuse them per piece kind.
var bishopDirs = [4]Direction{Northeast, Southeast, Southwest, Northwest}
var rookDirs = [4]Direction{North, East, South, West}

// rayFillWithBlockers walks from sq in each of the 4 given directions,
// stopping (inclusive) at the first occupied square. This is the
// non-magic reference implementation used both to build the between/align
// tables and, in tests, to cross-check the magic attack tables.
func rayFillWithBlockers(sq Square, occupied Bitboard, dirs [4]Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		s := sq
		for {
			next := s.To(d)
			if next == SqNone {
				break
			}
			attacks.PushSquare(next)
			if occupied.Has(next) {
				break
			}
			s = next
		}
	}
	return attacks
}

func initRayTables() {
	dirsAll := [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}
	for sq := SqA1; sq <= SqH8; sq++ {
		for _, d := range dirsAll {
			s := sq
			var line []Square
			for {
				next := s.To(d)
				if next == SqNone {
					break
				}
				line = append(line, next)
				s = next
			}
			// between[sq][x] = all squares from sq (exclusive) up to and
			// including x, for every x reachable along this ray: strictly
			// from a toward b, up to and including b.
			for i, x := range line {
				var bb Bitboard
				for j := 0; j <= i; j++ {
					bb.PushSquare(line[j])
				}
				between[sq][x] = bb
				// align[sq][x] is the full line in both directions through
				// sq and x.
				opp := oppositeDirection(d)
				var full Bitboard
				full.PushSquare(sq)
				for _, y := range line {
					full.PushSquare(y)
				}
				t := sq
				for {
					prev := t.To(opp)
					if prev == SqNone {
						break
					}
					full.PushSquare(prev)
					t = prev
				}
				align[sq][x] = full
			}
		}
	}
}

func oppositeDirection(d Direction) Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	}
	return d
}

func initPassedPawnMasks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())
		for _, c := range [2]Color{White, Black} {
			var mask Bitboard
			step := 1
			if c == Black {
				step = -1
			}
			rr := r + step
			for rr >= 0 && rr < 8 {
				for _, ff := range [3]int{f - 1, f, f + 1} {
					if ff >= 0 && ff < 8 {
						mask.PushSquare(SquareOf(File(ff), Rank(rr)))
					}
				}
				rr += step
			}
			passedPawnMask[c][sq] = mask
		}
	}
}
