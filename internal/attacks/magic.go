package attacks

import (
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Magic holds the fancy-magic-bitboard data for one square: the relevant
// occupancy mask, the magic multiplier, the shift, and a slice into the
// flat per-piece attack table. The magic numbers are found by a
// from-scratch search at init time (adapted from Stockfish's magic init)
// rather than committed as constants, so magic_test.go has something
// concrete to verify against.
type Magic struct {
	Mask    Bitboard
	Number  Bitboard
	Attacks []Bitboard
	Shift   uint
}

func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Number
	occ >>= m.Shift
	return uint(occ)
}

var (
	bishopMagics [SqLength]Magic
	rookMagics   [SqLength]Magic
)

// BishopAttacks returns the bishop attack set from sq given the full board
// occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.Attacks[m.index(occupied)]
}

// RookAttacks returns the rook attack set from sq given the full board
// occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.Attacks[m.index(occupied)]
}

// QueenAttacks returns the union of bishop and rook attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// SliderAttacks dispatches on piece kind (Bishop, Rook or Queen); any other
// kind returns BbZero.
func SliderAttacks(pk PieceKind, sq Square, occupied Bitboard) Bitboard {
	switch pk {
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	}
	return BbZero
}

func initMagics() {
	initMagicsFor(&bishopMagics, bishopDirs)
	initMagicsFor(&rookMagics, rookDirs)
}

// prng is the xorshift64star generator from Stockfish, used only to search
// for magic multipliers at startup; not used anywhere in the hot path.
type prng struct{ s uint64 }

func newPrng(seed uint64) *prng { return &prng{s: seed} }

func (r *prng) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparse returns a random value with roughly 1/8th of its bits set, which
// converges faster on a valid magic than a uniform random 64-bit value.
func (r *prng) sparse() uint64 {
	return r.next() & r.next() & r.next()
}

var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

func initMagicsFor(magics *[SqLength]Magic, dirs [4]Direction) {
	var table []Bitboard
	offsets := make([]int, SqLength+1)
	// First pass: compute masks and table sizes so the table can be
	// allocated once.
	masks := [SqLength]Bitboard{}
	for sq := SqA1; sq <= SqH8; sq++ {
		edges := edgesNotOnSquareLines(sq)
		masks[sq] = rayFillWithBlockers(sq, BbZero, dirs) &^ edges
		offsets[sq+1] = offsets[sq] + (1 << masks[sq].PopCount())
	}
	table = make([]Bitboard, offsets[SqLength])

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		m := &magics[sq]
		m.Mask = masks[sq]
		m.Shift = uint(64 - m.Mask.PopCount())
		m.Attacks = table[offsets[sq]:offsets[sq+1]]

		size := 0
		var b Bitboard
		for {
			occupancy[size] = b
			reference[size] = rayFillWithBlockers(sq, b, dirs)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}

		rng := newPrng(magicSeeds[sq.RankOf()])
		for i := 0; i < size; {
			// Pick candidate magics until one maps a mostly-empty board to
			// a sparse high byte, which converges to a valid magic faster.
			for {
				m.Number = Bitboard(rng.sparse())
				if ((m.Number * m.Mask) >> 56).PopCount() < 6 {
					break
				}
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// edgesNotOnSquareLines returns the board-edge squares that are not on the
// same rank or file as sq; these are excluded from the relevant-occupancy
// mask because a blocker there never changes the attack set (the ray
// already stops at the edge).
func edgesNotOnSquareLines(sq Square) Bitboard {
	edges := ((Rank1Mask | Rank8Mask) &^ sq.RankOf().Bb()) | ((FileAMask | FileHMask) &^ sq.FileOf().Bb())
	return edges
}
