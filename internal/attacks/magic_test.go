package attacks

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/kestrel-chess/kestrel/internal/types"
)

// subsetsOf enumerates every occupancy subset of mask via the standard
// Carry-Rippler trick, the same one initMagicsFor uses to build the
// reference table at startup.
func subsetsOf(mask Bitboard) []Bitboard {
	var subsets []Bitboard
	var b Bitboard
	for {
		subsets = append(subsets, b)
		b = (b - mask) & mask
		if b == 0 {
			break
		}
	}
	return subsets
}

func TestBishopMagicAttacksMatchRayFillForEverySubset(t *testing.T) {
	for sq := SqA1; sq <= SqH8; sq++ {
		mask := bishopMagics[sq].Mask
		for _, occ := range subsetsOf(mask) {
			want := rayFillWithBlockers(sq, occ, bishopDirs)
			got := BishopAttacks(sq, occ)
			require.Equal(t, want, got, "bishop attacks from %v with occupancy %#x", sq, uint64(occ))
		}
	}
}

func TestRookMagicAttacksMatchRayFillForEverySubset(t *testing.T) {
	for sq := SqA1; sq <= SqH8; sq++ {
		mask := rookMagics[sq].Mask
		for _, occ := range subsetsOf(mask) {
			want := rayFillWithBlockers(sq, occ, rookDirs)
			got := RookAttacks(sq, occ)
			require.Equal(t, want, got, "rook attacks from %v with occupancy %#x", sq, uint64(occ))
		}
	}
}

func TestQueenAttacksIsUnionOfBishopAndRook(t *testing.T) {
	occ := SqD4.Bb() | SqD5.Bb() | SqF4.Bb() | SqB2.Bb()
	for sq := SqA1; sq <= SqH8; sq++ {
		want := BishopAttacks(sq, occ) | RookAttacks(sq, occ)
		require.Equal(t, want, QueenAttacks(sq, occ), "queen attacks from %v", sq)
	}
}
