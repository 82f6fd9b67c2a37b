package attacks

import (
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Zobrist key tables. ZPiece is indexed by the 12-value Piece encoding
// directly; ZCastle by the 4-bit CastlingRights mask; ZEpFile by file
// 0..7.
var (
	ZPiece [PieceLength][SqLength]Key
	ZCastle [16]Key
	ZEpFile [8]Key
	ZSide   Key
)

// Key is a 64-bit Zobrist fingerprint, used both as the running incremental
// position hash and as the transposition-table index.
type Key uint64

func initZobrist() {
	rng := newPrng(0x9E3779B97F4A7C15)
	for p := Piece(0); p < PieceLength; p++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			ZPiece[p][sq] = Key(rng.next())
		}
	}
	for i := range ZCastle {
		ZCastle[i] = Key(rng.next())
	}
	for i := range ZEpFile {
		ZEpFile[i] = Key(rng.next())
	}
	ZSide = Key(rng.next())
}
