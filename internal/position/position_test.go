package position

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/kestrel-chess/kestrel/internal/types"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	for _, fen := range fens {
		p, err := NewPositionFromFEN(fen)
		require.NoError(t, err, fen)
		require.Equal(t, fen, p.ToFEN(), "round-trip mismatch for %s", fen)
	}
}

func TestBadFENRejected(t *testing.T) {
	_, err := NewPositionFromFEN("not a fen")
	require.ErrorIs(t, err, ErrBadFEN)
}

func TestMakeUnmakeSymmetry(t *testing.T) {
	p, err := NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	before := p.Clone()

	moves := []Move{
		NewMove(SqE1, SqG1, Castle),
		NewMove(SqD5, SqD6, Quiet),
		NewMove(SqA2, SqA4, DoublePush),
	}
	for _, m := range moves {
		p.DoMove(m)
		p.UndoMove()
		require.True(t, positionsEqual(before, p), "position changed after make/unmake of %s", m.StringUci())
	}
}

func TestMakeUnmakeSymmetryPromotion(t *testing.T) {
	p, err := NewPositionFromFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	require.NoError(t, err)
	before := p.Clone()

	m := NewMove(SqD7, SqC8, PromoQueen)
	p.DoMove(m)
	p.UndoMove()
	require.True(t, positionsEqual(before, p), "position changed after make/unmake of capturing promotion")
}

func TestZobristConsistencyAfterMoves(t *testing.T) {
	p := NewPosition()
	line := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}
	for _, uci := range line {
		from, to, promo := mustParseUCI(t, uci)
		m := findLegalMove(t, p, from, to, promo)
		p.DoMove(m)
		require.Equal(t, p.computeZobristFromScratch(), p.zobristKey, "zobrist drifted after %s", uci)
	}
}

// positionsEqual compares every field Clone copies; used instead of
// reflect.DeepEqual directly on *Position so a nil-vs-empty history slice
// (both "no irreversible state pushed") doesn't register as a spurious
// difference.
func positionsEqual(a, b *Position) bool {
	if a.board != b.board || a.colorBb != b.colorBb || a.pieceBb != b.pieceBb {
		return false
	}
	if a.sideToMove != b.sideToMove || a.castlingRights != b.castlingRights {
		return false
	}
	if a.epSquare != b.epSquare || a.halfMoveClock != b.halfMoveClock || a.fullMoveNumber != b.fullMoveNumber {
		return false
	}
	if a.kingSquare != b.kingSquare || a.zobristKey != b.zobristKey || a.inCheck != b.inCheck {
		return false
	}
	return len(a.history) == len(b.history) && len(a.moveStack) == len(b.moveStack) &&
		reflect.DeepEqual(a.repetition, b.repetition)
}

func mustParseUCI(t *testing.T, s string) (Square, Square, PieceKind) {
	t.Helper()
	from, ok := SquareFromString(s[0:2])
	require.True(t, ok)
	to, ok := SquareFromString(s[2:4])
	require.True(t, ok)
	return from, to, PkNone
}

func findLegalMove(t *testing.T, p *Position, from, to Square, _ PieceKind) Move {
	t.Helper()
	// position_test.go cannot import movegen (it would create an import
	// cycle back into position), so it hand-builds the one move flag it
	// needs per test line: every move in TestZobristConsistencyAfterMoves
	// is a plain non-capturing piece move or pawn double-push.
	flag := Quiet
	if from.RankOf() == Rank2 && to.RankOf() == Rank4 || from.RankOf() == Rank7 && to.RankOf() == Rank5 {
		flag = DoublePush
	}
	_ = p
	return NewMove(from, to, flag)
}
