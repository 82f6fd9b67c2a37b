package movegen_test

import (
	"testing"

	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/stretchr/testify/require"
)

// TestGeneratedMovesLeaveMoverNotInCheck is "Legality"
// property: every move the generator returns must leave the side that
// just moved with its king safe, checked directly against DoMove/UndoMove
// rather than trusted from the generator's own pin/check bookkeeping.
func TestGeneratedMovesLeaveMoverNotInCheck(t *testing.T) {
	fens := []string{
		position.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
	}
	gen := movegen.NewGenerator()
	for _, fen := range fens {
		pos, err := position.NewPositionFromFEN(fen)
		require.NoError(t, err, fen)

		var list moveslice.MoveList
		gen.Generate(pos, false, &list)
		mover := pos.SideToMove()
		for i := 0; i < list.Len(); i++ {
			m := list.At(i)
			pos.DoMove(m)
			attackers := pos.AttacksTo(pos.KingSquare(mover), mover.Flip(), pos.Occupied())
			require.Zero(t, attackers, "move %s from %q leaves %v's king in check", m.StringUci(), fen, mover)
			pos.UndoMove()
		}
	}
}

// TestHasAnyLegalAgreesWithGenerate cross-checks the short-circuit probe
// used by draw/mate detection against the full generator.
func TestHasAnyLegalAgreesWithGenerate(t *testing.T) {
	fens := []string{
		position.StartFEN,
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 b - - 0 1",
	}
	gen := movegen.NewGenerator()
	for _, fen := range fens {
		pos, err := position.NewPositionFromFEN(fen)
		require.NoError(t, err, fen)

		var list moveslice.MoveList
		gen.Generate(pos, false, &list)
		require.Equal(t, list.Len() > 0, gen.HasAnyLegal(pos), fen)
	}
}
