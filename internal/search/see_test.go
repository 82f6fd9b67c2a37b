package search

import (
	"testing"

	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/stretchr/testify/require"
)

// seeOf is a small test helper: parse a UCI move against the position's own
// legal-move output (never trust the string to carry the right flag) and
// run it through see.
func seeOf(t *testing.T, fen, uci string) int {
	t.Helper()
	pos, err := position.NewPositionFromFEN(fen)
	require.NoError(t, err)
	m, ok := movegen.MoveFromUCI(pos, uci)
	require.True(t, ok, "move %q not legal in %q", uci, fen)
	return int(see(pos, m))
}

// These three positions trade a single piece with no follow-up attacker
// beyond the one named, so SEE reduces to a short, hand-checkable gain
// chain. Knight is valued 300 here (types.PieceValue), not the 320 some
// engines use, so the pawn-takes-knight result below is 300, not the 320
// one might expect from a different table.
func TestSeeKnightTradeEven(t *testing.T) {
	// White knight takes the knight on f6; only the black king can
	// recapture, for an even knight-for-knight trade.
	require.Equal(t, 0, seeOf(t, "8/4k3/5n2/8/4N3/8/8/4K3 w - - 0 1", "e4f6"))
}

func TestSeePawnTakesUndefendedKnight(t *testing.T) {
	// No black piece can recapture on f5, so the pawn simply wins the
	// knight outright.
	require.Equal(t, 300, seeOf(t, "4k3/8/8/5n2/4P3/8/8/4K3 w - - 0 1", "e4f5"))
}

func TestSeeQueenTakesDefendedBishop(t *testing.T) {
	// The bishop on d5 is defended by the pawn on e6; trading queen for
	// bishop then losing the queen nets queen-minus-bishop for White.
	require.Equal(t, -570, seeOf(t, "4k3/8/4p3/3b4/4Q3/8/8/4K3 w - - 0 1", "e4d5"))
}
