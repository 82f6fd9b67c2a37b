package movegen_test

import (
	"testing"

	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/stretchr/testify/require"
)

func perft(t *testing.T, fen string, expect map[int]uint64) {
	t.Helper()
	pos, err := position.NewPositionFromFEN(fen)
	require.NoError(t, err)
	for depth, want := range expect {
		got := movegen.Perft(pos, depth)
		require.Equalf(t, want, got, "fen=%q depth=%d", fen, depth)
	}
}

func TestPerftStartpos(t *testing.T) {
	perft(t, position.StartFEN, map[int]uint64{
		1: 20,
		2: 400,
		3: 8902,
		4: 197281,
		5: 4865609,
	})
}

func TestPerftKiwipete(t *testing.T) {
	perft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", map[int]uint64{
		1: 48,
		2: 2039,
		3: 97862,
		4: 4085603,
	})
}

func TestPerftEnPassantEdge(t *testing.T) {
	perft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", map[int]uint64{
		1: 14,
		2: 191,
		3: 2812,
		4: 43238,
	})
}

func TestPerftPromotionsCastling(t *testing.T) {
	perft(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", map[int]uint64{
		2: 1486,
	})
}

func TestMateDetection(t *testing.T) {
	pos, err := position.NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	m, ok := movegen.MoveFromUCI(pos, "a1a8")
	require.True(t, ok, "Ra8 should be a legal move")
	pos.DoMove(m)

	g := movegen.NewGenerator()
	var list moveslice.MoveList
	count := g.Generate(pos, false, &list)
	require.Equal(t, 0, count, "black should have no legal moves after Ra8#")
	require.True(t, pos.IsCheck(), "black king should be in check after Ra8#")
}
