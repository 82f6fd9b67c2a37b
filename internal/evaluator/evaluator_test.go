package evaluator_test

import (
	"strings"
	"testing"

	"github.com/kestrel-chess/kestrel/internal/evaluator"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/stretchr/testify/require"
)

// mirrorFEN swaps the board vertically and inverts piece colors and side
// to move, producing the FEN of the color-reversed mirror position used
// by evaluator-symmetry property.
func mirrorFEN(t *testing.T, fen string) string {
	t.Helper()
	fields := strings.Fields(fen)
	require.GreaterOrEqual(t, len(fields), 4)

	ranks := strings.Split(fields[0], "/")
	require.Len(t, ranks, 8)
	mirrored := make([]string, 8)
	for i, r := range ranks {
		mirrored[7-i] = swapCase(r)
	}
	placement := strings.Join(mirrored, "/")

	side := "b"
	if fields[1] == "b" {
		side = "w"
	}

	castling := "-"
	if fields[2] != "-" {
		castling = swapCase(fields[2])
		castling = reorderCastling(castling)
	}

	ep := "-"
	if len(fields) > 3 && fields[3] != "-" {
		ep = flipRank(fields[3])
	}

	out := []string{placement, side, castling, ep, "0", "1"}
	return strings.Join(out, " ")
}

func swapCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 32)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 32)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func reorderCastling(s string) string {
	has := func(c byte) bool { return strings.IndexByte(s, c) >= 0 }
	var b strings.Builder
	for _, c := range []byte{'K', 'Q', 'k', 'q'} {
		if has(c) {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func flipRank(sq string) string {
	if len(sq) != 2 {
		return sq
	}
	rank := sq[1]
	flipped := byte('1' + ('8' - rank))
	return string(sq[0]) + string(flipped)
}

func TestEvaluatorSymmetry(t *testing.T) {
	fens := []string{
		position.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}

	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)

	for _, fen := range fens {
		pos, err := position.NewPositionFromFEN(fen)
		require.NoError(t, err)
		mirrored, err := position.NewPositionFromFEN(mirrorFEN(t, fen))
		require.NoError(t, err)

		v1 := e.Evaluate(pos)
		v2 := e.Evaluate(mirrored)
		require.InDeltaf(t, float64(v1), float64(-v2), 2, "fen=%q", fen)
	}
}

func TestEvaluatorDrawOnInsufficientMaterial(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	pos, err := position.NewPositionFromFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 0, int(e.Evaluate(pos)))
}
