package uci

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-chess/kestrel/internal/config"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

func init() {
	config.Setup()
	config.Settings.Search.UseBook = false
}

func TestUciCommandAnnouncesOptionsAndOk(t *testing.T) {
	h := NewHandler()
	result := h.Command("uci")
	require.Contains(t, result, "id name Kestrel")
	require.Contains(t, result, "option name Hash")
	require.Contains(t, result, "uciok")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	h := NewHandler()
	require.Contains(t, h.Command("isready"), "readyok")
}

func TestPositionStartposThenMoves(t *testing.T) {
	h := NewHandler()
	h.Command("position startpos moves e2e4 e7e5")
	e4, ok := SquareFromString("e4")
	require.True(t, ok)
	require.Equal(t, WhitePawn, h.pos.PieceOn(e4))
}

func TestPositionFenIsParsed(t *testing.T) {
	h := NewHandler()
	h.Command("position fen 8/8/8/8/8/8/8/K6k w - - 0 1")
	require.Equal(t, "8/8/8/8/8/8/8/K6k w - - 0 1", h.pos.ToFEN())
}

func TestGoDepthReturnsImmediately(t *testing.T) {
	h := NewHandler()
	h.Command("position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	out := h.Command("go depth 3")
	require.Empty(t, strings.TrimSpace(out)) // go returns immediately; bestmove is async

	deadline := time.Now().Add(5 * time.Second)
	for h.searching.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoopStopsOnQuit(t *testing.T) {
	h := NewHandler()
	h.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.Loop()
	require.Contains(t, buf.String(), "uciok")
}

func TestSetOptionHash(t *testing.T) {
	h := NewHandler()
	h.Command("setoption name Hash value 128")
	require.Equal(t, 128, config.Settings.Search.TTSizeMB)
}
