package search

import (
	"testing"
	"time"

	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/evaluator"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/stretchr/testify/require"
)

func newTestSearch(t *testing.T) *Search {
	t.Helper()
	config.Settings.Search.UseBook = false
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	return NewSearch(e)
}

func TestFindsMateInOne(t *testing.T) {
	s := newTestSearch(t)
	pos, err := position.NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	result := s.StartSearch(pos, Limits{Depth: 3})
	require.Equal(t, "a1a8", result.BestMove.StringUci())
	require.True(t, IsMateScore(result.Score))
}

func TestFindsHangingQueen(t *testing.T) {
	s := newTestSearch(t)
	// White queen can capture the undefended black queen on d8.
	pos, err := position.NewPositionFromFEN("3q1k2/8/8/8/8/8/8/3Q1K2 w - - 0 1")
	require.NoError(t, err)

	result := s.StartSearch(pos, Limits{Depth: 4})
	require.Equal(t, "d1d8", result.BestMove.StringUci())
}

func TestStopFlagAbortsPromptly(t *testing.T) {
	s := newTestSearch(t)
	pos := position.NewPosition()

	done := make(chan Result, 1)
	go func() {
		done <- s.StartSearch(pos, Limits{Depth: 64})
	}()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		require.True(t, result.BestMove.IsValid())
	case <-time.After(5 * time.Second):
		t.Fatal("search did not honor Stop within timeout")
	}
}

func TestMoveTimeLimitReturnsAMove(t *testing.T) {
	s := newTestSearch(t)
	pos := position.NewPosition()
	result := s.StartSearch(pos, Limits{MoveTime: 100 * time.Millisecond})
	require.True(t, result.BestMove.IsValid())
}
