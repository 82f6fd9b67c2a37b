package openingbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-chess/kestrel/internal/position"
)

func writeBookFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestInitializeSimpleFormatBuildsGraph(t *testing.T) {
	path := writeBookFile(t, "e2e4 e7e5 g1f3\nd2d4 d7d5\n")
	b := New()
	require.NoError(t, b.Initialize(path, Simple, false, false))
	require.Equal(t, 6, b.NumberOfEntries())

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.ZobristKey())
	require.True(t, ok)
	require.Equal(t, 2, entry.Counter)
	require.Len(t, entry.Moves, 2)
}

func TestInitializeSanFormatBuildsGraph(t *testing.T) {
	path := writeBookFile(t, "1.e4 e5 2.Nf3 Nc6\n")
	b := New()
	require.NoError(t, b.Initialize(path, San, false, false))

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.ZobristKey())
	require.True(t, ok)
	require.Len(t, entry.Moves, 1)
	require.Equal(t, "e2e4", entry.Moves[0].Move.StringUci())
}

func TestProbeReturnsOnlyKnownMoves(t *testing.T) {
	path := writeBookFile(t, "e2e4 e7e5\n")
	b := New()
	require.NoError(t, b.Initialize(path, Simple, false, false))

	root := position.NewPosition()
	m, ok := b.Probe(root)
	require.True(t, ok)
	require.Equal(t, "e2e4", m.StringUci())

	root.DoMove(m)
	m2, ok := b.Probe(root)
	require.True(t, ok)
	require.Equal(t, "e7e5", m2.StringUci())
}

func TestProbeMissReturnsFalse(t *testing.T) {
	b := New()
	require.False(t, b.loaded)
	pos := position.NewPosition()
	_, ok := b.Probe(pos)
	require.False(t, ok)
}

func TestProbeWeightsByObservedFrequency(t *testing.T) {
	path := writeBookFile(t, "d2d4 d7d5\n"+
		"e2e4 e7e5\n"+
		"e2e4 c7c5\n"+
		"e2e4 e7e6\n")
	b := New()
	require.NoError(t, b.Initialize(path, Simple, false, false))

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.ZobristKey())
	require.True(t, ok)
	require.Len(t, entry.Moves, 2)

	counts := map[string]int{}
	for _, s := range entry.Moves {
		counts[s.Move.StringUci()] = s.Count
	}
	require.Equal(t, 1, counts["d2d4"])
	require.Equal(t, 3, counts["e2e4"])

	picks := map[string]int{}
	for i := 0; i < 200; i++ {
		m, ok := b.Probe(root)
		require.True(t, ok)
		picks[m.StringUci()]++
	}
	require.Greater(t, picks["e2e4"], picks["d2d4"], "the 3x-more-frequent move should be drawn more often")
}

func TestCacheRoundTrip(t *testing.T) {
	path := writeBookFile(t, "e2e4 e7e5 g1f3\n")
	b := New()
	require.NoError(t, b.Initialize(path, Simple, true, false))

	b2 := New()
	require.NoError(t, b2.Initialize(path, Simple, true, false))
	require.Equal(t, b.NumberOfEntries(), b2.NumberOfEntries())
}
