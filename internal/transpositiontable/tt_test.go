package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/kestrel-chess/kestrel/internal/types"
)

func TestResizePowerOfTwoEntryCount(t *testing.T) {
	tb := New(1)
	require.True(t, len(tb.data) > 0)
	require.Equal(t, uint64(len(tb.data))-1, tb.mask, "mask must be entries-1 for a power-of-two table")
	require.Equal(t, uint64(0), tb.Len())
}

func TestResizeZeroDisablesTable(t *testing.T) {
	tb := New(0)
	require.Equal(t, 0, len(tb.data))
	tb.Store(Key(1), MoveNone, 10, 10, 4, BoundExact)
	require.Nil(t, tb.Probe(Key(1)))
}

func TestResizeAboveMaxIsClamped(t *testing.T) {
	tb := New(MaxSizeInMB + 1)
	require.LessOrEqual(t, uint64(len(tb.data))*EntrySize, uint64(MaxSizeInMB)*1024*1024)
}

func TestStoreThenProbeHitsOnFullKeyMatch(t *testing.T) {
	tb := New(1)
	key := Key(0xABCD1234)
	tb.Store(key, NewMove(SqE2, SqE4, DoublePush), 25, 30, 6, BoundExact)

	e := tb.Probe(key)
	require.NotNil(t, e)
	require.Equal(t, key, e.Key())
	require.Equal(t, NewMove(SqE2, SqE4, DoublePush), e.Move())
	require.Equal(t, Value(25), e.Value())
	require.Equal(t, Value(30), e.Eval())
	require.Equal(t, 6, e.Horizon())
	require.Equal(t, BoundExact, e.Bound())
	require.Equal(t, uint64(1), tb.Len())
}

func TestProbeMissOnDifferentKeyInSameSlot(t *testing.T) {
	tb := New(1)
	a := Key(1)
	b := a + Key(len(tb.data)) // same index, different full key

	tb.Store(a, MoveNone, 1, 1, 1, BoundExact)
	require.Nil(t, tb.Probe(b))
}

func TestStoreKeepsDeeperEntryOnCollision(t *testing.T) {
	tb := New(1)
	a := Key(1)
	b := a + Key(len(tb.data))

	tb.Store(a, NewMove(SqD2, SqD4, DoublePush), 1, 1, 10, BoundExact)
	tb.Store(b, NewMove(SqG1, SqF3, Quiet), 2, 2, 3, BoundExact)

	e := tb.Probe(a)
	require.NotNil(t, e, "shallower collision must not evict the deeper entry")
	require.Equal(t, NewMove(SqD2, SqD4, DoublePush), e.Move())
}

func TestStoreReplacesOnDeeperHorizon(t *testing.T) {
	tb := New(1)
	a := Key(1)
	b := a + Key(len(tb.data))

	tb.Store(a, NewMove(SqD2, SqD4, DoublePush), 1, 1, 3, BoundExact)
	tb.Store(b, NewMove(SqG1, SqF3, Quiet), 2, 2, 10, BoundExact)

	e := tb.Probe(b)
	require.NotNil(t, e, "deeper collision must evict the shallower entry")
	require.Equal(t, NewMove(SqG1, SqF3, Quiet), e.Move())
}

func TestStoreAlwaysOverwritesSameKey(t *testing.T) {
	tb := New(1)
	key := Key(42)
	tb.Store(key, NewMove(SqD2, SqD4, DoublePush), 1, 1, 10, BoundExact)
	tb.Store(key, NewMove(SqG1, SqF3, Quiet), 2, 2, 1, BoundUpper)

	e := tb.Probe(key)
	require.NotNil(t, e)
	require.Equal(t, NewMove(SqG1, SqF3, Quiet), e.Move(), "same-key store must refresh even at a shallower horizon")
	require.Equal(t, BoundUpper, e.Bound())
}

func TestClearEmptiesWithoutResizing(t *testing.T) {
	tb := New(1)
	size := len(tb.data)
	tb.Store(Key(7), MoveNone, 1, 1, 1, BoundExact)
	require.Equal(t, uint64(1), tb.Len())

	tb.Clear()
	require.Equal(t, size, len(tb.data))
	require.Equal(t, uint64(0), tb.Len())
	require.Nil(t, tb.Probe(Key(7)))
}

func TestHashfullReflectsOccupancy(t *testing.T) {
	tb := New(1)
	require.Equal(t, 0, tb.Hashfull())
	for i := 0; i < 100; i++ {
		tb.Store(Key(i+1), MoveNone, 1, 1, 1, BoundExact)
	}
	require.Greater(t, tb.Hashfull(), 0)
	require.Less(t, tb.Hashfull(), 1000)
}
