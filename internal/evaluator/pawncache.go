package evaluator

import (
	"math"

	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// maxPawnCacheMB caps a misconfigured PawnCacheSizeMB the way
// transpositiontable.Table.Resize clamps an oversized TT request.
const maxPawnCacheMB = 256

// entrySize is the in-memory footprint of one pawnCacheEntry, used only to
// size the table; Go does not guarantee this layout is packed, but it is
// a close enough estimate for a cache sizing knob.
const entrySize = 16

type pawnCacheEntry struct {
	key   position.Key
	score Score
}

// pawnCache is a direct-mapped hash of pawn-structure scores keyed by
// Position.PawnKey combined with both king squares.
type pawnCache struct {
	data        []pawnCacheEntry
	mask        uint64
	hits        uint64
	misses      uint64
	collisions  uint64
}

func newPawnCache(sizeMB int) *pawnCache {
	if sizeMB > maxPawnCacheMB {
		logging.GetLog().Warningf("pawn cache size %d MB reduced to max %d MB", sizeMB, maxPawnCacheMB)
		sizeMB = maxPawnCacheMB
	}
	if sizeMB <= 0 {
		return &pawnCache{data: nil, mask: 0}
	}
	bytes := uint64(sizeMB) * 1024 * 1024
	entries := uint64(1) << uint64(math.Floor(math.Log2(float64(bytes/entrySize))))
	if entries == 0 {
		entries = 1
	}
	return &pawnCache{
		data: make([]pawnCacheEntry, entries),
		mask: entries - 1,
	}
}

func (pc *pawnCache) get(key position.Key) (Score, bool) {
	if len(pc.data) == 0 {
		return Score{}, false
	}
	e := &pc.data[uint64(key)&pc.mask]
	if e.key == key {
		pc.hits++
		return e.score, true
	}
	pc.misses++
	return Score{}, false
}

func (pc *pawnCache) put(key position.Key, score Score) {
	if len(pc.data) == 0 {
		return
	}
	e := &pc.data[uint64(key)&pc.mask]
	if e.key != 0 && e.key != key {
		pc.collisions++
	}
	e.key = key
	e.score = score
}
