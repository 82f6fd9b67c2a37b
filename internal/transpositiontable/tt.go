package transpositiontable

import (
	"math"

	"github.com/kestrel-chess/kestrel/internal/logging"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// MaxSizeInMB caps a misconfigured HashMB UCI option.
const MaxSizeInMB = 65_536

// Table is the search's transposition table. Create with New; Resize and
// Clear must not be called concurrently with a running search.
type Table struct {
	data     []Entry
	mask     uint64
	entries  uint64
	probes   uint64
	hits     uint64
	collisions uint64
}

// New creates a Table sized to the largest power-of-two entry count that
// fits in sizeMB megabytes.
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table, discarding all entries.
func (t *Table) Resize(sizeMB int) {
	if sizeMB > MaxSizeInMB {
		logging.GetLog().Warningf("TT size %d MB reduced to max %d MB", sizeMB, MaxSizeInMB)
		sizeMB = MaxSizeInMB
	}
	if sizeMB <= 0 {
		t.data = nil
		t.mask = 0
		return
	}
	bytes := uint64(sizeMB) * 1024 * 1024
	entries := uint64(1) << uint64(math.Floor(math.Log2(float64(bytes/EntrySize))))
	if entries == 0 {
		entries = 1
	}
	t.data = make([]Entry, entries)
	t.mask = entries - 1
	t.entries = 0
}

// Clear empties the table without changing its size.
func (t *Table) Clear() {
	t.data = make([]Entry, len(t.data))
	t.entries = 0
	t.probes = 0
	t.hits = 0
	t.collisions = 0
}

func (t *Table) index(key Key) uint64 {
	return uint64(key) & t.mask
}

// Probe returns the entry for key, or nil on a miss or a full-key
// mismatch: a hit requires the full key to match.
func (t *Table) Probe(key Key) *Entry {
	if len(t.data) == 0 {
		return nil
	}
	t.probes++
	e := &t.data[t.index(key)]
	if e.key == key {
		t.hits++
		return e
	}
	return nil
}

// Store writes a search result into the table, applying a depth-preferred
// replacement policy: replace if the slot is empty, holds a different
// key, or holds a smaller horizon than the new entry.
func (t *Table) Store(key Key, move Move, value, eval Value, horizon int, bound Bound) {
	if len(t.data) == 0 {
		return
	}
	e := &t.data[t.index(key)]
	if e.empty() {
		t.entries++
	} else if e.key != key {
		t.collisions++
	}
	if !e.empty() && e.key != key && e.Horizon() >= horizon {
		return
	}
	if horizon > 255 {
		horizon = 255
	}
	e.key = key
	e.move = move
	e.value = int16(value)
	e.eval = int16(eval)
	e.horizon = uint8(horizon)
	e.bound = bound
}

// Len returns the number of occupied slots.
func (t *Table) Len() uint64 { return t.entries }

// Hashfull returns occupancy in permille, as UCI's "hashfull" info field
// expects.
func (t *Table) Hashfull() int {
	if len(t.data) == 0 {
		return 0
	}
	return int(1000 * t.entries / uint64(len(t.data)))
}
