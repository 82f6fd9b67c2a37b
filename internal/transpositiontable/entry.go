// Package transpositiontable implements the search's position cache: a
// power-of-two-sized vector of 16-byte entries keyed by the low bits of
// a Zobrist hash. Not safe for concurrent use; the search owns a single
// table and is single-threaded.
package transpositiontable

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Key is the Zobrist hash type used to index the table, re-exported so
// callers never need to import internal/attacks just to name one.
type Key = attacks.Key

// Bound describes what a stored value means relative to the search
// window that produced it.
type Bound uint8

// The three bound kinds step 7 assigns when storing.
const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// EntrySize is the in-memory footprint of one Entry: 16 bytes, matching a
// power-of-two-sized vector of fixed-width entries.
const EntrySize = 16

// Entry is one transposition-table slot. key(8) + move(2) + value(2) +
// eval(2) + horizon(1) + bound(1) = 16 bytes.
type Entry struct {
	key     Key
	move    Move
	value   int16
	eval    int16
	horizon uint8 // absolute ply (search-root relative) this entry's depth reaches
	bound   Bound
}

// Key returns the entry's full Zobrist key, used to detect hash
// collisions on probe ("Probe returns a hit only on full
// key match").
func (e *Entry) Key() Key { return e.key }

// Move returns the stored best/refutation move, or MoveNone.
func (e *Entry) Move() Move { return e.move }

// Value returns the stored search value.
func (e *Entry) Value() Value { return Value(e.value) }

// Eval returns the stored static evaluation, independent of the search
// value's bound.
func (e *Entry) Eval() Value { return Value(e.eval) }

// Horizon returns ply + depth at the time this entry was stored.
func (e *Entry) Horizon() int { return int(e.horizon) }

// Bound returns whether Value is exact, a lower bound, or an upper
// bound.
func (e *Entry) Bound() Bound { return e.bound }

func (e *Entry) empty() bool { return e.key == 0 }
