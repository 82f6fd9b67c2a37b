// Package moveslice provides a caller-owned, fixed-capacity move buffer,
// so the generator fills a fixed-size buffer with no heap allocation per
// call; MoveList's backing array is part of the struct itself (not a
// slice header pointing at a heap allocation), so a stack-allocated or
// generator-embedded MoveList never allocates on Add.
package moveslice

import (
	"strings"

	. "github.com/kestrel-chess/kestrel/internal/types"
)

// MaxMoves is larger than any reachable chess position's legal move count
// (the theoretical maximum is 218).
const MaxMoves = 256

// MoveList is a fixed-capacity, zero-allocation move buffer.
type MoveList struct {
	moves [MaxMoves]Move
	len   int
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int { return ml.len }

// Clear resets the list to empty without touching the backing array.
func (ml *MoveList) Clear() { ml.len = 0 }

// Add appends m. Silently drops the move if the buffer is already at
// MaxMoves capacity (unreachable in a legal chess position).
func (ml *MoveList) Add(m Move) {
	if ml.len < MaxMoves {
		ml.moves[ml.len] = m
		ml.len++
	}
}

// At returns the move at index i.
func (ml *MoveList) At(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i, used by move-ordering sorts.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Swap exchanges the moves at i and j, used by sort.Interface adapters in
// the search's move-ordering pass.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Slice returns the populated prefix of the backing array as a Go slice.
// The slice aliases MoveList's internal array; callers must not retain it
// past the next Clear/Add call on the same MoveList.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.len] }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.len; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

func (ml *MoveList) String() string {
	var sb strings.Builder
	for i := 0; i < ml.len; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(ml.moves[i].StringUci())
	}
	return sb.String()
}
