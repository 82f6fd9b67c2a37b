package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// phaseWeight is the non-pawn, non-king material weight of one piece
// toward the opening/endgame taper.
var phaseWeight = [PkLength]int{
	Pawn:   0,
	Knight: 1,
	Bishop: 1,
	Rook:   2,
	Queen:  4,
	King:   0,
}

// totalPhase is phaseWeight summed over a full starting set of non-king,
// non-pawn material (4 knights + 4 bishops + 4 rooks + 2 queens).
const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// gamePhase returns a tapering parameter in [0,256]: 0 means full opening
// material remains, 256 means bare-bones endgame material, computed from
// remaining non-king material.
func gamePhase(pos *position.Position) int {
	phase := totalPhase
	for pk := Knight; pk <= Queen; pk++ {
		phase -= pos.PiecesOfKind(pk).PopCount() * phaseWeight[pk]
	}
	if phase < 0 {
		phase = 0
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase * 256 / totalPhase
}
