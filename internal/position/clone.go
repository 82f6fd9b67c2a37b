package position

import (
	"fmt"
	"strings"

	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Clone returns an independent deep copy. The search engine owns exactly
// one Position per run; the front-end keeps a separate "game" position and
// clones it into the searcher before every search.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]irreversibleState(nil), p.history...)
	c.moveStack = append([]Move(nil), p.moveStack...)
	c.repetition = make(map[Key]int, len(p.repetition))
	for k, v := range p.repetition {
		c.repetition[k] = v
	}
	return &c
}

// Pretty renders an 8x8 ASCII board with rank/file labels, used by the
// debug "d" UCI extension command and by test failure messages.
func (p *Position) Pretty() string {
	var sb strings.Builder
	sb.WriteString("  +------------------------+\n")
	for r := int(Rank8); r >= int(Rank1); r-- {
		fmt.Fprintf(&sb, "%d |", r+1)
		for f := 0; f < 8; f++ {
			pc := p.board[SquareOf(File(f), Rank(r))]
			fmt.Fprintf(&sb, " %s ", pc.String())
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +------------------------+\n")
	sb.WriteString("    a  b  c  d  e  f  g  h\n")
	fmt.Fprintf(&sb, "FEN: %s\n", p.ToFEN())
	fmt.Fprintf(&sb, "Key: %x\n", uint64(p.zobristKey))
	return sb.String()
}
