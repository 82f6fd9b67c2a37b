package movegen

import (
	"strings"

	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// MoveFromUCI parses a long-algebraic move string ("e2e4", "e7e8q", "e1g1")
// as sent by a UCI "position ... moves ..." command and matches it against
// pos's legal moves. A string is never trusted to encode flags such as
// castling or en passant directly; instead it is matched against the
// generator's own output so an illegal or malformed string is reliably
// rejected.
func MoveFromUCI(pos *position.Position, s string) (Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || len(s) > 5 {
		return MoveNone, false
	}
	from, ok := SquareFromString(s[0:2])
	if !ok {
		return MoveNone, false
	}
	to, ok := SquareFromString(s[2:4])
	if !ok {
		return MoveNone, false
	}
	promo := PkNone
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'n':
			promo = Knight
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		default:
			return MoveNone, false
		}
	}

	g := NewGenerator()
	var list moveslice.MoveList
	g.Generate(pos, false, &list)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if m.PromotionKind() == promo {
				return m, true
			}
			continue
		}
		if promo == PkNone {
			return m, true
		}
	}
	return MoveNone, false
}
