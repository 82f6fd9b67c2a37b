package main

import (
	"strings"

	"github.com/fatih/color"

	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiBlack, color.Bold)
	lightSq    = color.New(color.BgWhite)
	darkSq     = color.New(color.BgCyan)
)

// renderBoard draws pos as an 8x8 ASCII grid with ANSI colors, for the
// "d"/"board" UCI debug extension command. Not part of the UCI protocol
// surface; purely a development aid, so it lives in cmd/kestrel rather
// than internal/uci.
func renderBoard(pos *position.Position) string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for r := int(Rank8); r >= int(Rank1); r-- {
		sb.WriteString(string(rune('1'+r)))
		sb.WriteString(" | ")
		for f := 0; f < 8; f++ {
			sq := SquareOf(File(f), Rank(r))
			pc := pos.PieceOn(sq)
			squareStyle := lightSq
			if (f+r)%2 == 0 {
				squareStyle = darkSq
			}
			glyph := "."
			if pc != PieceNone {
				glyph = pc.String()
			}
			pieceStyle := whitePiece
			if pc.IsValid() && pc.ColorOf() == Black {
				pieceStyle = blackPiece
			}
			sb.WriteString(squareStyle.Sprint(pieceStyle.Sprint(glyph)))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("    a b c d e f g h\n")
	sb.WriteString("FEN: ")
	sb.WriteString(pos.ToFEN())
	sb.WriteString("\nZobrist: ")
	sb.WriteString(color.YellowString("%x", uint64(pos.ZobristKey())))
	return sb.String()
}
