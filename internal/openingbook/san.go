package openingbook

import (
	"regexp"

	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// sanPattern decomposes a SAN token into its optional piece letter,
// disambiguating file/rank, capture marker, destination square, and
// optional promotion suffix. Castling is matched separately since it has
// no destination square of its own. Mirrors regexSanMove,
// adapted to capture groups this package resolves against the legal
// move list rather than trusting the string directly.
var sanPattern = regexp.MustCompile(`^([NBRQK]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(=?([NBRQ]))?[+#]?$`)

var castleKingside = regexp.MustCompile(`^O-O[+#]?$`)
var castleQueenside = regexp.MustCompile(`^O-O-O[+#]?$`)

// parseSAN resolves one SAN token against pos's legal moves. It never
// trusts the token's own encoding of check, capture, or disambiguation:
// every candidate is cross-checked against the generator's legal move
// list, and a token that doesn't uniquely identify one of them is
// rejected.
func parseSAN(gen *movegen.Generator, pos *position.Position, tok string) (Move, bool) {
	var list moveslice.MoveList
	gen.Generate(pos, false, &list)

	if castleKingside.MatchString(tok) {
		return findCastle(pos, &list, true)
	}
	if castleQueenside.MatchString(tok) {
		return findCastle(pos, &list, false)
	}

	groups := sanPattern.FindStringSubmatch(tok)
	if groups == nil {
		return MoveNone, false
	}
	pieceLetter, disFile, disRank, dest, promoLetter := groups[1], groups[2], groups[3], groups[5], groups[7]

	to, ok := SquareFromString(dest)
	if !ok {
		return MoveNone, false
	}
	wantKind := pieceKindFromLetter(pieceLetter)
	wantPromo := PkNone
	if promoLetter != "" {
		wantPromo = pieceKindFromLetter(promoLetter)
	}

	var match Move
	matches := 0
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.To() != to {
			continue
		}
		if pos.PieceOn(m.From()).TypeOf() != wantKind {
			continue
		}
		if wantPromo != PkNone && (!m.IsPromotion() || m.PromotionKind() != wantPromo) {
			continue
		}
		if wantPromo == PkNone && m.IsPromotion() {
			continue
		}
		if disFile != "" && m.From().FileOf() != fileFromLetter(disFile) {
			continue
		}
		if disRank != "" && m.From().RankOf() != rankFromDigit(disRank) {
			continue
		}
		match = m
		matches++
	}
	if matches == 1 {
		return match, true
	}
	return MoveNone, false
}

func findCastle(pos *position.Position, list *moveslice.MoveList, kingside bool) (Move, bool) {
	kingSq := pos.KingSquare(pos.SideToMove())
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.Flag() != Castle || m.From() != kingSq {
			continue
		}
		goesRight := m.To() > m.From()
		if goesRight == kingside {
			return m, true
		}
	}
	return MoveNone, false
}

func pieceKindFromLetter(l string) PieceKind {
	switch l {
	case "N":
		return Knight
	case "B":
		return Bishop
	case "R":
		return Rook
	case "Q":
		return Queen
	case "K":
		return King
	case "":
		return Pawn
	default:
		return PkNone
	}
}

func fileFromLetter(l string) File {
	return File(l[0] - 'a')
}

func rankFromDigit(d string) Rank {
	return Rank(d[0] - '1')
}
