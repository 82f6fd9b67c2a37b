package types

// PieceKind is the closed set of six chess piece kinds, used as a tag
// into per-kind attack and value tables rather than dispatched
// polymorphically.
type PieceKind uint8

// The six piece kinds, plus the out-of-range sentinel PkNone.
const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PkNone
	PkLength = PkNone
)

var pieceKindLabels = [PkLength]string{"p", "n", "b", "r", "q", "k"}

// IsValid reports whether pk is one of the six piece kinds.
func (pk PieceKind) IsValid() bool {
	return pk < PkNone
}

// IsSlider reports whether pk slides along rays (bishop, rook, queen).
func (pk PieceKind) IsSlider() bool {
	return pk == Bishop || pk == Rook || pk == Queen
}

// String returns the lowercase algebraic letter for the kind ("p".."k").
func (pk PieceKind) String() string {
	if !pk.IsValid() {
		return "-"
	}
	return pieceKindLabels[pk]
}

// ValueOf returns pk's fixed material value from PieceValue, or 0 for
// PkNone (an empty square has no capture value).
func (pk PieceKind) ValueOf() Value {
	if !pk.IsValid() {
		return ValueZero
	}
	return PieceValue[pk]
}

// Piece packs a Color and a PieceKind into a single byte: 0..5 are white
// pieces, 6..11 black, 12 is PieceNone. This layout matches the 12-row
// Zobrist piece-key table directly (index = int(Piece)).
type Piece uint8

// PieceNone is the "empty square" sentinel.
const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	PieceNone
	PieceLength = PieceNone
)

// MakePiece builds a Piece from a color and kind.
func MakePiece(c Color, pk PieceKind) Piece {
	if !pk.IsValid() {
		return PieceNone
	}
	return Piece(int(c)*6 + int(pk))
}

// ColorOf returns the owning color of p. Only valid when p != PieceNone.
func (p Piece) ColorOf() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// TypeOf returns the PieceKind of p, or PkNone if p is PieceNone.
func (p Piece) TypeOf() PieceKind {
	if p == PieceNone {
		return PkNone
	}
	return PieceKind(int(p) % 6)
}

// IsValid reports whether p is one of the 12 occupied-square pieces.
func (p Piece) IsValid() bool {
	return p < PieceLength
}

// String renders FEN-style piece letters: uppercase for white, lowercase
// for black, "-" for PieceNone.
func (p Piece) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := p.TypeOf().String()
	if p.ColorOf() == White {
		return string(s[0] - 32)
	}
	return s
}
