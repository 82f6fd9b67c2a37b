package types

import "fmt"

// Move is a 16-bit packed move (): bits 0..5 from-square, bits
// 6..11 to-square, bits 12..15 a MoveFlag. The all-zero value is MoveNone,
// distinguishable from any legal move because a generator never produces
// a from==to==0 move.
//
// Preserving this exact bit layout (rather than a struct of fields) keeps
// transposition-table entries and move-ordering comparisons cheap value
// operations, per "tagged move representation".
type Move uint16

// MoveFlag occupies bits 12..15 of a Move.
type MoveFlag uint8

// The eight move flags.
const (
	Quiet MoveFlag = iota
	EnPassant
	Castle
	DoublePush
	PromoQueen
	PromoKnight
	PromoRook
	PromoBishop
)

// MoveNone is the null move: all bits zero.
const MoveNone Move = 0

const (
	fromMask = 0x3F
	toShift  = 6
	toMask   = 0x3F
	flagShift = 12
)

// NewMove packs a from/to/flag triple into a Move.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(uint16(from)&fromMask | (uint16(to)&toMask)<<toShift | uint16(flag)<<flagShift)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> toShift) & toMask)
}

// Flag returns the move's flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag(m >> flagShift)
}

// IsPromotion reports whether the move's flag is one of the four promotion
// flags.
func (m Move) IsPromotion() bool {
	return m.Flag() >= PromoQueen
}

// PromotionKind returns the piece kind promoted to; only meaningful when
// IsPromotion is true.
func (m Move) PromotionKind() PieceKind {
	switch m.Flag() {
	case PromoQueen:
		return Queen
	case PromoKnight:
		return Knight
	case PromoRook:
		return Rook
	case PromoBishop:
		return Bishop
	}
	return PkNone
}

// IsEnPassant reports whether the move's flag is EnPassant.
func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassant
}

// IsCastle reports whether the move's flag is Castle.
func (m Move) IsCastle() bool {
	return m.Flag() == Castle
}

// IsDoublePush reports whether the move's flag is DoublePush.
func (m Move) IsDoublePush() bool {
	return m.Flag() == DoublePush
}

// IsValid reports whether m is a non-null move with distinct from/to
// squares.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To()
}

// StringUci renders the move in long-algebraic UCI form: "e2e4", "e7e8q".
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.PromotionKind().String()
	}
	return s
}

func (m Move) String() string {
	return fmt.Sprintf("%s (%s)", m.StringUci(), m.flagString())
}

func (m Move) flagString() string {
	switch m.Flag() {
	case Quiet:
		return "quiet"
	case EnPassant:
		return "en passant"
	case Castle:
		return "castle"
	case DoublePush:
		return "double push"
	case PromoQueen, PromoKnight, PromoRook, PromoBishop:
		return "promotion"
	}
	return "unknown"
}
