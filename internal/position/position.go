// Package position implements the rules-accurate chess board: bitboard +
// mailbox piece storage, FEN parsing/emission, and the make/unmake pair
// that threads incremental Zobrist hashing and a repetition counter
// through an explicit per-move undo stack.
//
// Structured as a board array plus per-color/per-kind bitboards, an
// irreversible-state stack, and a running Zobrist key.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/logging"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

var log = logging.GetLog()

// Key re-exports the Zobrist key type so callers never need to import
// internal/attacks directly just to name a hash value.
type Key = attacks.Key

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrBadFEN is returned by NewPositionFromFEN on malformed input.
var ErrBadFEN = errors.New("position: malformed FEN")

// irreversibleState is pushed onto Position's undo stack before every
// mutating DoMove ("IrreversibleState").
type irreversibleState struct {
	capturedKind    PieceKind
	epSquare        Square
	castlingRights  CastlingRights
	halfMoveClock   int
	zobristKey      Key
}

// Position is a complete, mutable chess position. Create one with
// NewPosition or NewPositionFromFEN; never construct the zero value
// directly. Generators and evaluators must treat it as read-only; only
// DoMove/UndoMove may mutate it.
type Position struct {
	board [SqLength]Piece

	colorBb [ColorLength]Bitboard
	pieceBb [PkLength]Bitboard

	sideToMove      Color
	castlingRights  CastlingRights
	epSquare        Square
	halfMoveClock   int
	fullMoveNumber  int

	kingSquare [ColorLength]Square

	zobristKey Key
	inCheck    bool

	history    []irreversibleState
	moveStack  []Move
	repetition map[Key]int
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := NewPositionFromFEN(StartFEN)
	if err != nil {
		panic("position: start FEN must always parse: " + err.Error())
	}
	return p
}

// NewPositionFromFEN parses a standard six-field FEN string. It returns
// ErrBadFEN (wrapped with detail) on any malformed field; the returned
// Position is nil in that case.
func NewPositionFromFEN(fen string) (*Position, error) {
	p := &Position{repetition: make(map[Key]int, 64)}
	for sq := SqA1; sq <= SqH8; sq++ {
		p.board[sq] = PieceNone
	}
	if err := p.setupFromFEN(fen); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) setupFromFEN(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return fmt.Errorf("%w: expected at least 4 fields, got %d (%q)", ErrBadFEN, len(fields), fen)
	}

	if err := p.parsePlacement(fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return fmt.Errorf("%w: bad side to move %q", ErrBadFEN, fields[1])
	}

	cr, ok := CastlingRightsFromString(fields[2])
	if !ok {
		return fmt.Errorf("%w: bad castling rights %q", ErrBadFEN, fields[2])
	}
	p.castlingRights = cr

	if fields[3] == "-" {
		p.epSquare = SqNone
	} else {
		sq, ok := SquareFromString(fields[3])
		if !ok {
			return fmt.Errorf("%w: bad en passant square %q", ErrBadFEN, fields[3])
		}
		p.epSquare = sq
	}

	p.halfMoveClock = 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: bad halfmove clock %q", ErrBadFEN, fields[4])
		}
		p.halfMoveClock = n
	}
	p.fullMoveNumber = 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return fmt.Errorf("%w: bad fullmove number %q", ErrBadFEN, fields[5])
		}
		p.fullMoveNumber = n
	}

	if p.pieceBb[King]&p.colorBb[White] == BbZero || p.pieceBb[King]&p.colorBb[Black] == BbZero {
		return fmt.Errorf("%w: missing king", ErrBadFEN)
	}
	if (p.pieceBb[King] & p.colorBb[White]).PopCount() != 1 || (p.pieceBb[King] & p.colorBb[Black]).PopCount() != 1 {
		return fmt.Errorf("%w: more than one king for a color", ErrBadFEN)
	}
	p.kingSquare[White] = (p.pieceBb[King] & p.colorBb[White]).Lsb()
	p.kingSquare[Black] = (p.pieceBb[King] & p.colorBb[Black]).Lsb()

	p.zobristKey = p.computeZobristFromScratch()
	p.inCheck = p.sideToMoveAttacked()
	p.repetition[p.zobristKey]++
	return nil
}

func (p *Position) parsePlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: placement needs 8 ranks, got %d", ErrBadFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		r := Rank(7 - i)
		f := 0
		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				f += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				if f > 7 {
					return fmt.Errorf("%w: rank %d overflows", ErrBadFEN, i)
				}
				sq := SquareOf(File(f), r)
				pc := pieceFromFENChar(byte(c))
				p.board[sq] = pc
				p.colorBb[pc.ColorOf()].PushSquare(sq)
				p.pieceBb[pc.TypeOf()].PushSquare(sq)
				f++
			default:
				return fmt.Errorf("%w: bad placement character %q", ErrBadFEN, c)
			}
		}
		if f != 8 {
			return fmt.Errorf("%w: rank %d does not sum to 8 files", ErrBadFEN, i)
		}
	}
	return nil
}

func pieceFromFENChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 32
	}
	var kind PieceKind
	switch c {
	case 'P':
		kind = Pawn
	case 'N':
		kind = Knight
	case 'B':
		kind = Bishop
	case 'R':
		kind = Rook
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	}
	return MakePiece(color, kind)
}

func fenCharFromPiece(p Piece) byte {
	s := p.TypeOf().String()[0]
	if p.ColorOf() == White {
		return s - 32
	}
	return s
}

// ToFEN renders the position as a canonical, six-field FEN string such
// that NewPositionFromFEN(p.ToFEN()) reproduces p bit-for-bit (// "FEN round-trip").
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := SquareOf(File(f), Rank(r))
			pc := p.board[sq]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(fenCharFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != int(Rank1) {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))
	return sb.String()
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// PieceOn returns the piece (or PieceNone) occupying sq.
func (p *Position) PieceOn(sq Square) Piece { return p.board[sq] }

// OccupiedBy returns the occupancy bitboard of color c.
func (p *Position) OccupiedBy(c Color) Bitboard { return p.colorBb[c] }

// Occupied returns the occupancy of both colors combined.
func (p *Position) Occupied() Bitboard { return p.colorBb[White] | p.colorBb[Black] }

// PiecesOfKind returns the bitboard of every piece of kind pk, both colors.
func (p *Position) PiecesOfKind(pk PieceKind) Bitboard { return p.pieceBb[pk] }

// Pieces returns the bitboard of pieces of kind pk belonging to color c.
func (p *Position) Pieces(c Color, pk PieceKind) Bitboard { return p.colorBb[c] & p.pieceBb[pk] }

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// CastlingRights returns the current castling-rights mask.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target square, or SqNone.
func (p *Position) EnPassantSquare() Square { return p.epSquare }

// HalfMoveClock returns the fifty-move counter.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// ZobristKey returns the running incremental Zobrist hash.
func (p *Position) ZobristKey() Key { return p.zobristKey }

// PawnKey returns a Zobrist-style hash of the pawn structure alone (both
// colors), used by the evaluator's pawn-structure cache. Unlike
// ZobristKey it is not maintained incrementally: pawn moves are rare
// enough relative to total nodes that recomputing it from the pawn
// bitboards on demand is cheap next to the structural evaluation it
// replaces on a cache hit.
func (p *Position) PawnKey() Key {
	var key Key
	pawns := p.pieceBb[Pawn]
	for pawns != BbZero {
		sq := pawns.PopLsb()
		key ^= attacks.ZPiece[p.board[sq]][sq]
	}
	return key
}

// IsCheck returns the cached "side to move is in check" flag.
func (p *Position) IsCheck() bool { return p.inCheck }

// Ply returns the number of moves made so far (moves on the undo stack).
func (p *Position) Ply() int { return len(p.moveStack) }

// LastMove returns the most recently made move, or MoveNone at the root.
func (p *Position) LastMove() Move {
	if len(p.moveStack) == 0 {
		return MoveNone
	}
	return p.moveStack[len(p.moveStack)-1]
}

// IsRepetition reports whether the current position has occurred at least
// three times.
func (p *Position) IsRepetition() bool {
	return p.repetition[p.zobristKey] >= 3
}

// IsFiftyMove reports whether the halfmove clock has reached 100 (50 full
// moves without a pawn move or capture).
func (p *Position) IsFiftyMove() bool {
	return p.halfMoveClock >= 100
}

// IsInsufficientMaterial reports K-vs-K, K+minor-vs-K, or K+B(s)-vs-K+B(s)
// with all bishops (either side) on a single square color. Any pawn, rook
// or queen on the board makes this false.
func (p *Position) IsInsufficientMaterial() bool {
	if p.pieceBb[Pawn] != BbZero || p.pieceBb[Rook] != BbZero || p.pieceBb[Queen] != BbZero {
		return false
	}
	knights := p.pieceBb[Knight].PopCount()
	bishops := p.pieceBb[Bishop]
	numBishops := bishops.PopCount()
	if knights == 0 && numBishops == 0 {
		return true // K vs K
	}
	if knights+numBishops == 1 {
		return true // K+minor vs K
	}
	if knights == 0 && numBishops > 0 {
		// All remaining bishops (both colors) must sit on one square color.
		light := bishops & lightSquares
		dark := bishops &^ lightSquares
		return light == BbZero || dark == BbZero
	}
	return false
}

const lightSquares Bitboard = 0x55AA55AA55AA55AA

// GameResult enumerates terminal states the movegen/search can observe.
type GameResult int

// Non-terminal and terminal game states.
const (
	InProgress GameResult = iota
	WhiteIsMated
	BlackIsMated
	Stalemate
	DrawByRepetition
	DrawByFiftyMove
	DrawByInsufficientMaterial
)
