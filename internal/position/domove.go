package position

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// castlingCorner maps the corner squares a1/h1/a8/h8 to the single
// castling right lost when a rook leaves or is captured there.
var castlingCorner = map[Square]CastlingRights{
	SqA1: CastlingWhiteQueenside,
	SqH1: CastlingWhiteKingside,
	SqA8: CastlingBlackQueenside,
	SqH8: CastlingBlackKingside,
}

// castleRookMove describes the rook's from/to squares for each of the four
// castling moves, keyed by the king's destination square.
var castleRookMove = map[Square][2]Square{
	SqG1: {SqH1, SqF1},
	SqC1: {SqA1, SqD1},
	SqG8: {SqH8, SqF8},
	SqC8: {SqA8, SqD8},
}

// DoMove mutates the position to reflect m and pushes its pre-image onto
// the undo stack. The caller is responsible for only passing moves the
// generator produced; DoMove performs no legality check.
func (p *Position) DoMove(m Move) {
	from := m.From()
	to := m.To()
	flag := m.Flag()
	us := p.sideToMove
	them := us.Flip()

	movingPiece := p.board[from]
	movingKind := movingPiece.TypeOf()

	captureSq := to
	var capturedKind PieceKind = PkNone
	if flag == EnPassant {
		if us == White {
			captureSq = to.To(South)
		} else {
			captureSq = to.To(North)
		}
		capturedKind = Pawn
	} else if p.board[to] != PieceNone {
		capturedKind = p.board[to].TypeOf()
	}

	p.history = append(p.history, irreversibleState{
		capturedKind:   capturedKind,
		epSquare:       p.epSquare,
		castlingRights: p.castlingRights,
		halfMoveClock:  p.halfMoveClock,
		zobristKey:     p.zobristKey,
	})
	p.moveStack = append(p.moveStack, m)

	key := p.zobristKey

	// Remove moving piece from `from`, place on `to` (promotion overrides
	// the placed kind below).
	p.removePiece(from, movingPiece)
	key ^= attacks.ZPiece[movingPiece][from]

	if capturedKind != PkNone {
		capturedPiece := MakePiece(them, capturedKind)
		p.removePiece(captureSq, capturedPiece)
		key ^= attacks.ZPiece[capturedPiece][captureSq]
	}

	placedKind := movingKind
	if flag.isPromotionFlag() {
		placedKind = m.PromotionKind()
	}
	placedPiece := MakePiece(us, placedKind)
	p.placePiece(to, placedPiece)
	key ^= attacks.ZPiece[placedPiece][to]

	if movingKind == King {
		p.kingSquare[us] = to
	}

	if flag == Castle {
		rookMove := castleRookMove[to]
		rookPiece := MakePiece(us, Rook)
		p.removePiece(rookMove[0], rookPiece)
		p.placePiece(rookMove[1], rookPiece)
		key ^= attacks.ZPiece[rookPiece][rookMove[0]]
		key ^= attacks.ZPiece[rookPiece][rookMove[1]]
	}

	// Castling rights: lose both rights for `us` if the king moved; lose
	// the single right tied to a corner if a rook left or was captured on
	// it. Rights only ever clear, never reappear outside UndoMove.
	newRights := p.castlingRights
	if movingKind == King {
		if us == White {
			newRights = newRights.Clear(CastlingWhiteKingside | CastlingWhiteQueenside)
		} else {
			newRights = newRights.Clear(CastlingBlackKingside | CastlingBlackQueenside)
		}
	}
	if right, ok := castlingCorner[from]; ok {
		newRights = newRights.Clear(right)
	}
	if right, ok := castlingCorner[captureSq]; ok && capturedKind == Rook {
		newRights = newRights.Clear(right)
	}
	if newRights != p.castlingRights {
		key ^= attacks.ZCastle[p.castlingRights]
		key ^= attacks.ZCastle[newRights]
		p.castlingRights = newRights
	}

	// En passant target: the square the double-pushed pawn skipped over.
	newEp := SqNone
	if flag == DoublePush {
		if us == White {
			newEp = from.To(North)
		} else {
			newEp = from.To(South)
		}
	}
	if p.epSquare != SqNone {
		key ^= attacks.ZEpFile[p.epSquare.FileOf()]
	}
	if newEp != SqNone {
		key ^= attacks.ZEpFile[newEp.FileOf()]
	}
	p.epSquare = newEp

	// Halfmove (fifty-move) clock.
	if movingKind == Pawn || capturedKind != PkNone {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	if us == Black {
		p.fullMoveNumber++
	}

	key ^= attacks.ZSide
	p.zobristKey = key
	p.sideToMove = them
	p.inCheck = p.sideToMoveAttacked()
	p.repetition[p.zobristKey]++
}

// UndoMove exactly inverts the most recent DoMove.
func (p *Position) UndoMove() {
	m := p.moveStack[len(p.moveStack)-1]
	p.moveStack = p.moveStack[:len(p.moveStack)-1]
	st := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	if cnt := p.repetition[p.zobristKey]; cnt <= 1 {
		delete(p.repetition, p.zobristKey)
	} else {
		p.repetition[p.zobristKey] = cnt - 1
	}

	them := p.sideToMove
	us := them.Flip()
	p.sideToMove = us
	if us == Black {
		p.fullMoveNumber--
	}

	from := m.From()
	to := m.To()
	flag := m.Flag()

	placedPiece := p.board[to]
	placedKind := placedPiece.TypeOf()

	if flag == Castle {
		rookMove := castleRookMove[to]
		rookPiece := MakePiece(us, Rook)
		p.removePiece(rookMove[1], rookPiece)
		p.placePiece(rookMove[0], rookPiece)
	}

	p.removePiece(to, placedPiece)

	movingKind := placedKind
	if flag.isPromotionFlag() {
		movingKind = Pawn
	}
	movingPiece := MakePiece(us, movingKind)
	p.placePiece(from, movingPiece)
	if movingKind == King {
		p.kingSquare[us] = from
	}

	if st.capturedKind != PkNone {
		captureSq := to
		if flag == EnPassant {
			if us == White {
				captureSq = to.To(South)
			} else {
				captureSq = to.To(North)
			}
		}
		p.placePiece(captureSq, MakePiece(them, st.capturedKind))
	}

	p.castlingRights = st.castlingRights
	p.epSquare = st.epSquare
	p.halfMoveClock = st.halfMoveClock
	p.zobristKey = st.zobristKey
	p.inCheck = p.sideToMoveAttacked()
}

func (p *Position) removePiece(sq Square, pc Piece) {
	p.board[sq] = PieceNone
	p.colorBb[pc.ColorOf()].PopSquare(sq)
	p.pieceBb[pc.TypeOf()].PopSquare(sq)
}

func (p *Position) placePiece(sq Square, pc Piece) {
	p.board[sq] = pc
	p.colorBb[pc.ColorOf()].PushSquare(sq)
	p.pieceBb[pc.TypeOf()].PushSquare(sq)
}

func (f MoveFlag) isPromotionFlag() bool {
	return f >= PromoQueen
}

// computeZobristFromScratch recomputes the Zobrist hash from piece
// placement, side to move, castling rights and en-passant file, used to
// build a fresh Position and to verify incremental updates in tests
// ("Zobrist consistency").
func (p *Position) computeZobristFromScratch() Key {
	var key Key
	for sq := SqA1; sq <= SqH8; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			key ^= attacks.ZPiece[pc][sq]
		}
	}
	key ^= attacks.ZCastle[p.castlingRights]
	if p.epSquare != SqNone {
		key ^= attacks.ZEpFile[p.epSquare.FileOf()]
	}
	if p.sideToMove == Black {
		key ^= attacks.ZSide
	}
	return key
}
