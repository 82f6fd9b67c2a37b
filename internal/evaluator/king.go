package evaluator

import (
	"github.com/kestrel-chess/kestrel/internal/attacks"
	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// evaluateKingSafety returns us's king-safety score: a pawn-shield bonus,
// open/semi-open file maluses on the king's own and adjacent files, and a
// tropism term
// weighting enemy-piece proximity by piece kind, tapered toward zero as
// the endgame approaches.
func evaluateKingSafety(pos *position.Position, us Color) Score {
	them := us.Flip()
	ev := config.Settings.Eval
	kingSq := pos.KingSquare(us)
	f := kingSq.FileOf()

	var s Score

	shieldRank := Rank2
	if us == Black {
		shieldRank = Rank7
	}
	shieldFiles := f.Bb()
	if f > 0 {
		shieldFiles |= (f - 1).Bb()
	}
	if f < 7 {
		shieldFiles |= (f + 1).Bb()
	}
	shieldSquares := shieldFiles & shieldRank.Bb()
	ownPawns := pos.Pieces(us, Pawn)
	shieldCount := (shieldSquares & ownPawns).PopCount()
	s.Opening += Value(shieldCount * ev.KingShieldPawnBonus)

	ownPawnsAllFiles := ownPawns
	enemyPawns := pos.Pieces(them, Pawn)
	for _, file := range kingAdjacentFiles(f) {
		fileMask := file.Bb()
		if ownPawnsAllFiles&fileMask == BbZero {
			if enemyPawns&fileMask == BbZero {
				s.Opening -= Value(ev.KingOpenFileMalus)
			} else {
				s.Opening -= Value(ev.KingSemiOpenFileMalus)
			}
		}
	}

	tropism := 0
	for pk := Knight; pk <= Queen; pk++ {
		pieces := pos.Pieces(them, pk)
		for pieces != BbZero {
			sq := pieces.PopLsb()
			dist := attacks.KingDistance(kingSq, sq)
			tropism += (7 - dist) * ev.KingTropismWeight[pk]
		}
	}
	s.Opening -= Value(tropism)
	s.Endgame -= Value(tropism / 4)

	return s
}

func kingAdjacentFiles(f File) []File {
	files := []File{f}
	if f > 0 {
		files = append(files, f-1)
	}
	if f < 7 {
		files = append(files, f+1)
	}
	return files
}
