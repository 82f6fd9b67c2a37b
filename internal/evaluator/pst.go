package evaluator

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kestrel-chess/kestrel/internal/util"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// ErrPSTLoadFailed is returned when a piece-square-table file is missing or
// malformed; this is fatal, since the engine may not enter search mode
// without both tables loaded.
var ErrPSTLoadFailed = fmt.Errorf("evaluator: piece-square table load failed")

var pieceNames = [PkLength]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// pstTables holds the loaded opening/endgame piece-square values, one
// signed centipawn entry per (kind, square), already white-oriented (rank
// 8 first in the file, matching Square's a1=0 layout after the flip done
// at load time).
type pstTables struct {
	opening [PkLength][SqLength]int16
	endgame [PkLength][SqLength]int16
}

// loadPST reads the two PST files named in config: a
// "<PieceName> - <opening|endgame>" header followed by 8 lines of 8
// integers, first line is the 8th rank.
func loadPST(openingPath, endgamePath string) (*pstTables, error) {
	t := &pstTables{}
	if err := parsePSTFile(openingPath, &t.opening); err != nil {
		return nil, fmt.Errorf("%w: opening table: %v", ErrPSTLoadFailed, err)
	}
	if err := parsePSTFile(endgamePath, &t.endgame); err != nil {
		return nil, fmt.Errorf("%w: endgame table: %v", ErrPSTLoadFailed, err)
	}
	return t, nil
}

func parsePSTFile(path string, out *[PkLength][SqLength]int16) error {
	resolved, err := util.ResolveFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return err
	}
	defer f.Close()

	seen := make(map[PieceKind]bool, PkLength)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		kind, ok := parsePieceHeader(line)
		if !ok {
			return fmt.Errorf("unexpected line %q, wanted a piece header", line)
		}
		var rows [8][8]int16
		for r := 0; r < 8; r++ {
			if !sc.Scan() {
				return fmt.Errorf("%s: truncated before rank row %d", pieceNames[kind], r)
			}
			fields := strings.Fields(sc.Text())
			if len(fields) != 8 {
				return fmt.Errorf("%s: row %d has %d values, want 8", pieceNames[kind], r, len(fields))
			}
			for c := 0; c < 8; c++ {
				v, err := strconv.Atoi(fields[c])
				if err != nil {
					return fmt.Errorf("%s: row %d: %w", pieceNames[kind], r, err)
				}
				rows[r][c] = int16(v)
			}
		}
		// Row 0 of the file is rank 8, row 7 is rank 1.
		for r := 0; r < 8; r++ {
			rank := Rank(7 - r)
			for f := 0; f < 8; f++ {
				sq := SquareOf(File(f), rank)
				out[kind][sq] = rows[r][f]
			}
		}
		seen[kind] = true
	}
	if err := sc.Err(); err != nil {
		return err
	}
	for k := PieceKind(0); k < PkLength; k++ {
		if !seen[k] {
			return fmt.Errorf("missing table for %s", pieceNames[k])
		}
	}
	return nil
}

func parsePieceHeader(line string) (PieceKind, bool) {
	parts := strings.SplitN(line, "-", 2)
	if len(parts) != 2 {
		return PkNone, false
	}
	name := strings.TrimSpace(parts[0])
	for k, n := range pieceNames {
		if n == name {
			return PieceKind(k), true
		}
	}
	return PkNone, false
}

// at returns the (opening, endgame) PST pair for a piece of kind pk and
// color c standing on sq. Black's table is the vertical mirror of white's
// ("black squares are mirrored vertically"), keeping the
// stored tables white-oriented.
func (t *pstTables) at(pk PieceKind, c Color, sq Square) (int16, int16) {
	lookup := sq
	if c == Black {
		lookup = SquareOf(sq.FileOf(), Rank(7-int(sq.RankOf())))
	}
	return t.opening[pk][lookup], t.endgame[pk][lookup]
}
