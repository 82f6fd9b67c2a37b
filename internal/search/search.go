// Package search implements the iterative-deepening alpha-beta searcher:
// a single-threaded, cooperatively cancellable driver over
// internal/movegen, internal/evaluator and internal/transpositiontable.
// It deliberately stops at iterative deepening, alpha-beta with a
// transposition table, MVV-LVA/SEE capture ordering, history-heuristic
// quiet ordering, and quiescence search; null-move pruning, late-move
// reductions, and futility pruning are left out (see DESIGN.md).
package search

import (
	"sync/atomic"
	"time"

	oplogging "github.com/op/go-logging"

	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/evaluator"
	"github.com/kestrel-chess/kestrel/internal/history"
	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/moveslice"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/kestrel-chess/kestrel/internal/transpositiontable"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// Prober is the opening-book lookup surface non-goals allow:
// "no opening-book policy decisions beyond the interface that exposes a
// book move when present". internal/openingbook implements it; Search
// only ever calls Probe.
type Prober interface {
	Probe(pos *position.Position) (Move, bool)
}

// Result is what StartSearch returns: the best move found, its score from
// the searching side's perspective, the depth actually completed, and the
// principal variation leading to it.
type Result struct {
	BestMove Move
	Score    Value
	Depth    int
	PV       []Move
	Aborted  bool
}

// Search owns one transposition table, evaluator and history table across
// however many StartSearch calls a game needs; NewGame resets the parts
// that must not leak information between games.
type Search struct {
	log *oplogging.Logger

	gen  *movegen.Generator
	tt   *transpositiontable.Table
	eval *evaluator.Evaluator
	hist *history.History
	book Prober

	stats Statistics

	stopping  atomic.Bool
	nodeLimit uint64
	deadline  time.Time
	hasDeadline bool
}

// NewSearch builds a Search with its own transposition table (sized from
// config.Settings.Search.TTSizeMB) and evaluator.
func NewSearch(eval *evaluator.Evaluator) *Search {
	return &Search{
		log:  logging.GetSearchLog(),
		gen:  movegen.NewGenerator(),
		tt:   transpositiontable.New(config.Settings.Search.TTSizeMB),
		eval: eval,
		hist: history.NewHistory(),
	}
}

// SetBook installs (or clears, with nil) the opening book Probe hook.
func (s *Search) SetBook(book Prober) { s.book = book }

// NewGame clears the transposition table and history; called when the
// front-end starts a new game so stale entries from the previous one
// never leak in.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.hist = history.NewHistory()
}

// ClearHash empties the transposition table without touching history,
// for the UCI "Clear Hash" button option.
func (s *Search) ClearHash() { s.tt.Clear() }

// ResizeHash rebuilds the transposition table at sizeMB, for the UCI
// "Hash" spin option.
func (s *Search) ResizeHash(sizeMB int) { s.tt.Resize(sizeMB) }

// Stop sets the cooperative stop flag describes; the search
// polls it between nodes and unwinds to the last completed iteration.
func (s *Search) Stop() { s.stopping.Store(true) }

func (s *Search) checkStop() bool {
	if s.stopping.Load() {
		return true
	}
	if s.nodeLimit > 0 && s.stats.Nodes+s.stats.QNodes >= s.nodeLimit {
		return true
	}
	if s.hasDeadline && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// Statistics returns a snapshot of the counters from the most recent
// StartSearch call.
func (s *Search) Statistics() Statistics { return s.stats }

// StartSearch runs a synchronous iterative-deepening search on pos under
// limits and returns the best move found, per driver:
//
//	best ← null
//	for depth = 1, 2, 3, … while not timeUp and depth ≤ maxDepth:
//	    result ← search(root, depth, −∞, +∞)
//	    if not aborted: best ← result.bestMove; pv ← result.pv
//	    if |result.score| ≥ MATE − maxPly: break
//	return best
func (s *Search) StartSearch(pos *position.Position, limits Limits) Result {
	s.stopping.Store(false)
	s.stats = Statistics{}
	s.hist.Age()

	if config.Settings.Search.UseBook && s.book != nil {
		if m, ok := s.book.Probe(pos); ok {
			return Result{BestMove: m, PV: []Move{m}}
		}
	}

	s.nodeLimit = limits.Nodes
	s.hasDeadline = false
	if budget, ok := computeBudget(limits, pos.SideToMove()); ok {
		s.deadline = time.Now().Add(budget)
		s.hasDeadline = true
	}

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	var result Result
	for depth := 1; depth <= maxDepth; depth++ {
		value, aborted := s.search(pos, depth, 0, -ValueInfinite, ValueInfinite)
		if aborted {
			break
		}
		result.Depth = depth
		result.Score = value
		result.BestMove = s.rootBestMove(pos)
		result.PV = s.collectPV(pos, depth)
		if IsMateScore(value) {
			break
		}
		if s.checkStop() {
			break
		}
	}
	return result
}

// rootBestMove re-probes the table for the move stored at pos's current
// key, which the last completed iteration's root call just wrote.
func (s *Search) rootBestMove(pos *position.Position) Move {
	if e := s.tt.Probe(pos.ZobristKey()); e != nil {
		return e.Move()
	}
	return MoveNone
}

// collectPV walks the transposition table's best-move chain forward from
// pos, playing each stored move and looking up the next, up to maxLen
// plies or until a position repeats within the line (guards against a TT
// cycle producing an unbounded walk).
func (s *Search) collectPV(pos *position.Position, maxLen int) []Move {
	pv := make([]Move, 0, maxLen)
	seen := make(map[position.Key]bool, maxLen)
	played := 0
	for len(pv) < maxLen {
		e := s.tt.Probe(pos.ZobristKey())
		if e == nil || e.Move() == MoveNone {
			break
		}
		if seen[pos.ZobristKey()] {
			break
		}
		seen[pos.ZobristKey()] = true
		m := e.Move()
		var list moveslice.MoveList
		s.gen.Generate(pos, false, &list)
		if !list.Contains(m) {
			break
		}
		pos.DoMove(m)
		played++
		pv = append(pv, m)
	}
	for ; played > 0; played-- {
		pos.UndoMove()
	}
	return pv
}

// computeBudget derives a per-move time budget from limits:
// remainingTime / movesToGo (30 when not given) + increment - overhead,
// raised to 1ms if that comes out negative, or the fixed MoveTime when
// given verbatim. No aggressiveness factor scales the budget. Infinite/Ponder searches and
// depth/nodes-only limits return ok=false: no deadline.
func computeBudget(limits Limits, stm Color) (time.Duration, bool) {
	if limits.Infinite || limits.Ponder {
		return 0, false
	}
	if limits.MoveTime > 0 {
		return limits.MoveTime, true
	}
	if !limits.TimeControl {
		return 0, false
	}

	remaining, inc := limits.WhiteTime, limits.WhiteInc
	if stm == Black {
		remaining, inc = limits.BlackTime, limits.BlackInc
	}
	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	overhead := time.Duration(config.Settings.Search.MoveOverheadMs) * time.Millisecond

	budget := remaining/time.Duration(movesToGo) + inc - overhead
	if budget < 0 {
		budget = time.Millisecond
	}
	return budget, true
}
