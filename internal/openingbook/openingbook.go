// Package openingbook implements opening-book lookup, deliberately
// limited to "no policy decisions beyond the interface that exposes a
// book move when present". Book loads a move-graph from disk in one of
// three line formats (Simple, SAN, PGN), caches it as gob on disk, and
// exposes only Probe, which internal/search.Search consumes through its
// Prober interface.
//
// Shaped as a Zobrist-keyed map of BookEntry nodes built by replaying
// each game's moves over a scratch position, one entry per reachable
// position and one Successor per move played from it. Parsing fans out
// across input lines with golang.org/x/sync/errgroup rather than a raw
// sync.WaitGroup goroutine-per-shard split.
package openingbook

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/position"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

// BookFormat identifies the on-disk line format Initialize parses.
type BookFormat uint8

// The three supported formats.
const (
	Simple BookFormat = iota
	San
	Pgn
)

// ParseBookFormat maps config.Settings.Search.BookFormat's string value to
// a BookFormat, defaulting to Simple for an unrecognized string.
func ParseBookFormat(s string) BookFormat {
	switch strings.ToLower(s) {
	case "san":
		return San
	case "pgn":
		return Pgn
	default:
		return Simple
	}
}

// Successor is one move out of a BookEntry: the move itself, the Zobrist
// key of the position it leads to, and how many source games played it
// from here (used to weight Probe's random choice).
type Successor struct {
	Move    Move
	NextKey position.Key
	Count   int
}

// BookEntry is one reachable position in the book graph: how many games
// passed through it and every move any of those games played next.
type BookEntry struct {
	Key     position.Key
	Counter int
	Moves   []Successor
}

// Book is a Zobrist-keyed opening move graph loaded from a game
// collection. The zero value is usable but empty; call Initialize to
// populate it.
type Book struct {
	mu       sync.Mutex
	entries  map[position.Key]BookEntry
	rootKey  position.Key
	gen      *movegen.Generator
	rng      *rand.Rand
	loaded   bool
}

// New returns an empty, ready-to-use Book.
func New() *Book {
	return &Book{
		entries: make(map[position.Key]BookEntry),
		gen:     movegen.NewGenerator(),
		rng:     rand.New(rand.NewSource(1)),
	}
}

// NumberOfEntries reports how many distinct positions the book covers.
func (b *Book) NumberOfEntries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Reset discards all loaded entries.
func (b *Book) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[position.Key]BookEntry)
	b.loaded = false
}

// cacheEnvelope is what gob persists: the format the source file was
// parsed as, so a stale cache built from a different format is detected
// and discarded rather than silently misread.
type cacheEnvelope struct {
	Format  BookFormat
	Entries map[position.Key]BookEntry
	RootKey position.Key
}

// Initialize loads bookPath as format, building the move graph in
// memory. When useCache is true it first tries bookPath+".cache" (a gob
// dump of a prior parse of the same format) and falls back to parsing
// the source file only on a cache miss or recreateCache; a fresh parse
// is written back to the cache file afterward.
func (b *Book) Initialize(bookPath string, format BookFormat, useCache, recreateCache bool) error {
	log := logging.GetLog()
	cachePath := bookPath + ".cache"

	if useCache && !recreateCache {
		if err := b.loadFromCache(cachePath, format); err == nil {
			log.Infof("openingbook: loaded %d entries from cache %s", b.NumberOfEntries(), cachePath)
			return nil
		}
	}

	lines, err := readLines(bookPath)
	if err != nil {
		return fmt.Errorf("openingbook: reading %s: %w", bookPath, err)
	}

	b.mu.Lock()
	b.entries = make(map[position.Key]BookEntry)
	root := position.NewPosition()
	b.rootKey = root.ZobristKey()
	b.mu.Unlock()

	if err := b.process(lines, format); err != nil {
		return err
	}
	b.loaded = true

	if useCache {
		if err := b.saveToCache(cachePath, format); err != nil {
			log.Warningf("openingbook: writing cache %s: %v", cachePath, err)
		}
	}
	log.Infof("openingbook: parsed %d games into %d entries from %s", len(lines), b.NumberOfEntries(), bookPath)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func (b *Book) loadFromCache(cachePath string, format BookFormat) error {
	f, err := os.Open(cachePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var env cacheEnvelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return err
	}
	if env.Format != format {
		return fmt.Errorf("openingbook: cache format mismatch")
	}
	b.mu.Lock()
	b.entries = env.Entries
	b.rootKey = env.RootKey
	b.mu.Unlock()
	b.loaded = true
	return nil
}

func (b *Book) saveToCache(cachePath string, format BookFormat) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(cachePath)
	if err != nil {
		return err
	}
	defer f.Close()

	b.mu.Lock()
	env := cacheEnvelope{Format: format, Entries: b.entries, RootKey: b.rootKey}
	b.mu.Unlock()
	return gob.NewEncoder(f).Encode(env)
}

// process fans lines out across an errgroup, one goroutine per line,
// each replaying its game over a private scratch position and merging
// its moves into the shared book graph under addToBook's mutex. A line
// that fails to tokenize is skipped silently, and a game stops at its
// first unresolvable move, rather than aborting the whole load: one
// malformed game record should not sink the book.
func (b *Book) process(lines []string, format BookFormat) error {
	var g errgroup.Group
	g.SetLimit(8)

	for _, raw := range lines {
		line := raw
		g.Go(func() error {
			moves, err := tokenizeLine(line, format)
			if err != nil || len(moves) == 0 {
				return nil
			}
			b.playLine(moves)
			return nil
		})
	}
	return g.Wait()
}

// playLine replays one game's move tokens over a fresh position,
// resolving each token (UCI or SAN) against the legal move list at that
// point, and records every position/move pair it passes through.
func (b *Book) playLine(tokens []string) {
	pos := position.NewPosition()
	cur := pos.ZobristKey()

	for _, tok := range tokens {
		m, ok := resolveToken(b.gen, pos, tok)
		if !ok {
			return
		}
		pos.DoMove(m)
		next := pos.ZobristKey()
		b.addToBook(cur, m, next)
		cur = next
	}
}

func resolveToken(gen *movegen.Generator, pos *position.Position, tok string) (Move, bool) {
	if m, ok := movegen.MoveFromUCI(pos, tok); ok {
		return m, ok
	}
	return parseSAN(gen, pos, tok)
}

func (b *Book) addToBook(from position.Key, m Move, to position.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := b.entries[from]
	entry.Key = from
	entry.Counter++
	found := false
	for i := range entry.Moves {
		if entry.Moves[i].Move == m {
			entry.Moves[i].Count++
			found = true
			break
		}
	}
	if !found {
		entry.Moves = append(entry.Moves, Successor{Move: m, NextKey: to, Count: 1})
	}
	b.entries[from] = entry

	toEntry := b.entries[to]
	toEntry.Key = to
	b.entries[to] = toEntry
}

// GetEntry returns the book entry at key, if any.
func (b *Book) GetEntry(key position.Key) (BookEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	return e, ok
}

// Probe implements internal/search.Prober: it looks up pos's current
// Zobrist key and, if the book has successors from it, picks one move
// weighted by how often games in the source collection played it.
func (b *Book) Probe(pos *position.Position) (Move, bool) {
	if !b.loaded {
		return MoveNone, false
	}
	entry, ok := b.GetEntry(pos.ZobristKey())
	if !ok || len(entry.Moves) == 0 {
		return MoveNone, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return pickWeightedMove(b.rng, entry.Moves), true
}

// pickWeightedMove draws one move with probability proportional to its
// Count, falling back to a uniform draw when every successor has a zero
// count (an older cache loaded before Count was tracked).
func pickWeightedMove(rng *rand.Rand, moves []Successor) Move {
	total := 0
	for _, s := range moves {
		total += s.Count
	}
	if total == 0 {
		return moves[rng.Intn(len(moves))].Move
	}
	r := rng.Intn(total)
	for _, s := range moves {
		r -= s.Count
		if r < 0 {
			return s.Move
		}
	}
	return moves[len(moves)-1].Move
}

var (
	tokenSplitter = regexp.MustCompile(`\s+`)
	moveNumber    = regexp.MustCompile(`^\d+\.+`)
	pgnTag        = regexp.MustCompile(`^\[.*\]$`)
	pgnResult     = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)$`)
	annotation    = regexp.MustCompile(`[!?]+$`)
)

// tokenizeLine splits one input line into move tokens, stripping move
// numbers, PGN tags/results, and trailing annotation glyphs ("e4!",
// "Nf3?!"). Simple and San format both use this; Pgn additionally drops
// brace comments before splitting.
func tokenizeLine(line string, format BookFormat) ([]string, error) {
	if format == Pgn {
		line = stripBraceComments(line)
	}
	fields := tokenSplitter.Split(strings.TrimSpace(line), -1)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || pgnTag.MatchString(f) || pgnResult.MatchString(f) {
			continue
		}
		f = moveNumber.ReplaceAllString(f, "")
		f = annotation.ReplaceAllString(f, "")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens, nil
}

func stripBraceComments(s string) string {
	var out strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}
