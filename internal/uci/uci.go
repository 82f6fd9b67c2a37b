// Package uci implements the UCI-style front-end search control surface:
// a stdin/stdout command loop that owns the game Position and a Search,
// dispatching "position"/"go"/"stop"/"setoption" and the handful of
// neighboring commands a UCI GUI sends. Shaped as a command-dispatch
// table, with command bodies calling this module's own
// position/search/movegen/openingbook packages.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	oplogging "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/evaluator"
	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/openingbook"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/kestrel-chess/kestrel/internal/search"
	. "github.com/kestrel-chess/kestrel/internal/types"
)

var out = message.NewPrinter(language.English)
var log = logging.GetLog()

// Handler owns the game position and the engine's Search across however
// many commands a UCI session sends; one Handler per engine process.
type Handler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer
	outMu sync.Mutex

	gen    *movegen.Generator
	srch   *search.Search
	pos    *position.Position
	book   *openingbook.Book
	uciLog *oplogging.Logger

	searching atomic.Bool

	// DebugRender, if set, backs the non-standard "d"/"board" debug
	// command with a human-readable board dump. cmd/kestrel installs a
	// colorized renderer; left nil, the commands are simply unavailable.
	DebugRender func(*position.Position) string
}

// NewHandler builds a ready-to-run Handler reading stdin and writing
// stdout, with a fresh Search/Position and, if config.Settings.Search
// enables it, a loaded opening book.
func NewHandler() *Handler {
	eval, err := evaluator.NewEvaluator()
	if err != nil {
		log.Errorf("uci: evaluator init failed: %v", err)
	}
	h := &Handler{
		InIo:   bufio.NewScanner(os.Stdin),
		OutIo:  bufio.NewWriter(os.Stdout),
		gen:    movegen.NewGenerator(),
		srch:   search.NewSearch(eval),
		pos:    position.NewPosition(),
		uciLog: logging.GetUCILog(),
	}
	h.InIo.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if config.Settings.Search.UseBook {
		h.loadBook()
	}
	return h
}

func (h *Handler) loadBook() {
	h.book = openingbook.New()
	format := openingbook.ParseBookFormat(config.Settings.Search.BookFormat)
	if err := h.book.Initialize(config.Settings.Search.BookFile, format, true, false); err != nil {
		log.Warningf("uci: opening book not loaded: %v", err)
		h.book = nil
		return
	}
	h.srch.SetBook(h.book)
}

// Loop reads commands from InIo until "quit" or EOF.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		if h.dispatch(h.InIo.Text()) {
			return
		}
	}
}

// Command runs a single line through the dispatcher and returns whatever
// it wrote to OutIo, for tests and debugging without a real stdin/stdout.
func (h *Handler) Command(cmd string) string {
	saved := h.OutIo
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.dispatch(cmd)
	_ = h.OutIo.Flush()
	h.OutIo = saved
	return buf.String()
}

var whitespace = regexp.MustCompile(`\s+`)

// dispatch handles one command line, returning true iff it was "quit".
func (h *Handler) dispatch(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	h.uciLog.Infof("<< %s", cmd)
	tokens := whitespace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		h.uciCommand()
	case "isready":
		h.send("readyok")
	case "ucinewgame":
		h.pos = position.NewPosition()
		h.srch.NewGame()
	case "setoption":
		h.setOptionCommand(tokens)
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.srch.Stop()
	case "ponderhit":
		// Only acknowledged: the running search's limits are not changed,
		// so a search started with "go ponder" keeps running without a
		// deadline until "stop".
		h.sendInfoString("ponderhit acknowledged")
	case "d", "board":
		h.debugBoardCommand()
	case "debug", "register":
		// Accepted, intentionally inert: no debug-log toggle or
		// registration gate exists in this engine.
	default:
		log.Warningf("uci: unknown command %q", cmd)
	}
	return false
}

func (h *Handler) debugBoardCommand() {
	if h.DebugRender == nil {
		h.sendInfoString("no debug renderer installed")
		return
	}
	h.send(h.DebugRender(h.pos))
}

func (h *Handler) uciCommand() {
	h.send("id name Kestrel")
	h.send("id author the Kestrel authors")
	for _, line := range optionLines() {
		h.send(line)
	}
	h.send("uciok")
}

func (h *Handler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		h.sendInfoString("setoption malformed")
		return
	}
	i := 2
	var nameParts []string
	for i < len(tokens) && tokens[i] != "value" {
		nameParts = append(nameParts, tokens[i])
		i++
	}
	name := strings.Join(nameParts, " ")
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	h.applyOption(name, value)
}

func (h *Handler) applyOption(name, value string) {
	switch name {
	case "Clear Hash":
		h.srch.ClearHash()
	case "Hash", "HashMB":
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Warningf("uci: setoption %s: %v", name, err)
			return
		}
		config.Settings.Search.TTSizeMB = n
		h.srch.ResizeHash(n)
	case "Ponder":
		// No persisted flag: ponder mode is a per-go limit, read fresh
		// from the "go ... ponder" token each search.
	case "MoveOverhead":
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Warningf("uci: setoption %s: %v", name, err)
			return
		}
		config.Settings.Search.MoveOverheadMs = n
	case "MultiPV", "Threads":
		if value != "1" {
			log.Warningf("uci: setoption %s: only the value 1 is supported", name)
		}
	case "Use_Book":
		v, err := strconv.ParseBool(value)
		if err != nil {
			log.Warningf("uci: setoption %s: %v", name, err)
			return
		}
		config.Settings.Search.UseBook = v
		if v && h.book == nil {
			h.loadBook()
		}
	default:
		h.sendInfoString(out.Sprintf("no such option %q", name))
	}
}

func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.sendInfoString("position malformed")
		return
	}
	i := 1
	var pos *position.Position
	switch tokens[i] {
	case "startpos":
		pos = position.NewPosition()
		i++
	case "fen":
		i++
		var fen []string
		for i < len(tokens) && tokens[i] != "moves" {
			fen = append(fen, tokens[i])
			i++
		}
		p, err := position.NewPositionFromFEN(strings.Join(fen, " "))
		if err != nil {
			h.sendInfoString(out.Sprintf("bad FEN: %v", err))
			return
		}
		pos = p
	default:
		h.sendInfoString("position malformed: expected startpos or fen")
		return
	}

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m, ok := movegen.MoveFromUCI(pos, tokens[i])
			if !ok {
				h.sendInfoString(out.Sprintf("illegal move %q", tokens[i]))
				return
			}
			pos.DoMove(m)
		}
	}
	h.pos = pos
}

func (h *Handler) goCommand(tokens []string) {
	limits, ok := parseGoLimits(tokens)
	if !ok {
		return
	}
	if !h.searching.CompareAndSwap(false, true) {
		h.sendInfoString("search already in progress")
		return
	}
	pos := h.pos
	go func() {
		result := h.srch.StartSearch(pos, limits)
		h.searching.Store(false)
		h.sendResult(result.BestMove)
	}()
}

func (h *Handler) sendResult(best Move) {
	if best == MoveNone {
		h.send("bestmove 0000")
		return
	}
	h.send("bestmove " + best.StringUci())
}

func parseGoLimits(tokens []string) (search.Limits, bool) {
	var limits search.Limits
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
			i++
		case "ponder":
			limits.Ponder = true
			i++
		case "depth":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.Depth = n
			i++
		case "nodes":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.Nodes = uint64(n)
			i++
		case "movetime":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.MoveTime = time.Duration(n) * time.Millisecond
			limits.TimeControl = true
			i++
		case "wtime":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.WhiteTime = time.Duration(n) * time.Millisecond
			limits.TimeControl = true
			i++
		case "btime":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.BlackTime = time.Duration(n) * time.Millisecond
			limits.TimeControl = true
			i++
		case "winc":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.WhiteInc = time.Duration(n) * time.Millisecond
			i++
		case "binc":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.BlackInc = time.Duration(n) * time.Millisecond
			i++
		case "movestogo":
			i++
			n, err := intArg(tokens, i)
			if err != nil {
				return limits, false
			}
			limits.MovesToGo = n
			i++
		default:
			// Unrecognized go sub-token ("searchmoves", "mate", ...): skip
			// it rather than abort the whole command.
			i++
		}
	}
	return limits, true
}

func intArg(tokens []string, i int) (int, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(tokens[i])
}

func (h *Handler) sendInfoString(s string) {
	h.send("info string " + s)
	log.Warning(s)
}

func (h *Handler) send(s string) {
	h.uciLog.Infof(">> %s", s)
	h.outMu.Lock()
	defer h.outMu.Unlock()
	_, _ = h.OutIo.WriteString(s + "\n")
	_ = h.OutIo.Flush()
}
