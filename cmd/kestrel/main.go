// Command kestrel is the UCI front-end binary: it wires config/logging
// setup, optional CPU profiling, and perft/startup diagnostics around
// internal/uci's stdin/stdout command loop. The flag surface is trimmed
// to what this module's feature set actually supports (no testsuite
// runner, no nps harness).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"

	"github.com/kestrel-chess/kestrel/internal/config"
	"github.com/kestrel-chess/kestrel/internal/logging"
	"github.com/kestrel-chess/kestrel/internal/movegen"
	"github.com/kestrel-chess/kestrel/internal/position"
	"github.com/kestrel-chess/kestrel/internal/uci"
)

const version = "0.1.0"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	bookFile := flag.String("bookfile", "", "opening book file (overrides config.toml)")
	bookFormat := flag.String("bookformat", "", "opening book format: simple|san|pgn (overrides config.toml)")
	perftDepth := flag.Int("perft", 0, "run perft to the given depth on -fen (or the start position) and exit")
	fen := flag.String("fen", "", "FEN for -perft; defaults to the start position")
	cpuProfile := flag.Bool("cpuprofile", false, "enable CPU profiling for this process, written to ./cpu.pprof")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	config.ConfFile = *configFile
	config.Setup()
	if *bookFile != "" {
		config.Settings.Search.BookFile = *bookFile
	}
	if *bookFormat != "" {
		config.Settings.Search.BookFormat = *bookFormat
	}
	logging.GetLog()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *perftDepth > 0 {
		runPerft(*perftDepth, *fen)
		return
	}

	printBanner(version)

	h := uci.NewHandler()
	h.DebugRender = renderBoard
	h.Loop()
}

func runPerft(depth int, fen string) {
	pos := position.NewPosition()
	if fen != "" {
		p, err := position.NewPositionFromFEN(fen)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad FEN:", err)
			os.Exit(1)
		}
		pos = p
	}
	for d := 1; d <= depth; d++ {
		nodes := movegen.Perft(pos, d)
		fmt.Printf("perft(%d) = %d\n", d, nodes)
	}
}

func printVersionInfo() {
	fmt.Printf("Kestrel %s\n", version)
	fmt.Println("Environment:")
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  %s/%s, %d CPUs\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
}
