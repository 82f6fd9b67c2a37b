// Package config holds the process-wide configuration read from
// config.toml, falling back to compiled-in defaults via BurntSushi/toml,
// an idempotent Setup, and a package-level Settings global.
package config

import (
	"log"

	"github.com/BurntSushi/toml"

	"github.com/kestrel-chess/kestrel/internal/util"
)

// ConfFile is the path to the config file, relative to the working
// directory, and may be overridden before calling Setup (e.g. from a
// command-line flag).
var ConfFile = "./config.toml"

// Settings is the global, read-after-Setup configuration.
var Settings = defaults()

var initialized = false

type logSection struct {
	StandardLevel int
	SearchLevel   int
	TestLevel     int
}

type searchSection struct {
	TTSizeMB         int
	UseBook          bool
	BookFile         string
	BookFormat       string
	UseSEE           bool
	UseQuiescence    bool
	MoveOverheadMs   int
	MaxDepth         int
	AspirationWindow int
}

type evalSection struct {
	PawnValue       int
	KnightValue     int
	BishopValue     int
	RookValue       int
	QueenValue      int
	BishopPairBonus int
	UsePawnCache    bool
	PawnCacheSizeMB int
	PSTFileOpening  string
	PSTFileEndgame  string

	PawnDoubledMidMalus  int
	PawnDoubledEndMalus  int
	PawnIsolatedMidMalus int
	PawnIsolatedEndMalus int
	PawnPhalanxMidBonus  int
	PawnPhalanxEndBonus  int

	PassedPawnMidBonus        int
	PassedPawnEndBonus        int
	PassedPawnKingDistBonus   int
	PassedPawnEnemyKingMalus  int

	CenterPawnBonus  int
	CenterAttackBonus int

	KingShieldPawnBonus    int
	KingOpenFileMalus      int
	KingSemiOpenFileMalus  int
	KingTropismWeight      [6]int
}

type conf struct {
	Log    logSection
	Search searchSection
	Eval   evalSection
}

func defaults() conf {
	return conf{
		Log: logSection{StandardLevel: 5, SearchLevel: 5, TestLevel: 5},
		Search: searchSection{
			TTSizeMB:         64,
			UseBook:          true,
			BookFile:         "./assets/book/book.txt",
			BookFormat:       "simple",
			UseSEE:           true,
			UseQuiescence:    true,
			MoveOverheadMs:   30,
			MaxDepth:         64,
			AspirationWindow: 25,
		},
		Eval: evalSection{
			PawnValue:       100,
			KnightValue:     300,
			BishopValue:     330,
			RookValue:       500,
			QueenValue:      900,
			BishopPairBonus: 40,
			UsePawnCache:    true,
			PawnCacheSizeMB: 16,
			PSTFileOpening:  "./assets/pst/opening.txt",
			PSTFileEndgame:  "./assets/pst/endgame.txt",

			PawnDoubledMidMalus:  -10,
			PawnDoubledEndMalus:  -25,
			PawnIsolatedMidMalus: -10,
			PawnIsolatedEndMalus: -20,
			PawnPhalanxMidBonus:  4,
			PawnPhalanxEndBonus:  4,

			PassedPawnMidBonus:       10,
			PassedPawnEndBonus:       30,
			PassedPawnKingDistBonus:  4,
			PassedPawnEnemyKingMalus: 4,

			CenterPawnBonus:   15,
			CenterAttackBonus: 3,

			KingShieldPawnBonus:   12,
			KingOpenFileMalus:     25,
			KingSemiOpenFileMalus: 12,
			KingTropismWeight:     [6]int{0, 2, 2, 3, 4, 0},
		},
	}
}

// Setup reads ConfFile into Settings, falling back silently (with a
// logged warning) to defaults when the file is absent or malformed. Like
// config.Setup, it is idempotent.
func Setup() {
	if initialized {
		return
	}
	path, _ := util.ResolveFile(ConfFile)
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("config: file not found or invalid, using defaults:", err)
	}
	initialized = true
}
