// Package logging is a thin wrapper around github.com/op/go-logging that
// reduces every call site to a single GetXxxLog() call. Each concern
// (standard, search, UCI protocol, test) gets its own *logging.Logger with
// its own backend, format and level so the search hot path can be muted
// independently of UCI traffic.
package logging

import (
	stdlog "log"
	"os"

	"github.com/op/go-logging"

	"github.com/kestrel-chess/kestrel/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger
	uciLog      *logging.Logger
	uciLogFile  *os.File

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-10.10s}:%{shortfile:-16.16s} %{level:-7.7s}:  %{message}`)
	uciFormat = logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
	uciLog = logging.MustGetLogger("uci")
}

// GetLog returns the standard logger, backed by stdout at
// config.Settings.Log.StandardLevel.
func GetLog() *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.Settings.Log.StandardLevel), "")
	standardLog.SetBackend(leveled)
	return standardLog
}

// GetSearchLog returns the search logger, backed by stdout at
// config.Settings.Log.SearchLevel. Kept separate from the standard logger
// so a verbose search trace does not drown out UCI/protocol messages.
func GetSearchLog() *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.Settings.Log.SearchLevel), "")
	searchLog.SetBackend(leveled)
	return searchLog
}

// GetTestLog returns a logger intended for use from _test.go files.
func GetTestLog() *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.Settings.Log.TestLevel), "")
	testLog.SetBackend(leveled)
	return testLog
}

// GetUCILog returns the UCI protocol logger. It always logs at DEBUG to
// stdout and additionally tees to ./logs/kestrel_uci.log when that file
// can be created.
func GetUCILog() *logging.Logger {
	stdoutBackend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix), uciFormat))
	stdoutBackend.SetLevel(logging.DEBUG, "")

	var err error
	uciLogFile, err = os.OpenFile("./logs/kestrel_uci.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		uciLog.SetBackend(stdoutBackend)
		return uciLog
	}
	fileBackend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(uciLogFile, "", stdlog.Lmsgprefix), uciFormat))
	fileBackend.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(logging.SetBackend(stdoutBackend, fileBackend))
	return uciLog
}
