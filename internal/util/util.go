// Package util holds small cross-cutting helpers shared by several
// packages: path resolution relative to the running executable, a
// debug-only assertion, and a locale-aware number formatter for search
// info lines.
package util

import (
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer formats large integers (node counts, NPS) with thousands
// separators via golang.org/x/text/message.
var Printer = message.NewPrinter(language.English)

// ResolveFile resolves path relative to the current working directory
// first, then relative to the running executable's directory, returning
// the first candidate that exists. If neither exists it returns the
// original (unresolved) path and the stat error for the cwd candidate.
func ResolveFile(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	exe, err := os.Executable()
	if err == nil {
		alt := filepath.Join(filepath.Dir(exe), path)
		if _, statErr := os.Stat(alt); statErr == nil {
			return alt, nil
		}
	}
	_, statErr := os.Stat(path)
	return path, statErr
}
