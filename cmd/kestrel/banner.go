package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5FD7FF")).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5FD7FF"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// printBanner writes a one-time styled startup banner to stdout before the
// UCI loop takes over stdin/stdout for protocol framing. Purely cosmetic:
// no TUI event loop, no further lipgloss rendering once the engine is
// talking UCI.
func printBanner(version string) {
	fmt.Println(bannerStyle.Render(fmt.Sprintf("Kestrel %s", version)))
	fmt.Println(dimStyle.Render("UCI chess engine, send 'uci' to begin"))
}
