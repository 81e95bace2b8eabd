package ui

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
	// MaxWidth caps framed blocks on wide terminals.
	MaxWidth = 100
)

// TerminalSize returns the size of the terminal attached to stdout, or 80x24
// if it can't be determined.
func TerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

func TerminalWidth() int {
	width, _ := TerminalSize()
	if width > MaxWidth {
		return MaxWidth
	}
	return width
}
