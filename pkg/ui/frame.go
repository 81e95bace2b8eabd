package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const tabWidth = 4

// FrameStyle controls the glyphs of a framed block and the space kept between
// the vertical borders and the text.
type FrameStyle struct {
	Border  lipgloss.Border
	Padding int
}

func DefaultFrameStyle() FrameStyle {
	return FrameStyle{
		Border:  lipgloss.RoundedBorder(),
		Padding: 1,
	}
}

// Framer frames messages at the current terminal width. Width is called on
// every Frame, so a resize between two messages changes the second one.
type Framer struct {
	Style FrameStyle
	Width func() int
}

func NewFramer() *Framer {
	return &Framer{
		Style: DefaultFrameStyle(),
		Width: TerminalWidth,
	}
}

func (f *Framer) Frame(message string) string {
	width := DefaultWidth
	if f.Width != nil {
		width = f.Width()
	}
	return Frame(message, width, f.Style)
}

// Frame renders message as a bordered block that is width columns wide.
//
// The text is word wrapped to width-2-2*padding columns, long words are hard
// wrapped, and every content line is filled with spaces so that all lines of
// the block have the same visible width. An empty message yields a single
// empty content line.
func Frame(message string, width int, style FrameStyle) string {
	padding := style.Padding
	if padding < 0 {
		padding = 0
	}
	inner := width - 2 - 2*padding
	if inner < 1 {
		inner = 1
	}
	rule := inner + 2*padding
	b := style.Border
	pad := strings.Repeat(" ", padding)

	var sb strings.Builder
	sb.WriteString(b.TopLeft)
	sb.WriteString(strings.Repeat(b.Top, rule))
	sb.WriteString(b.TopRight)
	sb.WriteString("\n")

	for _, line := range wrapLines(message, inner) {
		fill := inner - ansi.PrintableRuneWidth(line)
		if fill < 0 {
			fill = 0
		}
		sb.WriteString(b.Left)
		sb.WriteString(pad)
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", fill))
		sb.WriteString(pad)
		sb.WriteString(b.Right)
		sb.WriteString("\n")
	}

	sb.WriteString(b.BottomLeft)
	sb.WriteString(strings.Repeat(b.Bottom, rule))
	sb.WriteString(b.BottomRight)

	return sb.String()
}

func wrapLines(message string, limit int) []string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.ReplaceAll(message, "\t", strings.Repeat(" ", tabWidth))

	wrapped := wrap.String(wordwrap.String(message, limit), limit)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
