package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Console writes status lines and framed chat turns to the user.
type Console struct {
	w        io.Writer
	framer   *Framer
	markdown *glamour.TermRenderer
}

type ConsoleOption func(*Console) error

func WithFramer(f *Framer) ConsoleOption {
	return func(c *Console) error {
		c.framer = f
		return nil
	}
}

// WithMarkdown renders status lines as markdown. Only useful on a terminal.
func WithMarkdown() ConsoleOption {
	return func(c *Console) error {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(TerminalWidth()),
		)
		if err != nil {
			return errors.Wrap(err, "could not create markdown renderer")
		}
		c.markdown = r
		return nil
	}
}

func NewConsole(w io.Writer, options ...ConsoleOption) (*Console, error) {
	ret := &Console{
		w:      w,
		framer: NewFramer(),
	}
	for _, option := range options {
		if err := option(ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (c *Console) Writer() io.Writer {
	return c.w
}

// Info prints a status line.
func (c *Console) Info(text string) {
	if c.markdown != nil {
		out, err := c.markdown.Render(text)
		if err == nil {
			_, _ = fmt.Fprintln(c.w, strings.Trim(out, "\n"))
			return
		}
		log.Debug().Err(err).Msg("Could not render status as markdown")
	}
	_, _ = fmt.Fprintln(c.w, StatusStyle.Render(text))
}

func (c *Console) Infof(format string, args ...interface{}) {
	c.Info(fmt.Sprintf(format, args...))
}

func (c *Console) Errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(c.w, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Turn frames text and paints the whole block with style.
func (c *Console) Turn(style lipgloss.Style, text string) {
	block := c.framer.Frame(text)
	_, _ = fmt.Fprintf(c.w, "\n%s\n", style.Render(block))
}

func (c *Console) Banner(title string) {
	_, _ = fmt.Fprintln(c.w, bannerStyle.Render(title))
}
