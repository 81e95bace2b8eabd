// Package prompt asks the user questions on a line based terminal.
//
// Structured questions (yes/no, pick an index) go through go-input, which loops
// until the answer validates. Free text is read line by line. Both share the
// same underlying reader, so scripted input can be fed through a plain io.Reader.
package prompt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tcnksm/go-input"
)

// ErrEndOfInput is returned once the input is exhausted, instead of re-prompting forever.
var ErrEndOfInput = errors.New("end of input")

type Prompter struct {
	ui    *input.UI
	lines *lineReader
	w     io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	lines := newLineReader(r)
	return &Prompter{
		ui: &input.UI{
			Writer: w,
			Reader: lines,
		},
		lines: lines,
		w:     w,
	}
}

// Confirm asks a yes/no question. An empty answer means yes.
func (p *Prompter) Confirm(query string) (bool, error) {
	answer, err := p.ui.Ask(query, &input.Options{
		Default:      "y",
		Required:     true,
		Loop:         true,
		ValidateFunc: validateYesNo,
	})
	if err != nil {
		return false, p.wrapErr(err)
	}

	return isYes(answer), nil
}

func validateYesNo(answer string) error {
	switch strings.TrimSpace(answer) {
	case "", "y", "Y", "n", "N":
		return nil
	default:
		return fmt.Errorf("please enter 'y' or 'n'")
	}
}

func isYes(answer string) bool {
	switch strings.TrimSpace(answer) {
	case "n", "N":
		return false
	default:
		return true
	}
}

// Choose lists options with a zero-based index and asks for one of them until
// the answer is a valid index.
func (p *Prompter) Choose(query string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}

	for i, option := range options {
		_, _ = fmt.Fprintf(p.w, "[%d], %s\n", i, option)
	}

	answer, err := p.ui.Ask(query, &input.Options{
		Required:     true,
		Loop:         true,
		ValidateFunc: indexValidator(len(options)),
	})
	if err != nil {
		return 0, p.wrapErr(err)
	}

	return parseIndex(answer, len(options))
}

func indexValidator(n int) func(string) error {
	return func(answer string) error {
		_, err := parseIndex(answer, n)
		return err
	}
}

func parseIndex(answer string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("invalid input, please enter a number")
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("invalid index %d, try again", idx)
	}
	return idx, nil
}

// ReadLine prints prefix and reads one line of free text.
func (p *Prompter) ReadLine(prefix string) (string, error) {
	if prefix != "" {
		_, _ = fmt.Fprint(p.w, prefix)
	}
	return p.lines.ReadLine()
}

func (p *Prompter) wrapErr(err error) error {
	if p.lines.Exhausted() {
		return ErrEndOfInput
	}
	return errors.Wrap(err, "could not read answer")
}
