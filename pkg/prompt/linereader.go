package prompt

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// lineReader hands out at most one line per Read call. go-input wraps its
// reader in a bufio.Reader; feeding it single lines keeps the remaining input
// available for the next question.
type lineReader struct {
	r         *bufio.Reader
	pending   []byte
	exhausted bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.next()
		if err != nil {
			return 0, err
		}
		l.pending = append([]byte(line), '\n')
	}

	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

// ReadLine returns the next line without its line ending.
func (l *lineReader) ReadLine() (string, error) {
	if len(l.pending) > 0 {
		rest := strings.TrimSuffix(string(l.pending), "\n")
		l.pending = nil
		return rest, nil
	}
	return l.next()
}

func (l *lineReader) Exhausted() bool {
	return l.exhausted && len(l.pending) == 0
}

func (l *lineReader) next() (string, error) {
	if l.exhausted {
		return "", ErrEndOfInput
	}

	line, err := l.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", errors.Wrap(err, "failed to read input")
		}
		l.exhausted = true
		if line == "" {
			return "", ErrEndOfInput
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}
