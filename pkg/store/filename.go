package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	fileNamePrefix = "convo-"
	fileNameSuffix = ".txt"
)

// ErrFormat is returned when a file name does not follow the convo-<uuid>.txt convention.
var ErrFormat = errors.New("malformed conversation file name")

// FileName returns the on-disk name of the conversation with the given id.
func FileName(id uuid.UUID) string {
	return fileNamePrefix + id.String() + fileNameSuffix
}

// ParseFileName recovers the conversation id from a file name produced by FileName.
// Only the canonical 36 character form is accepted between the prefix and the suffix.
func ParseFileName(name string) (uuid.UUID, error) {
	rest, ok := strings.CutPrefix(name, fileNamePrefix)
	if !ok {
		return uuid.Nil, errors.Wrapf(ErrFormat, "%q is missing prefix %q", name, fileNamePrefix)
	}
	middle, ok := strings.CutSuffix(rest, fileNameSuffix)
	if !ok {
		return uuid.Nil, errors.Wrapf(ErrFormat, "%q is missing suffix %q", name, fileNameSuffix)
	}
	if len(middle) != 36 {
		return uuid.Nil, errors.Wrapf(ErrFormat, "%q does not contain a canonical uuid", name)
	}
	id, err := uuid.Parse(middle)
	if err != nil {
		return uuid.Nil, errors.Wrapf(ErrFormat, "%q: %v", name, err)
	}

	return id, nil
}
