// Package store keeps one transcript file per conversation in a flat directory.
//
// Files are named convo-<uuid>.txt, and the name is the only link between a
// conversation id and its transcript: resuming a conversation means listing the
// directory, letting the user pick a file, and decoding the id back out of its name.
package store

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	appName    = "gemini-chat"
	convosPath = "convos"
)

// Listing is a snapshot of candidate transcript paths, in presentation order.
type Listing []string

// Chooser asks the user to pick one of the given options and returns its zero-based index.
type Chooser interface {
	Choose(query string, options []string) (int, error)
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the platform local data directory joined with gemini-chat/convos.
func DefaultDir() (string, error) {
	if xdg.DataHome == "" {
		return "", errors.New("could not determine local data directory")
	}
	return filepath.Join(xdg.DataHome, appName, convosPath), nil
}

func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the store directory and its parents if they are missing.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrapf(err, "could not create conversation directory %s", s.dir)
	}
	return nil
}

// List returns the regular files in the store directory. It returns false if the
// directory can't be read or holds no regular files.
func (s *Store) List() (Listing, bool) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dir).Msg("Failed to read conversation directory")
		return nil, false
	}

	var ret Listing
	for _, entry := range entries {
		path := filepath.Join(s.dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		ret = append(ret, path)
	}

	log.Debug().Str("dir", s.dir).Int("count", len(ret)).Msg("Listed conversations")

	if len(ret) == 0 {
		return nil, false
	}
	return ret, true
}

func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// Select lets the user pick a conversation from the listing and decodes its id.
// A picked file whose name doesn't decode means the store was tampered with, and
// the error is not recoverable.
func (s *Store) Select(listing Listing, chooser Chooser) (string, uuid.UUID, error) {
	if len(listing) == 0 {
		return "", uuid.Nil, errors.New("no conversations to choose from")
	}

	idx, err := chooser.Choose("Enter valid index to choose convo:", listing)
	if err != nil {
		return "", uuid.Nil, err
	}
	if idx < 0 || idx >= len(listing) {
		return "", uuid.Nil, errors.Errorf("index %d out of range [0, %d)", idx, len(listing))
	}

	path := listing[idx]
	id, err := ParseFileName(filepath.Base(path))
	if err != nil {
		return "", uuid.Nil, errors.Wrapf(err, "corrupted conversation store at %s", s.dir)
	}

	log.Debug().Str("path", path).Str("conversation_id", id.String()).Msg("Selected conversation")

	return path, id, nil
}

// SavePath is the transcript path for the conversation with the given id.
func (s *Store) SavePath(id uuid.UUID) string {
	return filepath.Join(s.dir, FileName(id))
}
