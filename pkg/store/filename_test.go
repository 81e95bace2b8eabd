package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNameRoundTrip(t *testing.T) {
	ids := []uuid.UUID{
		uuid.Nil,
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff"),
	}
	for i := 0; i < 50; i++ {
		ids = append(ids, uuid.New())
	}

	for _, id := range ids {
		name := FileName(id)
		got, err := ParseFileName(name)
		require.NoError(t, err, name)
		assert.Equal(t, id, got)
	}
}

func TestFileNameFormat(t *testing.T) {
	id := uuid.MustParse("0b5e7a4c-2f0e-4d43-9b6f-3f9a4c1d2e10")
	assert.Equal(t, "convo-0b5e7a4c-2f0e-4d43-9b6f-3f9a4c1d2e10.txt", FileName(id))
}

func TestParseFileNameRejectsMalformedNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing prefix", "11111111-1111-1111-1111-111111111111.txt"},
		{"wrong prefix", "chat-11111111-1111-1111-1111-111111111111.txt"},
		{"missing suffix", "convo-11111111-1111-1111-1111-111111111111"},
		{"wrong suffix", "convo-11111111-1111-1111-1111-111111111111.json"},
		{"only affixes", "convo-.txt"},
		{"not a uuid", "convo-hello.txt"},
		{"bad hex", "convo-1111111g-1111-1111-1111-111111111111.txt"},
		{"truncated", "convo-11111111-1111-1111-1111-11111111111.txt"},
		{"braced", "convo-{11111111-1111-1111-1111-111111111111}.txt"},
		{"urn", "convo-urn:uuid:11111111-1111-1111-1111-111111111111.txt"},
		{"no hyphens", "convo-11111111111111111111111111111111.txt"},
		{"dotfile", ".DS_Store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseFileName(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "expected ErrFormat, got %v", err)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}
