package conversation

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type ManagerImpl struct {
	messages Conversation
}

var _ Manager = (*ManagerImpl)(nil)

type ManagerOption func(*ManagerImpl)

func WithMessages(messages ...*Message) ManagerOption {
	return func(m *ManagerImpl) {
		m.AppendMessages(messages...)
	}
}

func NewManager(options ...ManagerOption) *ManagerImpl {
	ret := &ManagerImpl{}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// GetConversation returns a copy of the message list.
func (c *ManagerImpl) GetConversation() Conversation {
	ret := make(Conversation, len(c.messages))
	copy(ret, c.messages)
	return ret
}

func (c *ManagerImpl) AppendMessages(messages ...*Message) {
	for _, msg := range messages {
		log.Trace().
			Str("message_id", msg.ID.String()).
			Str("role", string(msg.Role)).
			Int("length", len(msg.Text)).
			Msg("Appending message")
	}
	c.messages = append(c.messages, messages...)
}

// SaveToFile writes the conversation to filename as indented JSON.
func (c *ManagerImpl) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create transcript %s", filename)
	}

	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	msgs := c.messages
	if msgs == nil {
		msgs = Conversation{}
	}
	if err := encoder.Encode(msgs); err != nil {
		return errors.Wrapf(err, "could not write transcript %s", filename)
	}

	log.Debug().Str("file", filename).Int("messages", len(msgs)).Msg("Saved conversation")
	return nil
}

// LoadFromFile replaces the conversation with the messages stored in filename.
// Transcripts are written as JSON, but hand edited YAML transcripts are accepted too.
func (c *ManagerImpl) LoadFromFile(filename string) error {
	messages, err := LoadFromFile(filename)
	if err != nil {
		return err
	}
	c.messages = messages
	log.Debug().Str("file", filename).Int("messages", len(messages)).Msg("Loaded conversation")
	return nil
}

// LoadFromFile reads the messages of a transcript file.
func LoadFromFile(filename string) (Conversation, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read transcript %s", filename)
	}

	var messages Conversation
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return Conversation{}, nil
	case trimmed[0] == '[':
		err = json.Unmarshal(trimmed, &messages)
	default:
		err = yaml.Unmarshal(trimmed, &messages)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse transcript %s", filename)
	}

	for i, msg := range messages {
		if msg == nil {
			return nil, errors.Errorf("transcript %s: empty message at index %d", filename, i)
		}
		if err := msg.Role.Validate(); err != nil {
			return nil, errors.Wrapf(err, "transcript %s: message %d", filename, i)
		}
	}

	return messages, nil
}
