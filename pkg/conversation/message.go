package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

func (r Role) Validate() error {
	switch r {
	case RoleSystem, RoleAssistant, RoleUser:
		return nil
	default:
		return errors.Errorf("unknown role %q", string(r))
	}
}

// Message is a single turn of a conversation.
type Message struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Time time.Time `json:"time" yaml:"time"`
	Role Role      `json:"role" yaml:"role"`
	Text string    `json:"text" yaml:"text"`

	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type MessageOption func(*Message)

func WithMetadata(metadata map[string]interface{}) MessageOption {
	return func(message *Message) {
		message.Metadata = metadata
	}
}

func WithTime(time time.Time) MessageOption {
	return func(message *Message) {
		message.Time = time
	}
}

func WithID(id uuid.UUID) MessageOption {
	return func(message *Message) {
		message.ID = id
	}
}

func NewChatMessage(role Role, text string, options ...MessageOption) *Message {
	ret := &Message{
		ID:   uuid.New(),
		Time: time.Now(),
		Role: role,
		Text: text,
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

func (m *Message) String() string {
	return m.Text
}

func (m *Message) View() string {
	return fmt.Sprintf("[%s]: %s", m.Role, strings.TrimRight(m.Text, "\n"))
}

type Conversation []*Message

// GetSinglePrompt concatenates all the messages together, each prefixed with its role.
func (messages Conversation) GetSinglePrompt() string {
	if len(messages) == 0 {
		return ""
	}
	if len(messages) == 1 {
		return messages[0].Text
	}

	var sb strings.Builder
	for _, message := range messages {
		sb.WriteString(message.View())
		sb.WriteString("\n")
	}
	return sb.String()
}
