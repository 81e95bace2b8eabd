package conversation

// Package conversation holds the turn history of a chat session and persists it.
//
// A conversation is a linear list of messages (system, user, assistant). The
// Manager is the single owner of that list for the lifetime of a session: the
// model client appends to it after every exchange, and the session loads it from
// and saves it to the transcript file of the conversation.

// Manager defines the interface for high-level conversation management operations.
type Manager interface {
	GetConversation() Conversation
	AppendMessages(msgs ...*Message)
	SaveToFile(filename string) error
	LoadFromFile(filename string) error
}
