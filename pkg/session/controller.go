// Package session runs one interactive chat session, from choosing between a
// new and a stored conversation to saving the transcript on exit.
package session

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/gemini-chat/pkg/prompt"
	"github.com/go-go-golems/gemini-chat/pkg/store"
	"github.com/go-go-golems/gemini-chat/pkg/ui"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type State int

const (
	StateStart State = iota
	StateNewSession
	StateResumeSession
	StateChatting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateNewSession:
		return "new-session"
	case StateResumeSession:
		return "resume-session"
	case StateChatting:
		return "chatting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	exitCommand = "exit"
	Greeting    = "Hi👋 I'm Gemini. How can I help you today? (type 'exit' to leave)"
)

// Chatter is the model side of the conversation. It keeps the turn history and
// can persist it to a transcript file.
type Chatter interface {
	Prompt(ctx context.Context, text string) (string, error)
	Load(path string) error
	Save(path string) error
}

// Prompter reads the user's answers.
type Prompter interface {
	store.Chooser
	Confirm(query string) (bool, error)
	ReadLine(prefix string) (string, error)
}

// Console shows status lines and chat turns.
type Console interface {
	Info(text string)
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Turn(style lipgloss.Style, text string)
}

type Controller struct {
	store    *store.Store
	chatter  Chatter
	prompter Prompter
	console  Console

	newID func() uuid.UUID

	state State
	// id is only set once a conversation has been started or resumed.
	id       *uuid.UUID
	savePath string
}

type Option func(*Controller)

// WithIDGenerator replaces uuid.New for minting conversation ids.
func WithIDGenerator(f func() uuid.UUID) Option {
	return func(c *Controller) {
		c.newID = f
	}
}

func NewController(
	s *store.Store,
	chatter Chatter,
	prompter Prompter,
	console Console,
	options ...Option,
) *Controller {
	ret := &Controller{
		store:    s,
		chatter:  chatter,
		prompter: prompter,
		console:  console,
		newID:    uuid.New,
		state:    StateStart,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (c *Controller) State() State {
	return c.state
}

// ConversationID returns the active conversation id, if any.
func (c *Controller) ConversationID() (uuid.UUID, bool) {
	if c.id == nil {
		return uuid.Nil, false
	}
	return *c.id, true
}

// SavePath is the transcript path written when the session closed.
func (c *Controller) SavePath() string {
	return c.savePath
}

// Run drives the session until the user leaves. Errors returned before the
// chat starts (unreadable answers, a corrupted store, an unloadable transcript)
// end the session without saving anything.
func (c *Controller) Run(ctx context.Context) error {
	for c.state != StateClosed {
		var next State
		var err error

		switch c.state {
		case StateStart:
			next, err = c.start()
		case StateNewSession:
			next, err = c.newSession()
		case StateResumeSession:
			next, err = c.resumeSession()
		case StateChatting:
			next, err = c.chat(ctx)
		default:
			return errors.Errorf("invalid session state %d", c.state)
		}
		if err != nil {
			return errors.Wrapf(err, "session failed in state %s", c.state)
		}

		log.Debug().Str("from", c.state.String()).Str("to", next.String()).Msg("Session transition")
		c.state = next
	}

	return c.close()
}

func (c *Controller) start() (State, error) {
	c.console.Info("Would you like to create a new conversation? (Y/n)")
	yes, err := c.prompter.Confirm("")
	if err != nil {
		return StateStart, err
	}
	if yes {
		return StateNewSession, nil
	}
	return StateResumeSession, nil
}

func (c *Controller) newSession() (State, error) {
	c.console.Info("Starting a new conversation...")
	c.mintID()
	return StateChatting, nil
}

func (c *Controller) resumeSession() (State, error) {
	c.console.Info("Continuing with existing conversations...")

	listing, ok := c.store.List()
	if !ok {
		c.console.Infof("No old convos found in %s", c.store.Dir())
		c.console.Info("Creating new conversation...")
		c.mintID()
		return StateChatting, nil
	}

	path, id, err := c.store.Select(listing, c.prompter)
	if err != nil {
		return StateResumeSession, err
	}
	c.console.Infof("You selected: %s", path)

	if err := c.chatter.Load(path); err != nil {
		return StateResumeSession, errors.Wrapf(err, "could not load conversation %s", id)
	}
	c.id = &id

	return StateChatting, nil
}

func (c *Controller) chat(ctx context.Context) (State, error) {
	c.console.Turn(ui.AssistantStyle, Greeting)

	for {
		line, err := c.prompter.ReadLine("")
		if err != nil {
			if errors.Is(err, prompt.ErrEndOfInput) {
				return StateClosed, nil
			}
			return StateChatting, err
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, exitCommand) {
			return StateClosed, nil
		}
		if line == "" {
			continue
		}

		c.console.Turn(ui.UserStyle, line)

		reply, err := c.chatter.Prompt(ctx, line)
		if err != nil {
			log.Error().Err(err).Msg("Prompt failed")
			c.console.Errorf("Could not get a reply: %v", err)
			continue
		}

		c.console.Turn(ui.AssistantStyle, reply)
	}
}

func (c *Controller) close() error {
	if c.id == nil {
		c.mintID()
	}

	path := c.store.SavePath(*c.id)
	if err := c.chatter.Save(path); err != nil {
		return errors.Wrapf(err, "could not save conversation %s", c.id.String())
	}
	c.savePath = path
	c.console.Infof("Conversation saved in: %s", path)

	return nil
}

func (c *Controller) mintID() {
	id := c.newID()
	c.id = &id
	log.Debug().Str("conversation_id", id.String()).Msg("Started conversation")
}
