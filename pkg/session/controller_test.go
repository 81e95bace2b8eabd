package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-go-golems/gemini-chat/pkg/conversation"
	"github.com/go-go-golems/gemini-chat/pkg/prompt"
	"github.com/go-go-golems/gemini-chat/pkg/store"
	"github.com/go-go-golems/gemini-chat/pkg/ui"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoChatter replies with the prompt in upper case and keeps a real transcript.
type echoChatter struct {
	manager *conversation.ManagerImpl
	prompts []string
	loaded  []string
	failOn  string
}

func newEchoChatter() *echoChatter {
	return &echoChatter{manager: conversation.NewManager()}
}

func (e *echoChatter) Prompt(ctx context.Context, text string) (string, error) {
	e.prompts = append(e.prompts, text)
	if text == e.failOn {
		return "", errors.New("model unavailable")
	}
	reply := strings.ToUpper(text)
	e.manager.AppendMessages(
		conversation.NewChatMessage(conversation.RoleUser, text),
		conversation.NewChatMessage(conversation.RoleAssistant, reply),
	)
	return reply, nil
}

func (e *echoChatter) Load(path string) error {
	e.loaded = append(e.loaded, path)
	return e.manager.LoadFromFile(path)
}

func (e *echoChatter) Save(path string) error {
	return e.manager.SaveToFile(path)
}

type harness struct {
	dir        string
	store      *store.Store
	chatter    *echoChatter
	out        *bytes.Buffer
	controller *Controller
}

func newHarness(t *testing.T, dir string, input string, options ...Option) *harness {
	t.Helper()
	var out bytes.Buffer
	framer := &ui.Framer{Style: ui.DefaultFrameStyle(), Width: func() int { return 40 }}
	console, err := ui.NewConsole(&out, ui.WithFramer(framer))
	require.NoError(t, err)

	s := store.New(dir)
	chatter := newEchoChatter()
	p := prompt.NewPrompter(strings.NewReader(input), &out)

	return &harness{
		dir:        dir,
		store:      s,
		chatter:    chatter,
		out:        &out,
		controller: NewController(s, chatter, p, console, options...),
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewSessionImmediateExit(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, dir, "y\nexit\n")

	require.NoError(t, h.controller.Run(context.Background()))
	assert.Equal(t, StateClosed, h.controller.State())

	names := listDir(t, dir)
	require.Len(t, names, 1)
	id, err := store.ParseFileName(names[0])
	require.NoError(t, err)

	active, ok := h.controller.ConversationID()
	require.True(t, ok)
	assert.Equal(t, active, id)
	assert.Equal(t, filepath.Join(dir, names[0]), h.controller.SavePath())
	assert.Contains(t, h.out.String(), "Conversation saved in: "+filepath.Join(dir, names[0]))
	assert.Empty(t, h.chatter.prompts)
}

func TestNewSessionDefaultAnswer(t *testing.T) {
	fixed := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	dir := t.TempDir()
	h := newHarness(t, dir, "\nEXIT\n", WithIDGenerator(func() uuid.UUID { return fixed }))

	require.NoError(t, h.controller.Run(context.Background()))
	assert.Equal(t, []string{store.FileName(fixed)}, listDir(t, dir))
}

func TestResumeSelectsStoredConversation(t *testing.T) {
	dir := t.TempDir()
	name := "convo-11111111-1111-1111-1111-111111111111.txt"
	previous := conversation.NewManager(conversation.WithMessages(
		conversation.NewChatMessage(conversation.RoleUser, "earlier"),
		conversation.NewChatMessage(conversation.RoleAssistant, "EARLIER"),
	))
	require.NoError(t, previous.SaveToFile(filepath.Join(dir, name)))

	minted := 0
	h := newHarness(t, dir, "n\n0\nexit\n", WithIDGenerator(func() uuid.UUID {
		minted++
		return uuid.New()
	}))

	require.NoError(t, h.controller.Run(context.Background()))

	id, ok := h.controller.ConversationID()
	require.True(t, ok)
	assert.Equal(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), id)
	assert.Equal(t, 0, minted, "resuming must not mint a new id")
	assert.Equal(t, []string{filepath.Join(dir, name)}, h.chatter.loaded)
	assert.Equal(t, []string{name}, listDir(t, dir))
	assert.Len(t, h.chatter.manager.GetConversation(), 2)
}

func TestResumeRepromptsOnBadIndex(t *testing.T) {
	dir := t.TempDir()
	name := "convo-11111111-1111-1111-1111-111111111111.txt"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0644))

	h := newHarness(t, dir, "maybe\nn\n-1\nabc\n1\n0\nexit\n")
	require.NoError(t, h.controller.Run(context.Background()))

	id, ok := h.controller.ConversationID()
	require.True(t, ok)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", id.String())
}

func TestResumeWithEmptyStoreStartsNewConversation(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, dir, "n\nexit\n")

	require.NoError(t, h.controller.Run(context.Background()))
	assert.Contains(t, h.out.String(), "No old convos found in "+dir)

	names := listDir(t, dir)
	require.Len(t, names, 1)
	_, err := store.ParseFileName(names[0])
	assert.NoError(t, err)
}

func TestResumeWithUnreadableStoreStartsNewConversation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	h := newHarness(t, dir, "n\nexit\n")

	// saving into a missing directory fails, which shows the session got to the end
	err := h.controller.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "No old convos found in "+dir)
	_, ok := h.controller.ConversationID()
	assert.True(t, ok)
}

func TestCorruptedStoreIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("[]"), 0644))

	h := newHarness(t, dir, "n\n0\nexit\n")
	err := h.controller.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrFormat))

	assert.Equal(t, []string{"notes.txt"}, listDir(t, dir), "nothing may be saved")
	_, ok := h.controller.ConversationID()
	assert.False(t, ok)
}

func TestEndOfInputBeforeChatIsFatal(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, dir, "what?\n")

	err := h.controller.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrEndOfInput))
	assert.Empty(t, listDir(t, dir))
}

func TestChatTurnsAreRenderedAndSaved(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, dir, "y\nhello\n\n   \nfail\nhow are you\nExit\n")
	h.chatter.failOn = "fail"

	require.NoError(t, h.controller.Run(context.Background()))
	assert.Equal(t, []string{"hello", "fail", "how are you"}, h.chatter.prompts)

	out := h.out.String()
	assert.Contains(t, out, "HELLO")
	assert.Contains(t, out, "HOW ARE YOU")
	assert.Contains(t, out, "Could not get a reply")
	assert.Contains(t, out, "I'm Gemini")

	msgs, err := conversation.LoadFromFile(h.controller.SavePath())
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, "HOW ARE YOU", msgs[3].Text)
}

func TestEndOfInputWhileChattingSaves(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, dir, "y\nhello")

	require.NoError(t, h.controller.Run(context.Background()))
	assert.Len(t, listDir(t, dir), 1)
	assert.Equal(t, []string{"hello"}, h.chatter.prompts)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "start", StateStart.String())
	assert.Equal(t, "new-session", StateNewSession.String())
	assert.Equal(t, "resume-session", StateResumeSession.String())
	assert.Equal(t, "chatting", StateChatting.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", State(42).String())
}
