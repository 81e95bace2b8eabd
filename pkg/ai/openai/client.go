// Package openai exchanges chat turns with an OpenAI compatible chat completions
// endpoint. Gemini exposes one, which is what the client talks to by default.
package openai

import (
	"context"
	"strings"

	"github.com/go-go-golems/gemini-chat/pkg/ai/settings"
	"github.com/go-go-golems/gemini-chat/pkg/conversation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"
)

// Client holds the turn history of one conversation and grows it with every
// successful exchange.
type Client struct {
	client   *go_openai.Client
	settings *settings.ChatSettings
	manager  conversation.Manager
}

func NewClient(s *settings.ChatSettings, manager conversation.Manager) (*Client, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		manager = conversation.NewManager()
	}

	return &Client{
		client:   MakeClient(s),
		settings: s,
		manager:  manager,
	}, nil
}

func MakeClient(s *settings.ChatSettings) *go_openai.Client {
	config := go_openai.DefaultConfig(s.APIKey)
	config.BaseURL = strings.TrimRight(s.BaseURL, "/")
	return go_openai.NewClientWithConfig(config)
}

func (c *Client) Manager() conversation.Manager {
	return c.manager
}

// Prompt sends text along with the conversation so far and returns the reply.
// The history is only extended if the request succeeds.
func (c *Client) Prompt(ctx context.Context, text string) (string, error) {
	if c.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.settings.Timeout)
		defer cancel()
	}

	userMessage := conversation.NewChatMessage(conversation.RoleUser, text)
	req := MakeCompletionRequest(c.settings, append(c.manager.GetConversation(), userMessage))

	log.Debug().
		Str("model", req.Model).
		Int("messages", len(req.Messages)).
		Msg("Sending chat completion request")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	log.Debug().
		Str("finish_reason", string(choice.FinishReason)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("Received chat completion")

	reply := conversation.NewChatMessage(conversation.RoleAssistant, choice.Message.Content,
		conversation.WithMetadata(map[string]interface{}{
			"model":         resp.Model,
			"finish_reason": string(choice.FinishReason),
		}))
	c.manager.AppendMessages(userMessage, reply)

	return choice.Message.Content, nil
}

// Load replaces the history with the transcript at path.
func (c *Client) Load(path string) error {
	return c.manager.LoadFromFile(path)
}

// Save writes the history to path.
func (c *Client) Save(path string) error {
	return c.manager.SaveToFile(path)
}

// MakeCompletionRequest builds the request for the given messages. The system
// prompt from the settings is prepended unless the conversation already starts
// with one.
func MakeCompletionRequest(s *settings.ChatSettings, msgs conversation.Conversation) go_openai.ChatCompletionRequest {
	var messages []go_openai.ChatCompletionMessage

	if s.SystemPrompt != "" && (len(msgs) == 0 || msgs[0].Role != conversation.RoleSystem) {
		messages = append(messages, go_openai.ChatCompletionMessage{
			Role:    go_openai.ChatMessageRoleSystem,
			Content: s.SystemPrompt,
		})
	}
	for _, msg := range msgs {
		messages = append(messages, go_openai.ChatCompletionMessage{
			Role:    roleToOpenAI(msg.Role),
			Content: msg.Text,
		})
	}

	req := go_openai.ChatCompletionRequest{
		Model:    s.Engine,
		Messages: messages,
	}
	if s.Temperature != nil {
		req.Temperature = float32(*s.Temperature)
	}
	if s.MaxResponseTokens != nil {
		req.MaxTokens = *s.MaxResponseTokens
	}

	return req
}

func roleToOpenAI(role conversation.Role) string {
	switch role {
	case conversation.RoleSystem:
		return go_openai.ChatMessageRoleSystem
	case conversation.RoleAssistant:
		return go_openai.ChatMessageRoleAssistant
	default:
		return go_openai.ChatMessageRoleUser
	}
}
