package settings

import (
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultEngine  = "gemini-1.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultTimeout = 2 * time.Minute
)

// ChatSettings configures the model exchange. Fields map onto viper keys.
type ChatSettings struct {
	APIKey            string        `yaml:"api_key,omitempty" mapstructure:"api-key"`
	BaseURL           string        `yaml:"base_url,omitempty" mapstructure:"base-url"`
	Engine            string        `yaml:"engine,omitempty" mapstructure:"model"`
	SystemPrompt      string        `yaml:"system_prompt,omitempty" mapstructure:"system-prompt"`
	Temperature       *float64      `yaml:"temperature,omitempty" mapstructure:"temperature"`
	MaxResponseTokens *int          `yaml:"max_response_tokens,omitempty" mapstructure:"max-response-tokens"`
	Timeout           time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

func NewChatSettings() *ChatSettings {
	return &ChatSettings{
		BaseURL: DefaultBaseURL,
		Engine:  DefaultEngine,
		Timeout: DefaultTimeout,
	}
}

func (s *ChatSettings) Validate() error {
	if s.APIKey == "" {
		return errors.New("no API key configured, set GEMINIAI_API or --api-key")
	}
	if s.BaseURL == "" {
		return errors.New("no base URL configured")
	}
	if s.Engine == "" {
		return errors.New("no model configured")
	}
	if s.Temperature != nil && (*s.Temperature < 0 || *s.Temperature > 2) {
		return errors.Errorf("temperature %v out of range [0, 2]", *s.Temperature)
	}
	if s.MaxResponseTokens != nil && *s.MaxResponseTokens <= 0 {
		return errors.Errorf("max response tokens must be positive, got %d", *s.MaxResponseTokens)
	}
	return nil
}
