package main

import (
	"context"
	"os"

	"github.com/go-go-golems/gemini-chat/pkg/ai/openai"
	"github.com/go-go-golems/gemini-chat/pkg/conversation"
	"github.com/go-go-golems/gemini-chat/pkg/prompt"
	"github.com/go-go-golems/gemini-chat/pkg/session"
	"github.com/go-go-golems/gemini-chat/pkg/store"
	"github.com/go-go-golems/gemini-chat/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gemini-chat",
	Short: "Chat with Gemini in the terminal, and pick up old conversations where you left them",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// reinitialize the logger because we can now parse --log-level and co
		// from the command line flag
		return initLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
	SilenceUsage: true,
}

func runChat(ctx context.Context) error {
	chatSettings, err := loadChatSettings()
	if err != nil {
		return err
	}

	dir, err := store.DefaultDir()
	if err != nil {
		return err
	}
	s := store.New(dir)
	if err := s.EnsureDir(); err != nil {
		return err
	}
	log.Debug().Str("dir", dir).Msg("Using conversation store")

	client, err := openai.NewClient(chatSettings, conversation.NewManager())
	if err != nil {
		return errors.Wrap(err, "could not create model client")
	}

	isTerminal := isatty.IsTerminal(os.Stdout.Fd())
	var consoleOptions []ui.ConsoleOption
	if isTerminal {
		consoleOptions = append(consoleOptions, ui.WithMarkdown())
	}
	console, err := ui.NewConsole(os.Stdout, consoleOptions...)
	if err != nil {
		return err
	}
	if isTerminal {
		console.Banner("gemini-chat")
	}

	controller := session.NewController(
		s,
		client,
		prompt.NewPrompter(os.Stdin, os.Stdout),
		console,
	)

	return controller.Run(ctx)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the config file")
	flags.String("log-level", "warn", "Log level (trace, debug, info, warn, error, fatal)")
	flags.String("log-format", "text", "Log format (json, text)")
	flags.String("log-file", "", "Also write logs to this file")
	flags.Bool("with-caller", false, "Log caller")
	flags.Bool("verbose", false, "Verbose output")

	flags.String("api-key", "", "API key (defaults to $GEMINIAI_API)")
	flags.String("base-url", "", "OpenAI compatible endpoint of the model")
	flags.String("model", "", "Model to chat with")
	flags.String("system-prompt", "", "System prompt sent ahead of the conversation")
	flags.Float64("temperature", 0, "Sampling temperature (unset uses the model default)")
	flags.Int("max-response-tokens", 0, "Maximum tokens per reply (unset uses the model default)")
	flags.Duration("timeout", 0, "Timeout of a single model request")

	configPath := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configPath = os.Args[i+1]
		}
	}

	err := initViper(rootCmd, configPath)
	cobra.CheckErr(err)
}
