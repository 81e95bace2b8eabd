package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-go-golems/gemini-chat/pkg/ai/settings"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "gemini-chat"

func initViper(rootCmd *cobra.Command, configPath string) error {
	viper.SetEnvPrefix("gemini_chat")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/." + appName)

		// get XDG config path for gemini-chat
		xdgConfigPath, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(xdgConfigPath, appName))
		}
	}

	// Read the configuration file into Viper
	err := viper.ReadInConfig()
	// if the file does not exist, continue normally
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; ignore error
	} else if err != nil {
		// Config file was found but another error was produced
		return err
	}

	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("api-key", "GEMINIAI_API", "GEMINI_API_KEY"); err != nil {
		return err
	}

	// Bind the variables to the command-line flags
	err = viper.BindPFlags(rootCmd.PersistentFlags())
	if err != nil {
		return err
	}

	// this still won't pick up on --verbose to show debug logging when the commands
	// are parsed, but at least it will configure it based on the config file
	if err := initLogger(); err != nil {
		return err
	}

	log.Debug().
		Str("config", viper.ConfigFileUsed()).
		Msg("Loaded configuration")

	return nil
}

// loadDotEnv exports the variables of a .env file that are not already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return errors.Wrapf(err, "could not export %s", name)
		}
	}

	return nil
}

func loadChatSettings() (*settings.ChatSettings, error) {
	s := settings.NewChatSettings()

	s.APIKey = viper.GetString("api-key")
	if baseURL := viper.GetString("base-url"); baseURL != "" {
		s.BaseURL = baseURL
	}
	if model := viper.GetString("model"); model != "" {
		s.Engine = model
	}
	s.SystemPrompt = viper.GetString("system-prompt")
	if viper.IsSet("temperature") {
		temperature := viper.GetFloat64("temperature")
		s.Temperature = &temperature
	}
	if viper.IsSet("max-response-tokens") {
		maxTokens := viper.GetInt("max-response-tokens")
		s.MaxResponseTokens = &maxTokens
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		s.Timeout = timeout
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
