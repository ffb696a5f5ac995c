// Package config loads notebook settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"translation-notebook/internal/application/usecases"
	"translation-notebook/internal/infrastructure/filesystem"
	"translation-notebook/internal/infrastructure/persistence"
)

// Environment variable names
const (
	EnvConfigFile      = "NOTEBOOK_CONFIG"
	EnvDBPath          = "DB_PATH"
	EnvDBDriver        = "DB_DRIVER"
	EnvSeedPlaceholder = "SEED_PLACEHOLDER"
	EnvBotToken        = "TELEGRAM_BOT_TOKEN"
	EnvAllowedChatID   = "TELEGRAM_ALLOWED_CHAT_ID"
	EnvLogLevel        = "LOG_LEVEL"
	EnvCheckPrompt     = "CHECK_PROMPT"
)

// Config holds every setting of the notebook
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
	Telegram TelegramConfig `yaml:"telegram"`
	Prompt   PromptConfig   `yaml:"prompt"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the SQLite driver and file
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// SeedConfig controls how paragraphs become pairs
type SeedConfig struct {
	Placeholder  string `yaml:"placeholder"`
	MinSentences int    `yaml:"min_sentences"`
}

// TelegramConfig configures the bot interface
type TelegramConfig struct {
	Token         string `yaml:"token"`
	AllowedChatID int64  `yaml:"allowed_chat_id"`
}

// PromptConfig holds the text put in front of a pair when asking for a review
type PromptConfig struct {
	Text string `yaml:"text"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: persistence.DriverCGo,
			Path:   "translation_notebook.db",
		},
		Seed: SeedConfig{
			Placeholder:  usecases.DefaultPlaceholder,
			MinSentences: filesystem.DefaultMinSentences,
		},
		Prompt: PromptConfig{
			Text: usecases.DefaultCheckPrompt,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Options tells Load where to look for files. Empty paths are skipped,
// except ConfigFile which falls back to $NOTEBOOK_CONFIG.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load builds the configuration. A missing .env file is not an error; a
// missing YAML file is, when one was asked for.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	}

	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup(EnvDBDriver); ok && v != "" {
		c.Database.Driver = v
	}
	if v, ok := lookup(EnvSeedPlaceholder); ok && v != "" {
		c.Seed.Placeholder = v
	}
	if v, ok := lookup(EnvBotToken); ok && v != "" {
		c.Telegram.Token = v
	}
	if v, ok := lookup(EnvAllowedChatID); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAllowedChatID, err)
		}
		c.Telegram.AllowedChatID = id
	}
	if v, ok := lookup(EnvCheckPrompt); ok && v != "" {
		c.Prompt.Text = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the settings that cannot be fixed up later
func (c *Config) Validate() error {
	if !persistence.IsValidDriver(c.Database.Driver) {
		return fmt.Errorf("invalid database driver %q (want %q or %q)",
			c.Database.Driver, persistence.DriverCGo, persistence.DriverPureGo)
	}
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.Seed.MinSentences < 1 {
		return fmt.Errorf("seed min_sentences must be at least 1, got %d", c.Seed.MinSentences)
	}
	return nil
}
