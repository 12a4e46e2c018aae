// Package config loads the bridge configuration from a JSON or YAML file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the bridge.
type Config struct {
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
	Server   ServerConfig   `json:"server" yaml:"server"`

	// AllowList enables roster tracking and the /list command.
	AllowList bool `json:"allowList" yaml:"allowList"`
	// LocalAuth gates joining players behind Telegram authentication.
	LocalAuth bool `json:"localAuth" yaml:"localAuth"`
	// PostUpdates announces new game releases in the chat.
	PostUpdates bool `json:"postUpdates" yaml:"postUpdates"`

	LogLevel string        `json:"logLevel" yaml:"logLevel"`
	Auth     AuthConfig    `json:"auth" yaml:"auth"`
	Updates  UpdatesConfig `json:"updates" yaml:"updates"`
}

type TelegramConfig struct {
	Token  string `json:"token" yaml:"token"`
	ChatID int64  `json:"chatId" yaml:"chatId"`
}

type ServerConfig struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	Dir     string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	// Type selects the log dialect; "default" is vanilla.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

type AuthConfig struct {
	DBPath        string `json:"dbPath,omitempty" yaml:"dbPath,omitempty"`
	WindowSeconds int    `json:"windowSeconds,omitempty" yaml:"windowSeconds,omitempty"`
}

type UpdatesConfig struct {
	IntervalMinutes int    `json:"intervalMinutes,omitempty" yaml:"intervalMinutes,omitempty"`
	ManifestURL     string `json:"manifestUrl,omitempty" yaml:"manifestUrl,omitempty"`
}

// Load reads a config file; the extension selects the format (.yaml/.yml
// for YAML, anything else JSON).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a config file in the format implied by the extension.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the fields the bridge cannot run without.
func Validate(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chatId is required")
	}
	if cfg.Server.Command == "" {
		return fmt.Errorf("server.command is required")
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be one of debug, info, warn, error")
	}
	if cfg.Auth.WindowSeconds < 0 {
		return fmt.Errorf("auth.windowSeconds must not be negative")
	}
	if cfg.Updates.IntervalMinutes < 0 {
		return fmt.Errorf("updates.intervalMinutes must not be negative")
	}
	return nil
}
