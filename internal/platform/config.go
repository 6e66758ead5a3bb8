// Package platform manages BrightDesk configuration and service wiring.
package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/brightdesk/brightdesk/internal/app/gamify"
)

// Config holds all BrightDesk configuration.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Gamify  gamify.Config `toml:"gamify"`
	Logging LoggingConfig `toml:"logging"`
}

// StoreConfig controls the persistent store.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	File string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := brightdeskHome()
	return Config{
		Store: StoreConfig{
			Dir: filepath.Join(homeDir, "data"),
		},
		Gamify: gamify.DefaultConfig(),
		Logging: LoggingConfig{
			File: filepath.Join(homeDir, "brightdesk.log"),
		},
	}
}

// LoadConfig reads config from ~/.brightdesk/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(brightdeskHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.brightdesk/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(brightdeskHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// brightdeskHome returns the BrightDesk data directory.
func brightdeskHome() string {
	if env := os.Getenv("BRIGHTDESK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".brightdesk")
}

// Home is exported for use by other packages.
func Home() string {
	return brightdeskHome()
}
