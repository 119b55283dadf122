// Package config loads the optional REPL settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a settings file.
const EnvVar = "LUCA_CONFIG"

// DefaultFile is the settings file looked up in the home directory.
const DefaultFile = ".luca.yaml"

// Config holds the REPL settings.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	HistoryLimit       int    `yaml:"history_limit"`
	DisableHistory     bool   `yaml:"disable_history"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{
		Prompt:             "> ",
		ContinuationPrompt: ".. ",
		HistoryLimit:       1000,
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		cfg.HistoryFile = filepath.Join(home, ".luca_history")
	}
	return cfg
}

// Resolve picks the settings path: the explicit path if set, then
// $LUCA_CONFIG, then ~/.luca.yaml. The second result reports whether the
// path was requested explicitly, in which case it must exist.
func Resolve(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, DefaultFile), false
}

// Load reads settings on top of the defaults. A missing default file is not
// an error; a missing explicit one is.
func Load(explicit string) (*Config, error) {
	cfg := Default()
	path, required := Resolve(explicit)
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	c.HistoryFile = expandHome(strings.TrimSpace(c.HistoryFile))
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
