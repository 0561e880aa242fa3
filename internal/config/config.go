// Package config resolves mintabi's runtime settings: defaults, then
// ~/.mintabi/config.yaml, then MINTABI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user directory holding the database, history and templates.
const Dir = ".mintabi"

// Config holds every setting. Paths are absolute after Load.
type Config struct {
	DBPath             string `yaml:"db_path"`
	HistoryPath        string `yaml:"history_path"`
	HistoryLimit       int    `yaml:"history_limit"`
	TemplatesDir       string `yaml:"templates_dir"`
	RedisURL           string `yaml:"redis_url"`
	RedisChannelPrefix string `yaml:"redis_channel_prefix"`
	LogUseCases        bool   `yaml:"log_use_cases"`
}

// Default returns the configuration rooted at base (normally the home dir).
func Default(base string) Config {
	root := filepath.Join(base, Dir)
	return Config{
		DBPath:             filepath.Join(root, "mintabi.db"),
		HistoryPath:        filepath.Join(root, "history.json"),
		HistoryLimit:       5,
		TemplatesDir:       filepath.Join(root, "templates"),
		RedisChannelPrefix: "mintabi:plans:",
	}
}

// DefaultPath returns ~/.mintabi/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, Dir, "config.yaml"), nil
}

// Load builds the configuration from the home directory defaults, the YAML
// file at path (a missing file is fine), and the environment.
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolving home directory: %w", err)
	}
	cfg := Default(home)
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	// Unmarshal over the defaults so omitted keys keep them.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("MINTABI_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("MINTABI_HISTORY"); v != "" {
		c.HistoryPath = v
	}
	if v := getenv("MINTABI_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.HistoryLimit = n
		}
	}
	if v := getenv("MINTABI_TEMPLATES"); v != "" {
		c.TemplatesDir = v
	}
	if v := getenv("MINTABI_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := getenv("MINTABI_LOG"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.HistoryPath == "" {
		return errors.New("config: history_path must not be empty")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must be >= 0, got %d", c.HistoryLimit)
	}
	return nil
}
