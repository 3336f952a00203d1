package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultReplyDelay = 1500 * time.Millisecond
	defaultServerAddr = "127.0.0.1:8787"
	defaultLogLevel   = "info"
)

type Config struct {
	DataDir      string
	DBPath       string
	LogPath      string
	IdentityPath string
	PluginsPath  string

	LogLevel        string
	ChatReplyDelay  time.Duration
	ResponderPlugin string
	CatalogPath     string
	ServerAddr      string
}

// fileConfig mirrors <data>/config.yaml. Every field is optional.
type fileConfig struct {
	LogLevel string `yaml:"log_level"`
	Chat     struct {
		ReplyDelay      string `yaml:"reply_delay"`
		ResponderPlugin string `yaml:"responder_plugin"`
	} `yaml:"chat"`
	Resources struct {
		Catalog string `yaml:"catalog"`
	} `yaml:"resources"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "mindful.db"),
		LogPath:        filepath.Join(dataDir, "logs", "mindful.log"),
		IdentityPath:   filepath.Join(dataDir, "identity.json"),
		PluginsPath:    filepath.Join(dataDir, "plugins", "plugins.yaml"),
		LogLevel:       defaultLogLevel,
		ChatReplyDelay: defaultReplyDelay,
		ServerAddr:     defaultServerAddr,
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDataDir resolves $MINDFUL_HOME, falling back to ~/.mindful.
func DefaultDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("MINDFUL_HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mindful"
	}
	return filepath.Join(home, ".mindful")
}

func (c *Config) apply(raw []byte) error {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}

	if fc.LogLevel != "" {
		switch fc.LogLevel {
		case "debug", "info", "warn", "error":
			c.LogLevel = fc.LogLevel
		default:
			return fmt.Errorf("unsupported log_level %q", fc.LogLevel)
		}
	}
	if fc.Chat.ReplyDelay != "" {
		delay, err := time.ParseDuration(fc.Chat.ReplyDelay)
		if err != nil {
			return fmt.Errorf("parse chat.reply_delay: %w", err)
		}
		if delay < 0 {
			return fmt.Errorf("chat.reply_delay must be non-negative")
		}
		c.ChatReplyDelay = delay
	}
	c.ResponderPlugin = strings.TrimSpace(fc.Chat.ResponderPlugin)
	if catalog := strings.TrimSpace(fc.Resources.Catalog); catalog != "" {
		if !filepath.IsAbs(catalog) {
			catalog = filepath.Join(c.DataDir, catalog)
		}
		c.CatalogPath = catalog
	}
	if addr := strings.TrimSpace(fc.Server.Addr); addr != "" {
		c.ServerAddr = addr
	}
	return nil
}
