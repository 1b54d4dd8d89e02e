package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppConfig captures configuration for the server, document loading, and
// engine capacity knobs.
type AppConfig struct {
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Paths   PathsConfig   `toml:"paths" yaml:"paths"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Watcher WatcherConfig `toml:"watcher" yaml:"watcher"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// ServerConfig controls network settings.
type ServerConfig struct {
	Listen string `toml:"listen" yaml:"listen"`
}

// PathsConfig points at the directory of plain-text documents indexed on
// startup (and watched when the watcher is enabled).
type PathsConfig struct {
	DocsDir string `toml:"docs_dir" yaml:"docs_dir"`
}

// EngineConfig exposes the engine's capacity knobs. The prefix limit used to
// be a silent hard constant; it is an explicit setting here.
type EngineConfig struct {
	MaxWordLength int `toml:"max_word_length" yaml:"max_word_length"`
	PrefixLimit   int `toml:"prefix_limit" yaml:"prefix_limit"`
	HashBuckets   int `toml:"hash_buckets" yaml:"hash_buckets"`
}

// WatcherConfig toggles filesystem watching of the docs directory.
type WatcherConfig struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// LoggingConfig toggles observability around requests.
type LoggingConfig struct {
	RequestLogs *bool `toml:"request_logs" yaml:"request_logs"`
}

// MetricsConfig enables counters/telemetry endpoints.
type MetricsConfig struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// DefaultConfig returns the baseline configuration used when no file is
// supplied.
func DefaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Listen: ":8080"},
		Paths:  PathsConfig{DocsDir: "documents"},
		Engine: EngineConfig{
			MaxWordLength: 100,
			PrefixLimit:   100,
			HashBuckets:   1000,
		},
		Watcher: WatcherConfig{Enabled: boolPtr(false)},
		Logging: LoggingConfig{RequestLogs: boolPtr(true)},
		Metrics: MetricsConfig{Enabled: boolPtr(true)},
	}
}

// Load reads the provided config path, merging it onto the defaults.
func Load(path string) (AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var fileCfg AppConfig
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return AppConfig{}, errors.New("config file must be .toml, .yaml, or .yml")
	}

	return mergeConfig(cfg, fileCfg), nil
}

func mergeConfig(base, override AppConfig) AppConfig {
	if override.Server.Listen != "" {
		base.Server.Listen = override.Server.Listen
	}
	if override.Paths.DocsDir != "" {
		base.Paths.DocsDir = override.Paths.DocsDir
	}

	if override.Engine.MaxWordLength != 0 {
		base.Engine.MaxWordLength = override.Engine.MaxWordLength
	}
	if override.Engine.PrefixLimit != 0 {
		base.Engine.PrefixLimit = override.Engine.PrefixLimit
	}
	if override.Engine.HashBuckets != 0 {
		base.Engine.HashBuckets = override.Engine.HashBuckets
	}

	if override.Watcher.Enabled != nil {
		base.Watcher.Enabled = override.Watcher.Enabled
	}
	if override.Logging.RequestLogs != nil {
		base.Logging.RequestLogs = override.Logging.RequestLogs
	}
	if override.Metrics.Enabled != nil {
		base.Metrics.Enabled = override.Metrics.Enabled
	}

	return base
}

func boolPtr(v bool) *bool {
	return &v
}
