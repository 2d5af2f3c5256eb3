// Package config loads the startup configuration of a dispatcher and registers
// the configured subscribers.
//
// Configuration is read from three layers, later ones winning:
//
//  1. A YAML file, validated against [Schema]
//  2. Variables from .env files (missing files are ignored)
//  3. EVENTDISPATCHER_* environment variables
//
// Example config file:
//
//	subscribers:
//	  - app.UserSubscriber
//	  - audit
//	max_recursion: 20
//	log_level: debug
//	trace: true
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rickchristie/eventdispatcher/schema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. EVENTDISPATCHER_SUBSCRIBERS.
const EnvPrefix = "EVENTDISPATCHER"

// Config is the startup configuration.
type Config struct {
	// Subscribers are deferred identifiers passed to Subscribe, in order.
	// From the environment they are given comma-separated.
	Subscribers []string `yaml:"subscribers" envconfig:"SUBSCRIBERS"`

	// MaxRecursion bounds nested dispatches, 0 for no limit.
	MaxRecursion int `yaml:"max_recursion" envconfig:"MAX_RECURSION"`

	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Trace registers a loggers.ZapHook so every dispatch is logged.
	Trace bool `yaml:"trace" envconfig:"TRACE"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Subscribers: []string{},
		LogLevel:    "info",
	}
}

// Schema validates configuration files.
var Schema = schema.MustCompile(schema.Strict(schema.Object(map[string]*schema.Property{
	"subscribers": schema.Array(
		"Subscriber identifiers registered at startup, in order",
		schema.String("").MinLength(1).Pattern(`^\S+$`).Build(),
	),
	"max_recursion": schema.Integer("Maximum nested dispatch depth, 0 for unlimited").Min(0).Default(0),
	"log_level":     schema.String("Log level").Enum("debug", "info", "warn", "error").Default("info"),
	"trace":         schema.Boolean("Log every dispatch through a zap hook").Default(false),
})))

// Load reads the YAML file at path (skipped when empty), then applies .env
// files and environment overrides. With no envFiles, ".env" is tried.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := parseInto(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes and validates a YAML document on top of Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := parseInto(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInto(data []byte, cfg *Config) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	if doc == nil {
		return nil
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert yaml: %w", err)
	}
	if err := Schema.ValidateJSON(asJSON); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
