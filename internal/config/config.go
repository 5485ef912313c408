package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/richtext/internal/codec"
	"github.com/dshills/richtext/internal/config/loader"
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/logging"
)

// Key generation strategies.
const (
	StrategyUUID     = "uuid"
	StrategySequence = "sequence"
)

// Config holds richtext settings.
type Config struct {
	Keys     KeysConfig               `toml:"keys"`
	Logging  LoggingConfig            `toml:"logging"`
	Elements map[string]ElementConfig `toml:"elements"`
}

// KeysConfig selects how keys for new nodes are generated.
type KeysConfig struct {
	Strategy string `toml:"strategy"`
	// Prefix and Start apply to the sequence strategy.
	Prefix string `toml:"prefix"`
	Start  int64  `toml:"start"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// ElementConfig is the default shape of an element type.
type ElementConfig struct {
	Void   bool `toml:"void"`
	Inline bool `toml:"inline"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Keys:     KeysConfig{Strategy: StrategyUUID},
		Logging:  LoggingConfig{Level: "info"},
		Elements: make(map[string]ElementConfig),
	}
}

// Load reads the config file at path, then RICHTEXT_ environment
// variables, over the defaults. An empty or missing path is not an error.
func Load(path string) (*Config, error) {
	tree, err := loader.LoadAll(loader.NewTOML(path), loader.NewEnv())
	if err != nil {
		return nil, err
	}
	return FromMap(tree)
}

// FromMap decodes a raw settings tree over the defaults and validates
// the result.
func FromMap(tree map[string]any) (*Config, error) {
	cfg := Default()
	if len(tree) > 0 {
		data, err := toml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("encoding settings: %w", err)
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, strings.TrimSpace(strict.String()))
			}
			return nil, fmt.Errorf("decoding settings: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch c.Keys.Strategy {
	case StrategyUUID, StrategySequence:
	default:
		return &ValidationError{Path: "keys.strategy", Message: "must be uuid or sequence", Value: c.Keys.Strategy}
	}
	if c.Keys.Start < 0 {
		return &ValidationError{Path: "keys.start", Message: "must not be negative", Value: c.Keys.Start}
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level}
	}
	if _, ok := c.Elements[""]; ok {
		return &ValidationError{Path: "elements", Message: "empty element type", Value: ""}
	}
	return nil
}

// KeyGenerator returns the generator the keys settings select.
func (c *Config) KeyGenerator() (node.KeyGenerator, error) {
	switch c.Keys.Strategy {
	case StrategyUUID:
		return node.UUIDKeys{}, nil
	case StrategySequence:
		return node.NewSequenceKeys(c.Keys.Prefix, c.Keys.Start), nil
	}
	return nil, &ValidationError{Path: "keys.strategy", Message: "must be uuid or sequence", Value: c.Keys.Strategy}
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Logging.Level)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

// Schema returns the element defaults for the codec.
func (c *Config) Schema() codec.Schema {
	s := make(codec.Schema, len(c.Elements))
	for typ, el := range c.Elements {
		s[typ] = codec.Rule{Void: el.Void, Inline: el.Inline}
	}
	return s
}

// ElementTypes returns the configured element types, sorted.
func (c *Config) ElementTypes() []string {
	types := make([]string, 0, len(c.Elements))
	for typ := range c.Elements {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
