package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldlist/pkg/repeatable"
)

// EnvPrefix prefixes environment overrides. A double underscore descends into
// a nested key: FIELDLIST_MARKERS__ROW sets markers.row.
const EnvPrefix = "FIELDLIST_"

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = ".fieldlist.yml"

// Config is the CLI configuration, corresponding to .fieldlist.yml.
type Config struct {
	Markers        repeatable.Markers `yaml:"markers" koanf:"markers"`
	ControlReindex bool               `yaml:"control_reindex" koanf:"control_reindex"`
	Sanitize       bool               `yaml:"sanitize" koanf:"sanitize"`
	LogLevel       string             `yaml:"log_level" koanf:"log_level"`
	Theme          string             `yaml:"theme" koanf:"theme"`
	Variant        string             `yaml:"variant" koanf:"variant"`
	Themes         map[string]Theme   `yaml:"themes,omitempty" koanf:"themes"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Markers:  repeatable.DefaultMarkers(),
		Sanitize: true,
		LogLevel: "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: access %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Markers = cfg.Markers.Resolve()
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config: invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	m := c.Markers.Resolve()
	names := []string{m.Container, m.Row, m.Add, m.Remove}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.ContainsAny(name, " \t\n") {
			return fmt.Errorf("config: marker %q must be a single class name", name)
		}
		if seen[name] {
			return fmt.Errorf("config: marker %q used for more than one role", name)
		}
		seen[name] = true
	}

	if c.Variant != "" && c.Theme == "" {
		return fmt.Errorf("config: variant %q requires a theme", c.Variant)
	}
	if c.Theme != "" {
		if _, ok := c.Themes[c.Theme]; !ok {
			return fmt.Errorf("config: theme %q is not defined under themes", c.Theme)
		}
	}
	for name, t := range c.Themes {
		for key := range t.Tokens {
			if _, ok := tokenKeys[key]; !ok {
				return fmt.Errorf("config: theme %q: unknown token %q", name, key)
			}
		}
	}
	return nil
}

// RepeatableOptions maps the configuration onto repeatable options.
func (c *Config) RepeatableOptions() []repeatable.Option {
	return []repeatable.Option{
		repeatable.WithMarkers(c.Markers),
		repeatable.WithControlReindex(c.ControlReindex),
	}
}
