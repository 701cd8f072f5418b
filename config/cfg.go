// Package config loads program configuration: an embedded default document
// with an optional YAML file superimposed on top of it.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	RenderConfig struct {
		Indent         int  `yaml:"indent" validate:"gte=0"`
		Compact        bool `yaml:"compact"`
		KeepWhitespace bool `yaml:"keep_whitespace"`
		Validate       bool `yaml:"validate"`
		Scripts        bool `yaml:"scripts"`
	}

	NetworkConfig struct {
		Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
		UserAgent    string        `yaml:"user_agent" validate:"required"`
		MaxRedirects int           `yaml:"max_redirects" validate:"gte=0"`
		MaxBodySize  int64         `yaml:"max_body_size" validate:"gt=0"`
		CacheEntries int           `yaml:"cache_entries" validate:"gt=0"`
		CacheTTL     time.Duration `yaml:"cache_ttl" validate:"gt=0"`
	}

	BookConfig struct {
		ShortLine      int    `yaml:"short_line" validate:"gt=0"`
		ContainerClass string `yaml:"container_class"`
		HeadingIDs     bool   `yaml:"heading_ids"`
		Gutenberg      bool   `yaml:"gutenberg"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Logging LoggingConfig `yaml:"logging"`
		Render  RenderConfig  `yaml:"render"`
		Network NetworkConfig `yaml:"network"`
		Book    BookConfig    `yaml:"book"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateLogging, LoggingConfig{})
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the embedded defaults and performs
// validation. An empty path returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare returns the embedded default configuration.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

// Dump marshals the active configuration.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
