// Package config loads allocator and logging settings for byte string tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Byte_String/alloc"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Allocator AllocatorConfig `toml:"allocator" yaml:"allocator"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// AllocatorConfig selects and sizes the buffer allocator.
type AllocatorConfig struct {
	Kind      string `toml:"kind" yaml:"kind"`
	MaxBytes  int64  `toml:"max_bytes" yaml:"max_bytes"`
	MaxAlloc  int    `toml:"max_alloc" yaml:"max_alloc"`
	PoolBytes int64  `toml:"pool_bytes" yaml:"pool_bytes"`
}

// LogConfig
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Format is a configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML or YAML file, chosen by extension, and applies defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content in the given format, applies defaults and validates.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) applyDefaults() {
	defaults := alloc.NewOptions()
	if c.Allocator.Kind == "" {
		c.Allocator.Kind = string(alloc.Heap)
	}
	if c.Allocator.MaxBytes == 0 && c.Allocator.Kind != string(alloc.Heap) {
		c.Allocator.MaxBytes = defaults.MaxBytes
	}
	if c.Allocator.PoolBytes == 0 && c.Allocator.Kind == string(alloc.Pool) {
		c.Allocator.PoolBytes = defaults.PoolBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := alloc.ParseKind(c.Allocator.Kind); err != nil {
		return err
	}
	if c.Allocator.MaxBytes < 0 {
		return fmt.Errorf("allocator.max_bytes must not be negative: %d", c.Allocator.MaxBytes)
	}
	if c.Allocator.MaxAlloc < 0 {
		return fmt.Errorf("allocator.max_alloc must not be negative: %d", c.Allocator.MaxAlloc)
	}
	if c.Allocator.PoolBytes < 0 {
		return fmt.Errorf("allocator.pool_bytes must not be negative: %d", c.Allocator.PoolBytes)
	}
	return nil
}

// AllocatorOptions converts the allocator section to alloc options.
func (c *Config) AllocatorOptions() (alloc.Kind, alloc.Options) {
	kind, err := alloc.ParseKind(c.Allocator.Kind)
	if err != nil {
		kind = alloc.Heap
	}
	return kind, alloc.Options{
		MaxBytes:  c.Allocator.MaxBytes,
		MaxAlloc:  c.Allocator.MaxAlloc,
		PoolBytes: c.Allocator.PoolBytes,
	}
}

// NewAllocator builds the configured allocator.
func (c *Config) NewAllocator() alloc.Allocator {
	kind, opts := c.AllocatorOptions()
	return alloc.New(kind, opts)
}
