// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/dimnorm/internal/markup"
	"github.com/xkilldash9x/dimnorm/internal/tree"
)

// EnvPrefix is the prefix for environment overrides, e.g. DIMNORM_LOGGER_LEVEL.
const EnvPrefix = "DIMNORM"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Normalize() NormalizeConfig
	Input() InputConfig
	Output() OutputConfig

	// CLI overrides, applied after loading and checked again with Validate.
	SetInputFormat(string)
	SetInputConcurrency(int)
	SetOutputIndent(bool)
	SetNormalizeImageTags([]string)
	Validate() error
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	NormalizeCfg NormalizeConfig `mapstructure:"normalize" yaml:"normalize"`
	InputCfg     InputConfig     `mapstructure:"input" yaml:"input"`
	OutputCfg    OutputConfig    `mapstructure:"output" yaml:"output"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig       { return c.LoggerCfg }
func (c *Config) Normalize() NormalizeConfig { return c.NormalizeCfg }
func (c *Config) Input() InputConfig         { return c.InputCfg }
func (c *Config) Output() OutputConfig       { return c.OutputCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetInputFormat(f string)   { c.InputCfg.Format = f }
func (c *Config) SetInputConcurrency(n int) { c.InputCfg.Concurrency = n }
func (c *Config) SetOutputIndent(b bool)    { c.OutputCfg.Indent = b }
func (c *Config) SetNormalizeImageTags(tags []string) {
	c.NormalizeCfg.ImageTags = tags
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// NormalizeConfig controls the dimension normalizer.
type NormalizeConfig struct {
	// ImageTags are the elements whose width/height attributes are coerced.
	ImageTags []string `mapstructure:"image_tags" yaml:"image_tags"`
}

// InputConfig controls how input documents are read.
type InputConfig struct {
	Format      string `mapstructure:"format" yaml:"format"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputConfig controls how normalized trees are written.
type OutputConfig struct {
	Indent bool `mapstructure:"indent" yaml:"indent"`
}

// NewDefaultConfig returns a Config populated only from SetDefaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "dimnorm")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Normalize --
	v.SetDefault("normalize.image_tags", tree.DefaultImageTags)

	// -- Input / Output --
	v.SetDefault("input.format", string(markup.FormatAuto))
	v.SetDefault("input.concurrency", 4)
	v.SetDefault("output.indent", false)
}

// NewConfigFromViper unmarshals, expands and validates a configuration.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths resolves a leading "~" in file paths.
func (c *Config) ExpandPaths() error {
	if c.LoggerCfg.LogFile == "" {
		return nil
	}
	p, err := homedir.Expand(c.LoggerCfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand logger.log_file: %w", err)
	}
	c.LoggerCfg.LogFile = p
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.LoggerCfg.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be 'console' or 'json', got %q", c.LoggerCfg.Format)
	}
	if _, err := markup.ParseFormat(c.InputCfg.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	if c.InputCfg.Concurrency <= 0 {
		return fmt.Errorf("input.concurrency must be a positive integer")
	}
	for _, tag := range c.NormalizeCfg.ImageTags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("normalize.image_tags must not contain empty names")
		}
	}
	return nil
}

// SearchPaths lists the directories probed for config.yaml when no explicit
// file is given: the working directory, then ~/.dimnorm.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dimnorm"))
	}
	return paths
}
