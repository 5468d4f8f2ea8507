package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

// DefaultConfigName is the config file base name looked up without --config.
const DefaultConfigName = "question-digest"

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"required|in:error,warn,info,debug,trace"`
	Format string `mapstructure:"format" validate:"in:auto,console,json"`
}

type ServeConfig struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        int    `mapstructure:"port" validate:"required|int|min:1|max:65535"`
	SiteDir     string `mapstructure:"siteDir"`
	MaxUploadMB int    `mapstructure:"maxUploadMB" validate:"required|int|min:1"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	SizeMB  int           `mapstructure:"sizeMB" validate:"int|min:0"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config holds every setting of the batch and interactive drivers
type Config struct {
	Path        string        `mapstructure:"-"`
	Input       string        `mapstructure:"input" validate:"required"`
	OutDir      string        `mapstructure:"outDir" validate:"required"`
	TopKeywords int           `mapstructure:"topKeywords" validate:"required|int|min:1"`
	Timezone    string        `mapstructure:"timezone"`
	SQLite      string        `mapstructure:"sqlite"`
	Logger      LoggerConfig  `mapstructure:"logger"`
	Serve       ServeConfig   `mapstructure:"serve"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}

// NewViper returns a viper instance with defaults and QD_* environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("input", "conversations.json")
	v.SetDefault("outDir", filepath.Join("site", "data"))
	v.SetDefault("topKeywords", DefaultTopKeywords)
	v.SetDefault("timezone", "Local")
	v.SetDefault("sqlite", "")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "auto")
	v.SetDefault("serve.host", "127.0.0.1")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.siteDir", "site")
	v.SetDefault("serve.maxUploadMB", 256)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.sizeMB", 512)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("metrics.enabled", true)

	v.SetEnvPrefix("QD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the config file (explicit path, or question-digest.yaml in
// the working directory or ~/.config/question-digest) and validates the result.
// A missing default config file is not an error.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", ".config", DefaultConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Path = v.ConfigFileUsed()

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks field rules and the time zone name.
func (c *Config) Validate() error {
	vd := validate.Struct(c)
	if !vd.Validate() {
		return fmt.Errorf("invalid config: %w", vd.Errors)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves the configured time zone; empty and "Local" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Serve.Host, c.Serve.Port)
}

// PipelineOptions returns the aggregator options the config implies.
func (c *Config) PipelineOptions() ([]AggregatorOption, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return []AggregatorOption{WithLocation(loc), WithTopKeywords(c.TopKeywords)}, nil
}

// NewPipelineFromConfig builds a Pipeline using the configured time zone and keyword count.
func NewPipelineFromConfig(c *Config) (*Pipeline, error) {
	opts, err := c.PipelineOptions()
	if err != nil {
		return nil, err
	}
	return NewPipeline(opts...), nil
}
