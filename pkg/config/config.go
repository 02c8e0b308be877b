package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// EnvPrefix prefixes environment variables, e.g. RAYTRACER_WIDTH
const EnvPrefix = "RAYTRACER"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by the CLI and the web server.
// Zero Width/Height and negative MaxDepth keep the scene's own values.
type Config struct {
	Width       int    `yaml:"width" mapstructure:"width"`
	Height      int    `yaml:"height" mapstructure:"height"`
	MaxDepth    int    `yaml:"max_depth" mapstructure:"max_depth"`
	Workers     int    `yaml:"workers" mapstructure:"workers"`
	RowsPerTask int    `yaml:"rows_per_task" mapstructure:"rows_per_task"`
	Format      string `yaml:"format" mapstructure:"format"`
	OutputDir   string `yaml:"output_dir" mapstructure:"output_dir"`
	ScenesDir   string `yaml:"scenes_dir" mapstructure:"scenes_dir"`
	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
	Port        int    `yaml:"port" mapstructure:"port"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Width:       0,
		Height:      0,
		MaxDepth:    -1,
		Workers:     0,
		RowsPerTask: 8,
		Format:      "png",
		OutputDir:   "output",
		ScenesDir:   "scenes",
		LogLevel:    "info",
		Port:        8080,
	}
}

// setDefaults registers every key so environment variables are picked up by
// Unmarshal even when no config file mentions them
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("rows_per_task", d.RowsPerTask)
	v.SetDefault("format", d.Format)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("scenes_dir", d.ScenesDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("port", d.Port)
}

// Load resolves the configuration from, in increasing precedence: defaults,
// a YAML config file, RAYTRACER_* environment variables and any flags already
// bound to v. An empty configFile searches ./raytracer.yaml and
// $HOME/.raytracer/raytracer.yaml and tolerates neither existing.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("raytracer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".raytracer"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: width and height must be non-negative, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxDepth < -1 {
		return fmt.Errorf("%w: max_depth must be -1 (scene default) or non-negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.RowsPerTask < 0 {
		return fmt.Errorf("%w: rows_per_task must be non-negative, got %d", ErrInvalidConfig, c.RowsPerTask)
	}
	if _, err := loaders.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be in 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	return nil
}

// ImageFormat returns the parsed output format
func (c *Config) ImageFormat() loaders.Format {
	format, err := loaders.ParseFormat(c.Format)
	if err != nil {
		return loaders.FormatPNG
	}
	return format
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
