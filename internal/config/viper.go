// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/customer-grouper/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. CGROUP_LOG_LEVEL.
const EnvPrefix = "CGROUP"

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ModelConfig locates the exported model artifact.
type ModelConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SegmentsConfig locates the segment catalog. An empty or missing file means
// the built-in catalog.
type SegmentsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// CSVConfig controls batch CSV output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ServerConfig controls the dashboard server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// AIConfig controls the optional segment insight.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Model    ModelConfig    `mapstructure:"model" yaml:"model"`
	Segments SegmentsConfig `mapstructure:"segments" yaml:"segments"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig loads configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load builds the configuration: defaults, then the config file, then
// environment variables. When configFile is set it must exist; otherwise
// config.yaml is searched in $HOME/.customer-grouper, .customer-grouper and
// the working directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.customer-grouper")
		v.AddConfigPath(".customer-grouper")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. API key comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("model.path", "customer_segmentation_model.yaml")
	v.SetDefault("segments.file", "")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 10)
	v.SetDefault("ai.api_key", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Model.Path) == "" {
		return fmt.Errorf("model.path must be set")
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.Server.Addr) == "" {
		return fmt.Errorf("server.addr must be set")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// DelimiterRune returns the configured CSV delimiter.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
