package config

// Package config handles configuration loading for aktienduell.
// It supports YAML config files with environment variable overrides.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"    yaml:"data"`
	Assets  AssetsConfig  `mapstructure:"assets"  yaml:"assets"`
	Render  RenderConfig  `mapstructure:"render"  yaml:"render"`
	Fetch   FetchConfig   `mapstructure:"fetch"   yaml:"fetch"`
	Janitor JanitorConfig `mapstructure:"janitor" yaml:"janitor"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// DataConfig locates the stock table.
type DataConfig struct {
	TablePath string `mapstructure:"table_path" yaml:"table_path"`
}

// AssetsConfig locates backgrounds, logos and fonts.
type AssetsConfig struct {
	Dir         string `mapstructure:"dir"          yaml:"dir"`
	FontRegular string `mapstructure:"font_regular" yaml:"font_regular"`
	FontBold    string `mapstructure:"font_bold"    yaml:"font_bold"`
}

// RenderConfig holds the output settings of the compositor.
type RenderConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// FetchConfig holds the update-pipeline settings.
type FetchConfig struct {
	BatchSize        int           `mapstructure:"batch_size"        yaml:"batch_size"`
	Workers          int           `mapstructure:"workers"           yaml:"workers"`
	Cooldown         time.Duration `mapstructure:"cooldown"          yaml:"cooldown"`
	MaxAttempts      int           `mapstructure:"max_attempts"      yaml:"max_attempts"`
	BackoffBase      time.Duration `mapstructure:"backoff_base"      yaml:"backoff_base"`
	FailureThreshold float64       `mapstructure:"failure_threshold" yaml:"failure_threshold"`
	MinUpdatedQuote  float64       `mapstructure:"min_updated_quote" yaml:"min_updated_quote"`
}

// JanitorConfig holds the generated-file cleanup settings.
type JanitorConfig struct {
	MaxAge   time.Duration `mapstructure:"max_age"  yaml:"max_age"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.aktienduell/config.yaml (home directory)
//  3. /etc/aktienduell/config.yaml (system)
//
// Environment variables override config file values.
// Format: AKTIENDUELL_<SECTION>_<KEY>, e.g., AKTIENDUELL_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".aktienduell"))
	v.AddConfigPath("/etc/aktienduell")

	v.SetEnvPrefix("AKTIENDUELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("AKTIENDUELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.table_path", "stock_data.csv")

	// Asset defaults: empty font paths select the embedded fallback.
	v.SetDefault("assets.dir", "assets")
	v.SetDefault("assets.font_regular", "")
	v.SetDefault("assets.font_bold", "")

	// Render defaults
	v.SetDefault("render.output_dir", "static/generated")

	// Fetch defaults, matching the pacing the upstream API tolerates.
	v.SetDefault("fetch.batch_size", 40)
	v.SetDefault("fetch.workers", 6)
	v.SetDefault("fetch.cooldown", "3s")
	v.SetDefault("fetch.max_attempts", 3)
	v.SetDefault("fetch.backoff_base", "500ms")
	v.SetDefault("fetch.failure_threshold", 0.25)
	v.SetDefault("fetch.min_updated_quote", 0.80)

	// Janitor defaults
	v.SetDefault("janitor.max_age", "24h")
	v.SetDefault("janitor.interval", "1h")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
