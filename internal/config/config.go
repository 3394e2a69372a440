// Package config manages optional tool configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultMaxRows is the read --max-rows default when nothing overrides it.
const DefaultMaxRows = 100

// Config holds the tool configuration.
type Config struct {
	Excel struct {
		MaxRows int `mapstructure:"max_rows"`
	} `mapstructure:"excel"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Output struct {
		Pretty bool `mapstructure:"pretty"`
	} `mapstructure:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Excel.MaxRows = DefaultMaxRows
	cfg.Log.Level = "warn"
	return &cfg
}

// Load reads configuration from path, or from ~/.officeskills/config.yaml when
// path is empty. A missing default file is not an error; a missing explicit
// file is. Environment variables are never consulted.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("excel.max_rows", DefaultMaxRows)
	v.SetDefault("log.level", "warn")
	v.SetDefault("output.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if cfg.Excel.MaxRows < 0 {
		return nil, fmt.Errorf("excel.max_rows must be >= 0, got %d", cfg.Excel.MaxRows)
	}

	return &cfg, nil
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".officeskills"
	}
	return filepath.Join(home, ".officeskills")
}
