// Package config loads notectl settings from an optional config file and
// NOTECTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultListLimit caps note listings when neither flag nor config say
// otherwise.
const DefaultListLimit = 10

// Config holds the user-tunable settings. Command-line flags override these.
type Config struct {
	DBPath    string `mapstructure:"db_path"`
	Editor    string `mapstructure:"editor"`
	ListLimit int    `mapstructure:"list_limit"`
}

// Load reads config.yaml from configDir (default: ~/.notectl when empty) and
// the NOTECTL_DB_PATH / NOTECTL_EDITOR / NOTECTL_LIST_LIMIT environment
// variables. A missing config file is not an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			configDir = filepath.Join(homeDir, ".notectl")
		}
	}
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("NOTECTL")
	v.AutomaticEnv()

	// Defaults double as key registrations so AutomaticEnv values survive
	// Unmarshal.
	v.SetDefault("db_path", "")
	v.SetDefault("editor", "")
	v.SetDefault("list_limit", DefaultListLimit)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultListLimit
	}
	return cfg, nil
}
