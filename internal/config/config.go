package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// StorageConfig selects and parameterizes the save-slot backend.
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	Sqlite   SqliteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
}

// SqliteConfig holds SQLite backend settings.
type SqliteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds Postgres backend settings.
type PostgresConfig struct {
	DSN string `json:"dsn" mapstructure:"dsn"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults apply.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("storage.type", "sqlite")
	viper.SetDefault("storage.sqlite.path", "./srw-engine.db")
	viper.SetDefault("storage.postgres.dsn", "")

	viper.SetDefault("save.slot", "default")

	viper.SetDefault("automation.stepDelayMs", 800)
	viper.SetDefault("automation.spiritChance", 0.33)

	viper.SetDefault("rng.seed", 0)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "srw-engine")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.metricsFile", "")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.exportIntervalSec", 15)

	viper.SetConfigName("srw-engine.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Storage returns the storage backend selection.
func Storage() StorageConfig {
	var cfg StorageConfig
	_ = viper.UnmarshalKey("storage", &cfg)
	return cfg
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}
