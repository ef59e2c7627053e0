package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"save": { "slot": "slot2" },
		"storage": { "type": "postgres", "postgres": { "dsn": "host=10.0.0.1" } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "srw-engine.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "slot2", viper.GetString("save.slot"))

	sc := Storage()
	assert.Equal(t, "postgres", sc.Type)
	assert.Equal(t, "host=10.0.0.1", sc.Postgres.DSN)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "srw-engine.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "sqlite", viper.GetString("storage.type"))
	assert.Equal(t, "./srw-engine.db", viper.GetString("storage.sqlite.path"))
	assert.Equal(t, "", viper.GetString("storage.postgres.dsn"))
	assert.Equal(t, "default", viper.GetString("save.slot"))
	assert.Equal(t, 800, viper.GetInt("automation.stepDelayMs"))
	assert.Equal(t, 0.33, viper.GetFloat64("automation.spiritChance"))
	assert.Equal(t, int64(0), viper.GetInt64("rng.seed"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "srw-engine", viper.GetString("otel.serviceName"))
	assert.Equal(t, "", viper.GetString("otel.endpoint"))
	assert.Equal(t, true, viper.GetBool("otel.insecure"))
	assert.Equal(t, 15, viper.GetInt("otel.exportIntervalSec"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	// Missing config file falls back to defaults.
	err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", GetString("logLevel"))
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)
	viper.Set("testFloat", 0.5)
	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
	assert.Equal(t, 0.5, GetFloat64("testFloat"))
}
