package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 30*24*time.Hour, cfg.AccessTokenTTL)
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9001")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("EMAIL_HOST", "smtp.mailtrap.io")
	t.Setenv("EMAIL_PORT", "587")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Addr())
	assert.Equal(t, StoreMySQL, cfg.StoreDriver)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.True(t, cfg.SMTPEnabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("mongo_database: from_file\nredis_db: 3\nport: \"5000\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "6000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.MongoDatabase)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "6000", cfg.ServerPort)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store_driver")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
