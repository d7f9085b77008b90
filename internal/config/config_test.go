package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2333, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 10, cfg.Upload.MaxSizeMB)
	assert.Contains(t, cfg.Upload.AllowedExtensions, "pdf")
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: Production
database:
  host: db.internal
  user: folio
  password: secret
  name: folio
redis:
  host: cache.internal
  db: 2
upload:
  max_size_mb: 25
  allowed_extensions: [".PNG", "pdf"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 25, cfg.Upload.MaxSizeMB)
	assert.Equal(t, []string{"png", "pdf"}, cfg.Upload.AllowedExtensions, "extensions lowercased and dot-stripped")
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 70000\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	db := DatabaseConfig{
		Host: "127.0.0.1", Port: 3306,
		User: "folio", Password: "pw", Name: "folio_space", Charset: "utf8mb4",
	}
	dsn := db.DSNValue()
	assert.Contains(t, dsn, "folio:pw@tcp(127.0.0.1:3306)/folio_space")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	db.DSN = "custom-dsn"
	assert.Equal(t, "custom-dsn", db.DSNValue(), "explicit dsn wins")
}

func TestRedisURLValue(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379, DB: 1}
	assert.Equal(t, "redis://localhost:6379/1", r.URLValue())

	r.Password = "pw"
	assert.Equal(t, "redis://:pw@localhost:6379/1", r.URLValue())

	r.URL = "localhost:6380"
	assert.Equal(t, "redis://localhost:6380", r.URLValue(), "scheme added to bare url")
}
