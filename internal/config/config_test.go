package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 100, cfg.Assessment.AutoSubmit.BatchSize)
	assert.Equal(t, time.Minute, cfg.Assessment.AutoSubmit.Interval())
	assert.Equal(t, 10*time.Second, cfg.Assessment.LockTTL())
	assert.Equal(t, 5*time.Minute, cfg.Assessment.CacheTTL())
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
database:
  driver: sqlite
  path: test.db
assessment:
  auto_submit:
    interval_seconds: 15
    batch_size: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, 15*time.Second, cfg.Assessment.AutoSubmit.Interval())
	assert.Equal(t, 5, cfg.Assessment.AutoSubmit.BatchSize)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:     ServerConfig{Mode: "release"},
		Database:   DatabaseConfig{Driver: "postgres"},
		JWT:        JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Assessment: AssessmentConfig{AutoSubmit: AutoSubmitConfig{BatchSize: 1}},
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.JWT.Secret = "short"
	assert.Error(t, short.Validate())

	driver := valid
	driver.Database.Driver = "oracle"
	assert.Error(t, driver.Validate())

	batch := valid
	batch.Assessment.AutoSubmit.BatchSize = 0
	assert.Error(t, batch.Validate())
}
