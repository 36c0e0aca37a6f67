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
	for _, key := range []string{"DB_HOST", "PORT", "LOG_JSON", "TRAINING_HISTORY_ENABLED", "BODYCOMP_CONSTANTS_FILE", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.LogJSON)
	assert.True(t, cfg.TrainingHistoryEnabled)
	assert.Empty(t, cfg.ConstantsFile)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("TRAINING_HISTORY_ENABLED", "false")
	t.Setenv("BODYCOMP_CONSTANTS_FILE", "/etc/bodycomp.toml")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_MAX_IDLE_CONNS", "-3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.LogJSON)
	assert.False(t, cfg.TrainingHistoryEnabled)
	assert.Equal(t, "/etc/bodycomp.toml", cfg.ConstantsFile)
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns, "non-positive values fall back")
	assert.Equal(t, 90*time.Second, cfg.DBConnMaxLifetime)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "3307", DBUser: "u", DBPassword: "p", DBName: "metrics"}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "u:p@tcp(db:3307)/metrics?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("DOTENV_PROBE"))
}
