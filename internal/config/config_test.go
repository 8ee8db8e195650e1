package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "30s", cfg.Database.TxTimeout)
	assert.Equal(t, "5s", cfg.Database.LockTimeout)
	assert.Equal(t, grading.DefaultBoundaries(), cfg.Grading.Boundaries)

	policy, err := cfg.GradingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "A", policy.Letter(95))
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  host: db.internal
  lock_timeout: 2s
jwt:
  secret: from-file
grading:
  failing_letter: E
  boundaries:
    - letter: P
      min: 50
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "2s", cfg.Database.LockTimeout)
	assert.Equal(t, 42, cfg.Database.MaxOpenConns)
	assert.Equal(t, "from-file", cfg.JWT.Secret)

	policy, err := cfg.GradingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "P", policy.Letter(50))
	assert.Equal(t, "E", policy.Letter(49))
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing secret", content: "database:\n  host: localhost\n"},
		{name: "bad lock timeout", content: "jwt:\n  secret: s\ndatabase:\n  lock_timeout: soon\n"},
		{name: "duplicate boundary", content: "jwt:\n  secret: s\ngrading:\n  boundaries:\n    - {letter: A, min: 90}\n    - {letter: A, min: 80}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSetFieldFromEnvRejectsBadInt(t *testing.T) {
	cfg := &Config{}
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	assert.Error(t, processStructFields(cfg))
}
