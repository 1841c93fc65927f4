package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "SENTIVIEW_PRESET", "FEEDBACK_API_URL", "VALKEY_INIT_ADDRESS", "VALKEY_TLS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "classic", cfg.Preset)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.FeedbackAPIURL)
	assert.Equal(t, "localhost:6379", cfg.ValkeyAddress)
	assert.False(t, cfg.ValkeyTLS)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SENTIVIEW_PRESET", "Extended")
	t.Setenv("SENTIVIEW_STYLES", "/etc/sentiview/styles.toml")
	t.Setenv("FEEDBACK_API_TOKEN", "token")
	t.Setenv("VALKEY_TLS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "extended", cfg.Preset)
	assert.Equal(t, "/etc/sentiview/styles.toml", cfg.StylesPath)
	assert.Equal(t, "token", cfg.FeedbackAPIToken)
	assert.True(t, cfg.ValkeyTLS)
}

func TestLoadInvalidTLS(t *testing.T) {
	t.Setenv("VALKEY_TLS", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "envs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "envs", ".env.test"),
		[]byte("SENTIVIEW_TEST_ONLY=from-file\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { _ = os.Unsetenv("SENTIVIEW_TEST_ONLY") })

	LoadEnv("test")
	assert.Equal(t, "from-file", os.Getenv("SENTIVIEW_TEST_ONLY"))

	LoadEnv("missing")
}
