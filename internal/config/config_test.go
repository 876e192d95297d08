package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
	assert.NotEmpty(t, cfg.StatePath)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("KOPI_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KOPI_HOME", home)

	content := "base_url: https://coffee.example.com/api\ntimeout_seconds: 5\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://coffee.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KOPI_HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(":\n\t- nope"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KOPI_HOME", home)

	content := "base_url: https://file.example.com/api\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

	t.Setenv("KOPI_API_URL", "https://env.example.com/api")
	t.Setenv("KOPI_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
}

func TestTimeoutFallback(t *testing.T) {
	cfg := Config{TimeoutSeconds: 0}
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	cfg = Config{TimeoutSeconds: -1}
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KOPI_HOME", home)

	cfg := Default()
	cfg.BaseURL = "https://saved.example.com/api"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com/api", loaded.BaseURL)
}
