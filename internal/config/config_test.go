package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TODOAPP_API_URL", "TODOAPP_STATE_FILE", "TODOAPP_LOG_FILE",
		"TODOAPP_DEBOUNCE_MS", "TODOAPP_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	require.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	require.Equal(t, 500*time.Millisecond, cfg.Debounce())
	require.Equal(t, 15*time.Second, cfg.Timeout())
	require.NotEmpty(t, cfg.StateFile)
	require.Equal(t, "todoAppState.json", filepath.Base(cfg.StateFile))
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	p := filepath.Join(t.TempDir(), "todoapp.toml")
	body := `
api_base_url = "http://example.test/api"
debounce_ms = 250
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	cfg, err := LoadFrom(p)
	require.NoError(t, err)
	require.Equal(t, "http://example.test/api", cfg.APIBaseURL)
	require.Equal(t, 250*time.Millisecond, cfg.Debounce())
	// Untouched fields keep defaults.
	require.Equal(t, DefaultTimeoutSec, cfg.TimeoutSec)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	p := filepath.Join(t.TempDir(), "todoapp.toml")
	require.NoError(t, os.WriteFile(p, []byte(`api_base_url = "http://file.test/api"`), 0o600))
	t.Setenv("TODOAPP_API_URL", "http://env.test/api")
	t.Setenv("TODOAPP_DEBOUNCE_MS", "100")

	cfg, err := LoadFrom(p)
	require.NoError(t, err)
	require.Equal(t, "http://env.test/api", cfg.APIBaseURL)
	require.Equal(t, 100, cfg.DebounceMS)
}

func TestBadConfigFile(t *testing.T) {
	clearEnv(t)

	p := filepath.Join(t.TempDir(), "todoapp.toml")
	require.NoError(t, os.WriteFile(p, []byte(`api_base_url = [`), 0o600))

	_, err := LoadFrom(p)
	require.Error(t, err)
}
