package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hxhooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// chdirTemp isolates tests from .env files in the working directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaultsWithEnvKey(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HXHOOKS_KEY", testKey)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.MaxDistance)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, testKey, cfg.Security.Key)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileOverridesAndExpands(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DEMO_PORT", "9090")
	t.Setenv("DEMO_KEY", testKey)

	path := writeConfig(t, `
server:
  addr: ":${DEMO_PORT}"
security:
  key: "${DEMO_KEY}"
search:
  debounce: 150ms
  max_distance: 1
logging:
  level: WARNING
  format: JSON
metrics:
  enabled: true
  path: stats
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, testKey, cfg.Security.Key)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 1, cfg.Search.MaxDistance)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.PollInterval, "unset fields keep defaults")
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/stats", cfg.Metrics.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("HXHOOKS_KEY", "")
	require.NoError(t, os.Unsetenv("HXHOOKS_KEY"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HXHOOKS_KEY="+testKey+"\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, testKey, cfg.Security.Key)
}

func TestLoadErrors(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HXHOOKS_KEY", testKey)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = Load(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Search.PollInterval = 0
	cfg.Search.MaxDistance = -1
	cfg.Metrics.Path = ""

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"server.addr", "security.key", "search.poll_interval", "search.max_distance", "metrics.path"} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Default()
	cfg.Security.Key = testKey
	assert.NoError(t, cfg.Validate())
}

func TestRedactedYAML(t *testing.T) {
	cfg := Default()
	cfg.Security.Key = testKey

	out, err := cfg.Redacted().YAML()
	require.NoError(t, err)
	assert.NotContains(t, out, testKey)
	assert.Contains(t, out, "<redacted>")
	assert.Contains(t, out, "debounce: 300ms")
	assert.Equal(t, testKey, cfg.Security.Key, "Redacted must not modify the receiver")
}

func TestNormalizeLogging(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" Debug "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogLevelError, NormalizeLogLevel("error"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("logfmt"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("json"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "component", "toggle")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"component":"toggle"`)
}
