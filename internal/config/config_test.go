package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STATEMAP_DATA", "STATEMAP_ADDR", "STATEMAP_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "statemap.yaml")
	content := `
data:
  path: /srv/polygons.csv
plot:
  width: 100
  close: true
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/polygons.csv", cfg.Data.Path)
	assert.Equal(t, 100, cfg.Plot.Width)
	assert.Equal(t, 30, cfg.Plot.Height, "unset keys keep defaults")
	assert.True(t, cfg.Plot.Close)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plot: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STATEMAP_DATA", "/env/data.csv")
		t.Setenv("STATEMAP_ADDR", ":9999")
		t.Setenv("STATEMAP_LOG_LEVEL", "WARN")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/env/data.csv", cfg.Data.Path)
		assert.Equal(t, ":9999", cfg.Server.Addr)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("env file fills unset vars", func(t *testing.T) {
		clearEnv(t)
		require.NoError(t, os.Unsetenv("STATEMAP_DATA"))
		envFile := filepath.Join(t.TempDir(), ".env.local")
		require.NoError(t, os.WriteFile(envFile, []byte("STATEMAP_DATA=/dotenv/data.csv\n"), 0o644))

		require.NoError(t, LoadEnvFiles(envFile, filepath.Join(t.TempDir(), "absent.env")))
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/dotenv/data.csv", cfg.Data.Path)
	})
}

func TestLoadEnvFilesUnreadable(t *testing.T) {
	dir := t.TempDir()

	err := LoadEnvFiles(filepath.Join(dir, "absent.env"), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Plot.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Data.Path = ""
	assert.Error(t, cfg.Validate())
}
