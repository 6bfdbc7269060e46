package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func TestLoadWritesDefault(t *testing.T) {
	root := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "config", "cardsmith", "config.toml"))

	assert.Equal(t, filepath.Join(root, "data", "cardsmith", "expansions", "cards.cdb"), cfg.Database)
	assert.Equal(t, filepath.Join(root, "data", "cardsmith", "script"), cfg.ScriptDir)
	assert.Equal(t, filepath.Join(root, "data", "cardsmith", "pics"), cfg.PicsDir)
	assert.Equal(t, int64(10000100), cfg.IDStart)
	assert.Equal(t, 3, cfg.Download.Attempts)

	timeout, err := cfg.Download.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
database = "/games/edopro/expansions/custom.cdb"
id_start = 10000500

[download]
attempts = 5
`), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/games/edopro/expansions/custom.cdb", cfg.Database)
	assert.Equal(t, int64(10000500), cfg.IDStart)
	assert.Equal(t, 5, cfg.Download.Attempts)
	assert.Equal(t, "30s", cfg.Download.Timeout)

	t.Setenv("CARDSMITH_PICS_DIR", "/games/edopro/pics")
	t.Setenv("CARDSMITH_DOWNLOAD_TIMEOUT", "5s")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/games/edopro/pics", cfg.PicsDir)
	assert.Equal(t, "5s", cfg.Download.Timeout)
	assert.NoFileExists(t, GetConfigFilePath())
}

func TestLoadFlagsOverride(t *testing.T) {
	isolate(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("script-dir", "", "")
	require.NoError(t, flags.Set("db", "flag.cdb"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "flag.cdb", cfg.Database)
	assert.Equal(t, Default().ScriptDir, cfg.ScriptDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[download]\ntimeout = \"soon\"\n"), 0644))

	_, err := Load(path, nil)
	assert.ErrorContains(t, err, "download.timeout")
}

func TestLoadWritesDefaultAtExplicitPath(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "elsewhere", "my.toml")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, Default(), cfg)
	assert.NoFileExists(t, filepath.Join(root, "config", "cardsmith", "config.toml"))
}

func TestSaveRoundTrip(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "nested", "dir", "config.toml")

	cfg := Default()
	cfg.TemplatesDir = "/srv/templates"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
