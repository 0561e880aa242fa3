package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/home/u")
	assert.Equal(t, "/home/u/.mintabi/mintabi.db", cfg.DBPath)
	assert.Equal(t, "/home/u/.mintabi/history.json", cfg.HistoryPath)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, "mintabi:plans:", cfg.RedisChannelPrefix)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.LogUseCases)
}

func TestMergeFile_OverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 0\nredis_url: redis://localhost:6379/1\n"), 0o644))

	cfg := Default("/home/u")
	require.NoError(t, cfg.mergeFile(path))

	assert.Equal(t, 0, cfg.HistoryLimit)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, "/home/u/.mintabi/mintabi.db", cfg.DBPath)
}

func TestMergeFile_MissingIsFine(t *testing.T) {
	cfg := Default("/home/u")
	require.NoError(t, cfg.mergeFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, Default("/home/u"), cfg)
}

func TestMergeFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: [oops"), 0o644))

	cfg := Default("/home/u")
	assert.Error(t, cfg.mergeFile(path))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MINTABI_DB":            "/tmp/m.db",
		"MINTABI_HISTORY":       "/tmp/h.json",
		"MINTABI_HISTORY_LIMIT": "12",
		"MINTABI_TEMPLATES":     "/tmp/tpl",
		"MINTABI_REDIS_URL":     "redis://r:6379/0",
		"MINTABI_LOG":           "true",
	}
	cfg := Default("/home/u")
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, Config{
		DBPath:             "/tmp/m.db",
		HistoryPath:        "/tmp/h.json",
		HistoryLimit:       12,
		TemplatesDir:       "/tmp/tpl",
		RedisURL:           "redis://r:6379/0",
		RedisChannelPrefix: "mintabi:plans:",
		LogUseCases:        true,
	}, cfg)
}

func TestApplyEnv_IgnoresBadLimit(t *testing.T) {
	cfg := Default("/home/u")
	cfg.applyEnv(func(k string) string {
		if k == "MINTABI_HISTORY_LIMIT" {
			return "-3"
		}
		return ""
	})
	assert.Equal(t, 5, cfg.HistoryLimit)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: "+filepath.Join(dir, "file.db")+"\n"), 0o644))
	t.Setenv("MINTABI_DB", filepath.Join(dir, "env.db"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.db"), cfg.DBPath)
}

func TestValidate(t *testing.T) {
	cfg := Default("/home/u")
	require.NoError(t, cfg.Validate())

	cfg.HistoryLimit = -1
	assert.Error(t, cfg.Validate())

	cfg = Default("/home/u")
	cfg.DBPath = ""
	assert.Error(t, cfg.Validate())
}
