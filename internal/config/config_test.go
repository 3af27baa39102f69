package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "site:\n  title: Test Blog\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test Blog", cfg.Site.Title)
	require.Equal(t, "content/posts", cfg.Content.Dir)
	require.Equal(t, "./public", cfg.Output.Directory)
	require.True(t, cfg.Output.Clean)
	require.Equal(t, DefaultPort, cfg.Serve.Port)
	require.Equal(t, time.Hour, cfg.Daemon.RebuildInterval)
	require.Equal(t, "blogforge.builds", cfg.Notify.Subject)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("BLOG_BASE_URL", "https://blog.test")
	path := writeConfig(t, "site:\n  title: T\n  base_url: ${BLOG_BASE_URL}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://blog.test", cfg.Site.BaseURL)
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "serve:\n  port: 99999\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "port out of range")
}

func TestLoad_NotifyRequiresURL(t *testing.T) {
	path := writeConfig(t, "notify:\n  enabled: true\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notify.url")
}

func TestInit_RefusesExistingWithoutForce(t *testing.T) {
	path := writeConfig(t, "site:\n  title: keep\n")

	err := Init(path, false)
	require.Error(t, err)

	require.NoError(t, Init(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Blog", cfg.Site.Title)
}
