package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/site"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(site.EnvSkipHugo, "1")

	dir := t.TempDir()
	contentDir := filepath.Join(dir, "content", "posts")
	require.NoError(t, os.MkdirAll(contentDir, 0o755))
	post := "---\ntitle: One\ndate: 2024-01-02T00:00:00Z\ncategories:\n  - misc\n---\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "one.md"), []byte(post), 0o644))

	cfg := &config.Config{
		Site:    config.SiteConfig{Title: "Test Blog", BaseURL: "https://blog.test", Language: "en"},
		Content: config.ContentConfig{Dir: contentDir},
		Output:  config.OutputConfig{Directory: filepath.Join(dir, "public"), Clean: true},
		History: config.HistoryConfig{Path: ":memory:"},
		Daemon:  config.DaemonConfig{RebuildInterval: time.Hour},
	}
	return cfg
}

func TestRunBuildRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	d, err := New("blogforge.yaml", cfg)
	require.NoError(t, err)
	defer func() { _ = d.store.Close() }()

	d.runBuild(context.Background())

	records, err := d.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "success", records[0].Outcome)
	require.Equal(t, 1, records[0].Posts)
}

func TestRunBuildRecordsFailure(t *testing.T) {
	cfg := testConfig(t)
	bad := "---\ntitle: Broken\n---\nNo date.\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.Dir, "bad.md"), []byte(bad), 0o644))

	d, err := New("blogforge.yaml", cfg)
	require.NoError(t, err)
	defer func() { _ = d.store.Close() }()

	d.runBuild(context.Background())

	records, err := d.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "failed", records[0].Outcome)
	require.Contains(t, records[0].Error, "bad.md")
}

func TestReloadConfigSwapsValidConfig(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "blogforge.yaml")
	updated := `site:
  title: Updated Blog
  base_url: https://blog.test
content:
  dir: ` + cfg.Content.Dir + `
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(updated), 0o644))

	d, err := New(cfgPath, cfg)
	require.NoError(t, err)
	defer func() { _ = d.store.Close() }()

	d.reloadConfig()
	require.Equal(t, "Updated Blog", d.config().Site.Title)
}

func TestReloadConfigKeepsOldOnInvalid(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "blogforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("serve:\n  port: -1\n"), 0o644))

	d, err := New(cfgPath, cfg)
	require.NoError(t, err)
	defer func() { _ = d.store.Close() }()

	d.reloadConfig()
	require.Equal(t, "Test Blog", d.config().Site.Title)
}
