package theme

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baykovr/blogforge/internal/config"
)

func TestInstall_RequiresNameAndRepo(t *testing.T) {
	inst := NewInstaller(filepath.Join(t.TempDir(), "themes"))

	_, err := inst.Install(context.Background(), config.ThemeConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "theme.name")

	_, err = inst.Install(context.Background(), config.ThemeConfig{Name: "paper"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no repo")
}

func TestClassifyError(t *testing.T) {
	var authErr *AuthError
	err := classifyError("https://x", errors.New("authentication required"))
	require.True(t, errors.As(err, &authErr))

	var nfErr *NotFoundError
	err = classifyError("https://x", errors.New("repository does not exist"))
	require.True(t, errors.As(err, &nfErr))

	var toErr *NetworkTimeoutError
	err = classifyError("https://x", errors.New("dial tcp: i/o timeout"))
	require.True(t, errors.As(err, &toErr))
	require.True(t, transient(err))

	err = classifyError("https://x", errors.New("something else"))
	require.False(t, transient(err))
}

func TestInstall_LocalRepoClone(t *testing.T) {
	// go-git supports filesystem remotes, so a local source repo exercises
	// the clone path without network access.
	src := t.TempDir()
	initLocalRepo(t, src)

	inst := NewInstaller(filepath.Join(t.TempDir(), "themes"))
	dest, err := inst.Install(context.Background(), config.ThemeConfig{
		Name: "local-theme",
		Repo: src,
	})
	require.NoError(t, err)
	require.DirExists(t, dest)
	require.FileExists(t, filepath.Join(dest, "theme.toml"))

	// Second install takes the update path and must be a no-op.
	dest2, err := inst.Install(context.Background(), config.ThemeConfig{
		Name: "local-theme",
		Repo: src,
	})
	require.NoError(t, err)
	require.Equal(t, dest, dest2)
}
