// Package workspace manages staging directories for site builds, either
// ephemeral (timestamped under the system temp dir) or persistent.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/baykovr/blogforge/internal/logfields"
)

// Manager handles workspace operations (both temporary and persistent).
type Manager struct {
	baseDir    string
	dir        string
	persistent bool // if true, use a fixed directory and skip cleanup
}

// NewManager creates a workspace manager with ephemeral timestamped directories.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager creates a manager over a fixed directory
// (baseDir/subdir) that survives Cleanup.
func NewPersistentManager(baseDir, subdir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if subdir == "" {
		subdir = "staging"
	}
	return &Manager{
		baseDir:    baseDir,
		dir:        filepath.Join(baseDir, subdir),
		persistent: true,
	}
}

// Create makes the workspace directory: a fixed dir for persistent mode, a
// fresh timestamped dir otherwise.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return fmt.Errorf("failed to create persistent workspace: %w", err)
		}
		slog.Debug("using persistent workspace", logfields.Path(m.dir))
		return nil
	}

	timestamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("blogforge-%s", timestamp))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	m.dir = dir
	slog.Debug("created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory path.
func (m *Manager) Path() string { return m.dir }

// Cleanup removes ephemeral workspaces; persistent workspaces are kept.
func (m *Manager) Cleanup() error {
	if m.dir == "" || m.persistent {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}

// CreateSubdir creates a subdirectory within the workspace.
func (m *Manager) CreateSubdir(name string) (string, error) {
	if m.dir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	subdir := filepath.Join(m.dir, name)
	if err := os.MkdirAll(subdir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}
	return subdir, nil
}
