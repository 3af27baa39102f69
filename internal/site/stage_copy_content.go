package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stageCopyContent assembles the staging site tree: filtered posts under
// content/posts, plus the project's static assets and installed theme.
func stageCopyContent(_ context.Context, bs *BuildState) error {
	postsDir := filepath.Join(bs.SiteRoot, "content", "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return newFatalStageError(StageCopyContent, err)
	}

	// Posts are copied verbatim; the generator parses front matter itself.
	for _, p := range bs.Posts {
		dst := filepath.Join(postsDir, filepath.Base(p.Path))
		if err := copyFile(p.Path, dst); err != nil {
			return newFatalStageError(StageCopyContent, fmt.Errorf("copy post %s: %w", p.Path, err))
		}
	}

	// Non-markdown assets living beside posts (images etc.) ride along.
	if err := copyAssets(bs.Generator.cfg.Content.Dir, postsDir); err != nil {
		return newFatalStageError(StageCopyContent, err)
	}

	// static/ and themes/ are optional project directories.
	for _, dir := range []string{"static", "themes"} {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			if err := copyDir(dir, filepath.Join(bs.SiteRoot, dir)); err != nil {
				return newFatalStageError(StageCopyContent, fmt.Errorf("copy %s: %w", dir, err))
			}
		}
	}
	return nil
}

func copyAssets(srcDir, dstDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch filepath.Ext(path) {
		case ".md", ".markdown":
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return copyFile(path, dst)
	})
}

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
