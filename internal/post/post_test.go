package post

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validPost = `---
title: Nix and Terraform
date: 2024-03-01T10:00:00Z
categories:
  - nix
  - terraform
---
Body text.
`

func TestParse_ValidPost(t *testing.T) {
	p, err := Parse("a.md", []byte(validPost))
	require.NoError(t, err)
	require.Equal(t, "Nix and Terraform", p.Meta.Title)
	require.Equal(t, []string{"nix", "terraform"}, p.Meta.Categories)
	require.Equal(t, 2024, p.Meta.Date.Year())
	require.Equal(t, "Body text.\n", string(p.Body))
	require.Equal(t, "nix-and-terraform", p.Slug())
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := Parse("a.md", []byte("---\ndate: 2024-03-01T10:00:00Z\n---\nbody\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "title is required")
}

func TestParse_MissingDate(t *testing.T) {
	_, err := Parse("a.md", []byte("---\ntitle: T\n---\nbody\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "date is required")
}

func TestParse_BlankCategory(t *testing.T) {
	_, err := Parse("a.md", []byte("---\ntitle: T\ndate: 2024-03-01T10:00:00Z\ncategories: [\"\"]\n---\nbody\n"))
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  Nix & Terraform!  ":   "nix-terraform",
		"already-slugged":        "already-slugged",
		"Ünicode Titles Work":    "ünicode-titles-work",
		"multiple   spaces here": "multiple-spaces-here",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestTitleFromFilename(t *testing.T) {
	require.Equal(t, "Nix Terraform Workflow", TitleFromFilename("nix-terraform-workflow.md"))
	require.Equal(t, "Hello World", TitleFromFilename("posts/hello_world.markdown"))
}

func writePost(t *testing.T, dir, name, title, date string, draft bool) {
	t.Helper()
	content := "---\ntitle: " + title + "\ndate: " + date + "\n"
	if draft {
		content += "draft: true\n"
	}
	content += "categories:\n  - misc\n---\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "old.md", "Old", "2020-01-01T00:00:00Z", false)
	writePost(t, dir, "new.md", "New", "2024-01-01T00:00:00Z", false)
	writePost(t, dir, "draft.md", "Draft", "2024-02-01T00:00:00Z", true)
	writePost(t, dir, "future.md", "Future", "2999-01-01T00:00:00Z", false)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	posts, errs := LoadDir(dir, LoadOptions{Now: now})
	require.Empty(t, errs)
	require.Len(t, posts, 2)
	require.Equal(t, "New", posts[0].Meta.Title)
	require.Equal(t, "Old", posts[1].Meta.Title)

	posts, errs = LoadDir(dir, LoadOptions{Now: now, IncludeDrafts: true, IncludeFuture: true})
	require.Empty(t, errs)
	require.Len(t, posts, 4)
	require.Equal(t, "Future", posts[0].Meta.Title)
}

func TestLoadDir_ReportsInvalidPosts(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "good.md", "Good", "2024-01-01T00:00:00Z", false)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\ndate: 2024-01-01T00:00:00Z\n---\nno title\n"), 0o644))

	posts, errs := LoadDir(dir, LoadOptions{})
	require.Len(t, posts, 1)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "bad.md")
}

func TestByCategory(t *testing.T) {
	a := &Post{Meta: Metadata{Title: "A", Categories: []string{"nix"}}}
	b := &Post{Meta: Metadata{Title: "B", Categories: []string{"nix", "terraform"}}}

	groups := ByCategory([]*Post{a, b})
	require.Len(t, groups["nix"], 2)
	require.Len(t, groups["terraform"], 1)
	require.Equal(t, "B", groups["terraform"][0].Meta.Title)
}
