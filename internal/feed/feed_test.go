package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baykovr/blogforge/internal/post"
)

func samplePosts() []*post.Post {
	return []*post.Post{
		{Meta: post.Metadata{
			Title:      "Nix and Terraform",
			Date:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Categories: []string{"nix", "terraform"},
			Summary:    "Declarative infra notes",
		}},
		{Meta: post.Metadata{
			Title: "Hello World",
			Date:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			Slug:  "hello",
		}},
	}
}

func TestRenderRSS(t *testing.T) {
	out, err := RenderRSS(Site{Title: "Blog", BaseURL: "https://blog.test", Description: "d"}, samplePosts())
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, `<rss version="2.0">`)
	require.Contains(t, s, "<title>Nix and Terraform</title>")
	require.Contains(t, s, "https://blog.test/posts/nix-and-terraform/")
	require.Contains(t, s, "<category>terraform</category>")
	// Explicit slug wins over the derived one.
	require.Contains(t, s, "https://blog.test/posts/hello/")
	require.Contains(t, s, "Fri, 01 Mar 2024 10:00:00 +0000")
}

func TestRenderSitemap(t *testing.T) {
	out, err := RenderSitemap(Site{BaseURL: "https://blog.test"}, samplePosts())
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, "http://www.sitemaps.org/schemas/sitemap/0.9")
	require.Contains(t, s, "<loc>https://blog.test</loc>")
	require.Contains(t, s, "<lastmod>2024-03-01</lastmod>")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFiles(dir, Site{Title: "B", BaseURL: "https://b.test"}, samplePosts()))

	for _, name := range []string{"feed.xml", "sitemap.xml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NotEmpty(t, data)
	}
}

func TestWriteFilesCategoryFeeds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFiles(dir, Site{Title: "B", BaseURL: "https://b.test"}, samplePosts()))

	nix, err := os.ReadFile(filepath.Join(dir, "categories", "nix", "feed.xml"))
	require.NoError(t, err)
	require.Contains(t, string(nix), "<title>B - nix</title>")
	require.Contains(t, string(nix), "Nix and Terraform")
	// The uncategorized post stays out of category feeds.
	require.NotContains(t, string(nix), "Hello World")

	require.FileExists(t, filepath.Join(dir, "categories", "terraform", "feed.xml"))
	require.NoDirExists(t, filepath.Join(dir, "categories", "hello"))
}
