package post

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/baykovr/blogforge/internal/logfields"
)

// LoadOptions control which posts a directory scan yields.
type LoadOptions struct {
	IncludeDrafts bool
	IncludeFuture bool
	Now           time.Time // zero means time.Now()
}

// LoadDir walks a content directory and parses every markdown post.
// Posts that fail to parse are returned as errors; filtering (drafts, future
// dates) happens after successful parsing so invalid drafts still surface.
func LoadDir(dir string, opts LoadOptions) ([]*Post, []error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var posts []*Post
	var errs []error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
				return fs.SkipDir
			}
			return nil
		}
		if !isMarkdown(path) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		p, perr := ParseFile(path)
		if perr != nil {
			errs = append(errs, perr)
			return nil
		}
		if p.Meta.Draft && !opts.IncludeDrafts {
			slog.Debug("skipping draft post", logfields.Post(path))
			return nil
		}
		if p.Future(now) && !opts.IncludeFuture {
			slog.Debug("skipping future-dated post", logfields.Post(path), slog.Time("date", p.Meta.Date))
			return nil
		}
		posts = append(posts, p)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	SortByDate(posts)
	return posts, errs
}

// SortByDate orders posts newest first; ties break on title for stability.
func SortByDate(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Meta.Date.Equal(posts[j].Meta.Date) {
			return posts[i].Meta.Title < posts[j].Meta.Title
		}
		return posts[i].Meta.Date.After(posts[j].Meta.Date)
	})
}

// ByCategory groups posts per declared category, preserving the input order
// inside each group.
func ByCategory(posts []*Post) map[string][]*Post {
	groups := make(map[string][]*Post)
	for _, p := range posts {
		for _, c := range p.Meta.Categories {
			groups[c] = append(groups[c], p)
		}
	}
	return groups
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
