package site

import (
	"context"

	"github.com/baykovr/blogforge/internal/feed"
)

// stageWriteFeeds renders feed.xml and sitemap.xml straight from the parsed
// post list. Feed failures don't abort the build; the rendered site is intact.
func stageWriteFeeds(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg
	site := feed.Site{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
	}
	if err := feed.WriteFiles(bs.Generator.outputDir, site, bs.Posts); err != nil {
		return newWarnStageError(StageWriteFeeds, err)
	}
	return nil
}
