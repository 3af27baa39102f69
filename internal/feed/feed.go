// Package feed renders RSS and sitemap documents from the parsed post list,
// independent of the external generator's own feed support.
package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/baykovr/blogforge/internal/post"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	Category    []string `xml:"category,omitempty"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

// Site carries the channel-level fields of the feed.
type Site struct {
	Title       string
	Description string
	BaseURL     string
}

// RenderRSS produces an RSS 2.0 document for the given posts.
func RenderRSS(site Site, posts []*post.Post) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := postURL(site.BaseURL, p)
		items = append(items, rssItem{
			Title:       p.Meta.Title,
			Link:        link,
			Description: p.Meta.Summary,
			Category:    p.Meta.Categories,
			PubDate:     p.Meta.Date.Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        site.BaseURL,
			Description: site.Description,
			Items:       items,
		},
	}
	return marshalWithHeader(doc)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RenderSitemap produces a sitemap.xml document for the given posts.
func RenderSitemap(site Site, posts []*post.Post) ([]byte, error) {
	urls := []sitemapURL{{Loc: site.BaseURL}}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     postURL(site.BaseURL, p),
			LastMod: p.Meta.Date.Format("2006-01-02"),
		})
	}
	doc := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return marshalWithHeader(doc)
}

// WriteFiles renders feed.xml, sitemap.xml and one feed per category
// (categories/<slug>/feed.xml) into dir.
func WriteFiles(dir string, site Site, posts []*post.Post) error {
	rss, err := RenderRSS(site, posts)
	if err != nil {
		return fmt.Errorf("render rss: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "feed.xml"), rss, 0o644); err != nil {
		return fmt.Errorf("write feed.xml: %w", err)
	}

	sm, err := RenderSitemap(site, posts)
	if err != nil {
		return fmt.Errorf("render sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sitemap.xml"), sm, 0o644); err != nil {
		return fmt.Errorf("write sitemap.xml: %w", err)
	}

	for category, group := range post.ByCategory(posts) {
		catSite := site
		catSite.Title = fmt.Sprintf("%s - %s", site.Title, category)
		catRSS, err := RenderRSS(catSite, group)
		if err != nil {
			return fmt.Errorf("render category feed %q: %w", category, err)
		}
		catDir := filepath.Join(dir, "categories", post.Slugify(category))
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return fmt.Errorf("create category feed dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(catDir, "feed.xml"), catRSS, 0o644); err != nil {
			return fmt.Errorf("write category feed %q: %w", category, err)
		}
	}
	return nil
}

func postURL(base string, p *post.Post) string {
	u, err := url.JoinPath(base, "posts", p.Slug(), "/")
	if err != nil {
		return base + "/posts/" + p.Slug() + "/"
	}
	return u
}

func marshalWithHeader(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, []byte(xml.Header)...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
