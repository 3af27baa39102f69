// Package sitecheck validates a rendered site tree: every internal link
// in the generated HTML must resolve to a file in the output directory.
package sitecheck

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// BrokenLink is one unresolvable internal reference.
type BrokenLink struct {
	SourceFile string `json:"source_file"`
	Target     string `json:"target"`
}

// Result summarizes a site check run.
type Result struct {
	PagesScanned int          `json:"pages_scanned"`
	LinksChecked int          `json:"links_checked"`
	Broken       []BrokenLink `json:"broken,omitempty"`
}

func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Checker walks a rendered site directory.
type Checker struct {
	root string
}

func NewChecker(root string) *Checker {
	return &Checker{root: root}
}

// Run scans every HTML file under the root and verifies internal targets.
func (c *Checker) Run() (*Result, error) {
	if st, err := os.Stat(c.root); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("site directory not found: %s", c.root)
	}

	result := &Result{}
	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		result.PagesScanned++
		return c.checkPage(p, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Checker) checkPage(pagePath string, result *Result) error {
	f, err := os.Open(pagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", pagePath, err)
	}

	rel, err := filepath.Rel(c.root, pagePath)
	if err != nil {
		rel = pagePath
	}

	for _, target := range collectTargets(doc) {
		internal, cleaned := classifyTarget(target)
		if !internal {
			continue
		}
		result.LinksChecked++
		if !c.targetExists(pagePath, cleaned) {
			result.Broken = append(result.Broken, BrokenLink{SourceFile: rel, Target: target})
		}
	}
	return nil
}

// collectTargets gathers href and src attributes from anchor, image,
// script, and stylesheet nodes.
func collectTargets(doc *html.Node) []string {
	var targets []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var attr string
			switch n.Data {
			case "a", "link":
				attr = "href"
			case "img", "script", "source":
				attr = "src"
			}
			if attr != "" {
				for _, a := range n.Attr {
					if a.Key == attr && a.Val != "" {
						targets = append(targets, a.Val)
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return targets
}

// classifyTarget reports whether the target is an internal link and, if
// so, returns it stripped of query and fragment.
func classifyTarget(target string) (internal bool, cleaned string) {
	if target == "" || strings.HasPrefix(target, "#") {
		return false, ""
	}
	u, err := url.Parse(target)
	if err != nil {
		return false, ""
	}
	if u.Scheme != "" || u.Host != "" {
		return false, ""
	}
	if u.Path == "" {
		return false, ""
	}
	return true, u.Path
}

// targetExists resolves a site-relative or page-relative path to a file
// in the output tree. Directory-style paths resolve to index.html.
func (c *Checker) targetExists(pagePath, target string) bool {
	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = filepath.Join(c.root, filepath.FromSlash(path.Clean(target)))
	} else {
		resolved = filepath.Join(filepath.Dir(pagePath), filepath.FromSlash(target))
	}

	st, err := os.Stat(resolved)
	if err == nil {
		if !st.IsDir() {
			return true
		}
		_, err = os.Stat(filepath.Join(resolved, "index.html"))
		return err == nil
	}
	if strings.HasSuffix(target, "/") {
		_, err = os.Stat(filepath.Join(resolved, "index.html"))
		return err == nil
	}
	return false
}
