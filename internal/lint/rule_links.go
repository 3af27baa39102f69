package lint

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/baykovr/blogforge/internal/frontmatter"
)

// RelativeLinksRule checks that relative link and image targets inside post
// bodies resolve to files on disk. Absolute URLs and site-absolute paths are
// out of scope; those belong to the rendered site, not the content store.
type RelativeLinksRule struct{}

// Name returns the rule identifier.
func (r *RelativeLinksRule) Name() string { return "relative-links" }

// AppliesTo returns true for markdown content files.
func (r *RelativeLinksRule) AppliesTo(filePath string) bool { return IsContentFile(filePath) }

// Check extracts links from the markdown AST and verifies relative targets.
func (r *RelativeLinksRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	_, body, _, _, err := frontmatter.Split(content)
	if err != nil {
		// The front matter rule reports delimiter problems.
		return nil, nil
	}

	var issues []Issue
	for _, dest := range extractDestinations(body) {
		if !isRelativeTarget(dest) {
			continue
		}
		target := strings.SplitN(dest, "#", 2)[0]
		if target == "" {
			continue
		}
		resolved := filepath.Join(filepath.Dir(filePath), filepath.FromSlash(target))
		if _, err := os.Stat(resolved); err != nil {
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("relative link target does not exist: %s", dest),
			})
		}
	}
	return issues, nil
}

// extractDestinations walks the goldmark AST collecting link and image targets.
func extractDestinations(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var dests []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Link:
			dests = append(dests, string(node.Destination))
		case *gmast.Image:
			dests = append(dests, string(node.Destination))
		case *gmast.AutoLink:
			dests = append(dests, string(node.URL(body)))
		}
		return gmast.WalkContinue, nil
	})
	return dests
}

func isRelativeTarget(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	if u, err := url.Parse(dest); err == nil && u.Scheme != "" {
		return false
	}
	return true
}
