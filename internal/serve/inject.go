package serve

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/baykovr/blogforge/internal/logfields"
)

// injectLiveReload post-processes rendered HTML files, inserting the
// livereload.js script tag right before </body> so browsers open the SSE
// stream. Files already carrying the tag are left alone.
func injectLiveReload(root string) error {
	inject := []byte(`<script src="/livereload.js"></script>`)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d == nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		b, rerr := os.ReadFile(p)
		if rerr != nil {
			return nil
		}
		if bytes.Contains(b, []byte("/livereload.js")) {
			return nil
		}
		idx := strings.LastIndex(strings.ToLower(string(b)), "</body>")
		if idx == -1 {
			return nil
		}
		var out bytes.Buffer
		out.Write(b[:idx])
		out.Write(inject)
		out.WriteByte('\n')
		out.Write(b[idx:])
		if werr := os.WriteFile(p, out.Bytes(), 0o644); werr != nil {
			slog.Debug("livereload inject write failed", logfields.Path(p), logfields.Error(werr))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("livereload injection walk: %w", err)
	}
	return nil
}
