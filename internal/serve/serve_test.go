package serve

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/site"
)

func TestShouldIgnoreEvent(t *testing.T) {
	cases := []struct {
		path   string
		ignore bool
	}{
		{"content/posts/hello.md", false},
		{"content/posts/.hello.md.swp", true},
		{"content/posts/hello.md~", true},
		{"content/posts/#hello.md#", true},
		{"content/.git/HEAD", true},
		{"content/Thumbs.db", true},
		{"static/logo.png", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ignore, shouldIgnoreEvent(tc.path), tc.path)
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	req, trigger := newDebouncer()

	for i := 0; i < 10; i++ {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a rebuild request after the debounce window")
	}

	select {
	case <-req:
		t.Fatal("burst should coalesce into a single request")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestLiveReloadHubBroadcast(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	defer hub.Shutdown()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ": connected", strings.TrimSpace(line))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast("build-42")

	deadline := time.After(2 * time.Second)
	for {
		lineCh := make(chan string, 1)
		go func() {
			l, readErr := reader.ReadString('\n')
			if readErr == nil {
				lineCh <- l
			}
		}()
		select {
		case l := <-lineCh:
			if strings.HasPrefix(l, "data:") {
				require.Contains(t, l, "build-42")
				return
			}
		case <-deadline:
			t.Fatal("did not receive broadcast event")
		}
	}
}

func TestLiveReloadHubDeduplicatesTokens(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	defer hub.Shutdown()

	hub.Broadcast("a")
	hub.Broadcast("a")
	hub.Broadcast("")
	require.Equal(t, "a", hub.lastToken)
}

type brokenWriter struct {
	header http.Header
}

func (b *brokenWriter) Header() http.Header        { return b.header }
func (b *brokenWriter) Write([]byte) (int, error)  { return 0, io.ErrClosedPipe }
func (b *brokenWriter) WriteHeader(statusCode int) {}
func (b *brokenWriter) Flush()                     {}

func TestLiveReloadHubUnregistersOnWriteFailure(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	defer hub.Shutdown()

	// A token larger than the write buffer forces the initial event through
	// the underlying writer, which fails immediately.
	hub.Broadcast(strings.Repeat("x", 64*1024))

	w := &brokenWriter{header: http.Header{}}
	hub.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livereload", nil))

	require.Equal(t, 0, hub.ClientCount())
}

func TestLiveReloadHubShutdownRejectsClients(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	hub.Shutdown()

	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livereload", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServedPagesReferenceLiveReloadScript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "posts"), 0o755))
	page := "<!doctype html><html><body>hi</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte(page), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(out, "posts", "one.html"), []byte(page), 0o644))

	cfg := &config.Config{}
	cfg.Serve.Port = config.DefaultPort
	cfg.Serve.LiveReload = true
	cfg.Output.Directory = out
	s := NewServer(cfg)

	s.finishBuild(&site.Report{BuildID: "b1"})

	srv := httptest.NewServer(s.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Contains(t, string(body), `<script src="/livereload.js"></script>`)

	script, err := http.Get(srv.URL + "/livereload.js")
	require.NoError(t, err)
	scriptBody, err := io.ReadAll(script.Body)
	require.NoError(t, script.Body.Close())
	require.NoError(t, err)
	require.Contains(t, string(scriptBody), "EventSource")

	// Re-running injection must not duplicate the tag.
	s.finishBuild(&site.Report{BuildID: "b2"})
	tagged, err := os.ReadFile(filepath.Join(out, "posts", "one.html"))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(tagged), "livereload.js"))
}

func TestInjectSkipsLiveReloadWhenDisabled(t *testing.T) {
	out := t.TempDir()
	page := "<html><body>hi</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte(page), 0o644))

	cfg := &config.Config{}
	cfg.Serve.Port = config.DefaultPort
	cfg.Output.Directory = out
	s := NewServer(cfg)
	s.finishBuild(&site.Report{BuildID: "b1"})

	body, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.NotContains(t, string(body), "livereload.js")
}

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Serve.Port = config.DefaultPort
	s := NewServer(cfg)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
