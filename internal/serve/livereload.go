package serve

import (
	"bufio"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/baykovr/blogforge/internal/metrics"
)

// LiveReloadHub manages SSE clients for build-change broadcasts.
type LiveReloadHub struct {
	mu        sync.RWMutex
	nextID    int
	clients   map[int]*lrClient
	recorder  metrics.Recorder
	closed    bool
	lastToken string
}

type lrClient struct {
	id   int
	ch   chan string
	done chan struct{}
}

func NewLiveReloadHub(recorder metrics.Recorder) *LiveReloadHub {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &LiveReloadHub{clients: map[int]*lrClient{}, recorder: recorder}
}

// ClientCount reports the number of connected SSE clients.
func (h *LiveReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP implements the SSE endpoint at /livereload.
func (h *LiveReloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "livereload shutting down", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	client := &lrClient{ch: make(chan string, 8), done: make(chan struct{})}
	h.mu.Lock()
	client.id = h.nextID
	h.nextID++
	h.clients[client.id] = client
	current := h.lastToken
	count := len(h.clients)
	h.mu.Unlock()
	h.recorder.SetLiveReloadClients(count)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(": connected\n\n"); err != nil {
		slog.Debug("livereload write", "error", err)
		h.removeClient(client.id)
		return
	}
	if current != "" {
		if _, err := bw.WriteString("data: {\"token\":\"" + current + "\"}\n\n"); err != nil {
			slog.Debug("livereload write", "error", err)
			h.removeClient(client.id)
			return
		}
	}
	if err := bw.Flush(); err == nil {
		flusher.Flush()
	}

	hb := time.NewTicker(30 * time.Second)
	defer hb.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			h.removeClient(client.id)
			return
		case <-client.done:
			h.removeClient(client.id)
			return
		case <-hb.C:
			if _, err := bw.WriteString(": ping\n\n"); err == nil {
				bw.Flush()
				flusher.Flush()
			} else {
				slog.Debug("livereload ping write", "error", err)
			}
		case token := <-client.ch:
			if _, err := bw.WriteString("data: {\"token\":\"" + token + "\"}\n\n"); err == nil {
				bw.Flush()
				flusher.Flush()
			} else {
				slog.Debug("livereload broadcast write", "error", err)
			}
		}
	}
}

func (h *LiveReloadHub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.done)
		h.recorder.SetLiveReloadClients(len(h.clients))
	}
}

// Broadcast sends a new token to all clients. Clients whose channels are
// full are dropped rather than blocking the broadcaster.
func (h *LiveReloadHub) Broadcast(token string) {
	h.mu.Lock()
	if h.closed || token == "" || token == h.lastToken {
		h.mu.Unlock()
		return
	}
	h.lastToken = token
	snapshot := make([]*lrClient, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	dropped := 0
	for _, c := range snapshot {
		select {
		case c.ch <- token:
		default:
			dropped++
			h.removeClient(c.id)
		}
	}
	slog.Debug("livereload broadcast", "token", token, "clients", len(snapshot), "dropped", dropped)
}

// Shutdown closes all clients and prevents future broadcasts.
func (h *LiveReloadHub) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := h.clients
	h.clients = map[int]*lrClient{}
	h.mu.Unlock()
	for _, c := range clients {
		close(c.done)
	}
	h.recorder.SetLiveReloadClients(0)
}

// LiveReloadScript is the JS snippet served at /livereload.js.
const LiveReloadScript = `(() => {
  if (window.__BLOGFORGE_LR__) return;
  window.__BLOGFORGE_LR__ = true;
  function connect() {
    const es = new EventSource('/livereload');
    let first = true; let current = null;
    es.onmessage = (e) => {
      try {
        const p = JSON.parse(e.data);
        if (first) { current = p.token; first = false; return; }
        if (p.token && p.token !== current) { location.reload(); }
      } catch (_) {}
    };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  }
  connect();
})();`
