// Package notify publishes build outcome events to NATS so external
// consumers (chat bots, dashboards) can react to publishes and failures.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
)

// BuildEvent is the payload published for every completed build.
type BuildEvent struct {
	BuildID    string    `json:"build_id"`
	Outcome    string    `json:"outcome"`
	Posts      int       `json:"posts"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher sends build events over a core NATS connection.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the configured NATS server. Returns nil with no
// error when notifications are disabled.
func NewPublisher(cfg config.NotifyConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	conn, err := nats.Connect(cfg.URL,
		nats.Name("blogforge"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	slog.Info("notification publisher connected", logfields.URL(cfg.URL), "subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends a build event. Safe to call on a nil Publisher.
func (p *Publisher) Publish(event BuildEvent) error {
	if p == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal build event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish build event: %w", err)
	}
	slog.Debug("published build event", logfields.BuildID(event.BuildID), "outcome", event.Outcome)
	return nil
}

// Close flushes pending messages and closes the connection. Safe on nil.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Flush()
	p.conn.Close()
}
