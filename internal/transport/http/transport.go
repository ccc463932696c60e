package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// MessagePath is the peer endpoint envelopes are POSTed to
const MessagePath = "/api/v1/messages"

// Config holds settings for the HTTP transport
type Config struct {
	// Peers maps shard IDs to base URLs (e.g. http://shard-b:8080).
	// A destination missing from the map is unreachable and bounces.
	Peers map[model.ShardID]string

	// Timeout bounds a single delivery attempt
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the HTTP transport
func DefaultConfig() Config {
	return Config{
		Peers:   map[model.ShardID]string{},
		Timeout: 10 * time.Second,
	}
}

// Transport delivers envelopes to peer shards over HTTP. A failed delivery
// bounces the envelope back to the local shard's own handler, modeling the
// transport-level non-delivery notification.
type Transport struct {
	local  model.ShardID
	peers  map[model.ShardID]string
	client *http.Client
	self   transport.Handler
	logger *slog.Logger
}

// Ensure Transport implements the interface
var _ transport.Transport = (*Transport)(nil)

// New creates an HTTP transport sending on behalf of the given shard.
// SetHandler must be called before the first Send so bounces have somewhere
// to land.
func New(local model.ShardID, cfg Config, logger *slog.Logger) *Transport {
	peers := make(map[model.ShardID]string, len(cfg.Peers))
	for id, url := range cfg.Peers {
		peers[id] = url
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Transport{
		local:  local,
		peers:  peers,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// SetHandler attaches the local inbound handler that receives bounced
// envelopes. Set once during wiring.
func (t *Transport) SetHandler(h transport.Handler) {
	t.self = h
}

// Send POSTs the envelope to the destination peer. Unknown peers, request
// failures and non-2xx responses all bounce; sends never block the caller on
// a reply beyond the delivery attempt itself.
func (t *Transport) Send(ctx context.Context, to model.ShardID, msg model.Message) {
	env := model.Envelope{
		To:      to,
		From:    t.local,
		Message: msg,
	}

	baseURL, ok := t.peers[to]
	if !ok {
		t.logger.Warn("unknown destination shard, bouncing",
			slog.String("kind", string(msg.Kind)),
			slog.String("to", string(to)),
		)
		t.bounce(ctx, env)
		return
	}

	if err := t.deliver(ctx, baseURL, env); err != nil {
		t.logger.Warn("delivery failed, bouncing",
			slog.String("kind", string(msg.Kind)),
			slog.String("to", string(to)),
			slog.String("error", err.Error()),
		)
		t.bounce(ctx, env)
	}
}

func (t *Transport) deliver(ctx context.Context, baseURL string, env model.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+MessagePath, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

// bounce returns the envelope to the local handler with the Bounced flag set
func (t *Transport) bounce(ctx context.Context, env model.Envelope) {
	if t.self == nil {
		return
	}
	env.Bounced = true
	if err := t.self.HandleEnvelope(ctx, env); err != nil {
		t.logger.Warn("bounce handling failed",
			slog.String("kind", string(env.Message.Kind)),
			slog.String("error", err.Error()),
		)
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
