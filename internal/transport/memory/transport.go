package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// Network connects in-process shards. It backs single-process deployments
// and tests; each shard gets its own Transport bound to the shared network.
type Network struct {
	mu       sync.RWMutex
	handlers map[model.ShardID]transport.Handler
}

// NewNetwork creates an empty in-process network
func NewNetwork() *Network {
	return &Network{
		handlers: make(map[model.ShardID]transport.Handler),
	}
}

// Register attaches a shard's inbound handler to the network. A shard with
// no registered handler is unreachable: sends to it bounce.
func (n *Network) Register(id model.ShardID, h transport.Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[id] = h
}

// Unregister detaches a shard, making it unreachable
func (n *Network) Unregister(id model.ShardID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.handlers, id)
}

func (n *Network) handler(id model.ShardID) transport.Handler {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.handlers[id]
}

// Transport sends messages from one shard over its Network
type Transport struct {
	local  model.ShardID
	net    *Network
	logger *slog.Logger
}

// Ensure Transport implements the interface
var _ transport.Transport = (*Transport)(nil)

// NewTransport creates a Transport sending on behalf of the given shard
func (n *Network) NewTransport(local model.ShardID, logger *slog.Logger) *Transport {
	return &Transport{
		local:  local,
		net:    n,
		logger: logger,
	}
}

// Send delivers the message to the destination's handler, or bounces the
// envelope back to the sender's own handler when the destination is not
// registered. Handler errors are logged, never returned: sends are
// fire-and-forget.
func (t *Transport) Send(ctx context.Context, to model.ShardID, msg model.Message) {
	env := model.Envelope{
		To:      to,
		From:    t.local,
		Message: msg,
	}

	dest := t.net.handler(to)
	if dest == nil {
		env.Bounced = true
		if self := t.net.handler(t.local); self != nil {
			if err := self.HandleEnvelope(ctx, env); err != nil {
				t.logger.Warn("bounce handling failed",
					slog.String("kind", string(msg.Kind)),
					slog.String("to", string(to)),
					slog.String("error", err.Error()),
				)
			}
		}
		return
	}

	if err := dest.HandleEnvelope(ctx, env); err != nil {
		t.logger.Warn("message handling failed",
			slog.String("kind", string(msg.Kind)),
			slog.String("to", string(to)),
			slog.String("error", err.Error()),
		)
	}
}
