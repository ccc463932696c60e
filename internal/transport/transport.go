package transport

import (
	"context"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

// Handler receives inbound envelopes on a shard. The message router is the
// only production implementation.
type Handler interface {
	HandleEnvelope(ctx context.Context, env model.Envelope) error
}

// Transport carries fire-and-forget messages between shards. Send returns
// nothing: a message either eventually arrives at its destination, comes
// back to the sender's Handler with the Bounced flag set, or is lost. There
// is no request/response correlation, no timeout and no cancellation at this
// layer; delivery guarantees beyond at-least-once-or-bounce belong to the
// transport implementation, not the protocol.
type Transport interface {
	Send(ctx context.Context, to model.ShardID, msg model.Message)
}
