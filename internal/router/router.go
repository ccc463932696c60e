package router

import (
	"context"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/aggregator"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/player"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// Router dispatches inbound cross-shard messages to the aggregation or
// player layers depending on message kind and the local shard's role.
// Bounced envelopes are dropped before any dispatch, and messages restricted
// to a role the local shard does not hold are ignored with a log line:
// receipt there indicates stale configuration, not corruption.
type Router struct {
	roles      *role.Service
	aggregator *aggregator.Service
	players    *player.Service
	logger     *slog.Logger
}

// Ensure Router implements the transport handler
var _ transport.Handler = (*Router)(nil)

// New creates a new message router
func New(roles *role.Service, aggregator *aggregator.Service, players *player.Service, logger *slog.Logger) *Router {
	return &Router{
		roles:      roles,
		aggregator: aggregator,
		players:    players,
		logger:     logger,
	}
}

// HandleEnvelope processes one inbound envelope to completion. Errors are
// returned only for persistence failures; role mismatches and unknown kinds
// are soft-ignored.
func (r *Router) HandleEnvelope(ctx context.Context, env model.Envelope) error {
	msg := env.Message

	if env.Bounced {
		r.logger.Warn("dropping bounced message",
			slog.String("kind", string(msg.Kind)),
			slog.String("to", string(env.To)),
		)
		return nil
	}

	localRole, err := r.roles.Role(ctx)
	if err != nil {
		return err
	}

	switch msg.Kind {
	case model.MessageStartGame:
		// Reserved kind; sessions are stored only on their owning shard
		r.logger.Info("ignoring start_game message",
			slog.String("from", string(env.From)),
		)
		return nil

	case model.MessageCandyCollected:
		if !localRole.IsAuthority {
			r.ignoreForRole(msg.Kind, env.From)
			return nil
		}
		// Candy totals are reconciled through the game-finished report;
		// the live event is informational
		r.logger.Info("candy collected",
			slog.String("owner", string(msg.Owner)),
			slog.String("session_id", string(msg.SessionID)),
		)
		return nil

	case model.MessageGameFinished, model.MessageUpdateLeaderboard:
		if !localRole.IsAuthority {
			r.ignoreForRole(msg.Kind, env.From)
			return nil
		}
		return r.aggregator.Apply(ctx, msg.Owner, msg.CandiesCollected, msg.IsNewRecord)

	case model.MessageUpdatePlayerName:
		if !localRole.IsAuthority {
			r.ignoreForRole(msg.Kind, env.From)
			return nil
		}
		return r.aggregator.SetPlayerName(ctx, msg.Owner, msg.PlayerName)

	case model.MessageLeaderboardReset:
		if localRole.IsAuthority {
			r.ignoreForRole(msg.Kind, env.From)
			return nil
		}
		return r.players.ApplyLeaderboardReset(ctx)

	default:
		r.logger.Warn("ignoring message of unknown kind",
			slog.String("kind", string(msg.Kind)),
			slog.String("from", string(env.From)),
		)
		return nil
	}
}

func (r *Router) ignoreForRole(kind model.MessageKind, from model.ShardID) {
	r.logger.Info("ignoring message not addressed to this shard's role",
		slog.String("kind", string(kind)),
		slog.String("from", string(from)),
	)
}
