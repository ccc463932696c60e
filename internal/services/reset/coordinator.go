package reset

import (
	"context"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// Coordinator clears the authority shard's aggregate state and fans the
// reset out to every shard known to have participated in the leaderboard.
type Coordinator struct {
	storage   storage.Storage
	roles     *role.Service
	transport transport.Transport
	logger    *slog.Logger
}

// New creates a new reset coordinator
func New(storage storage.Storage, roles *role.Service, transport transport.Transport, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		storage:   storage,
		roles:     roles,
		transport: transport,
		logger:    logger,
	}
}

// Reset is a protected administrative action: it fails with ErrNotAuthority
// on any other shard. On the authority it snapshots the participant set,
// clears the aggregate stats, the participant set, the published leaderboard
// and the session counter, then notifies every snapshotted participant
// except the authority itself.
func (c *Coordinator) Reset(ctx context.Context) error {
	isAuthority, err := c.roles.IsAuthority(ctx)
	if err != nil {
		return err
	}
	if !isAuthority {
		return model.ErrNotAuthority
	}

	// Snapshot before clearing; the fan-out targets the pre-reset set
	participants, err := c.storage.ListParticipants(ctx)
	if err != nil {
		return err
	}

	if err := c.storage.SaveLeaderboard(ctx, nil); err != nil {
		return err
	}
	if err := c.storage.DeleteAllPlayerStats(ctx); err != nil {
		return err
	}
	if err := c.storage.ClearParticipants(ctx); err != nil {
		return err
	}
	if err := c.storage.ResetSessionCounter(ctx); err != nil {
		return err
	}

	local := c.roles.LocalShard()
	notified := 0
	for _, p := range participants {
		if p == local {
			continue
		}
		c.transport.Send(ctx, p, model.Message{Kind: model.MessageLeaderboardReset})
		notified++
	}

	c.logger.Info("leaderboard reset",
		slog.Int("participants", len(participants)),
		slog.Int("notified", notified),
	)

	return nil
}
