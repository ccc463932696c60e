package player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// Service manages this shard's own player registers: the display name and
// the locally cached personal stats. Both are owned and mutated only by
// their home shard.
type Service struct {
	storage   storage.Storage
	roles     *role.Service
	transport transport.Transport
	logger    *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, roles *role.Service, transport transport.Transport, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		roles:     roles,
		transport: transport,
		logger:    logger,
	}
}

// SetName stores the player's display name locally and propagates it to the
// authority shard's directory: directly when this shard is the authority,
// via an UpdatePlayerName message otherwise. An unconfigured shard keeps the
// name locally and logs that nothing was propagated.
func (s *Service) SetName(ctx context.Context, name string) error {
	if err := s.storage.SaveLocalPlayerName(ctx, name); err != nil {
		return err
	}

	r, err := s.roles.Role(ctx)
	if err != nil {
		return err
	}

	if !r.Configured() {
		s.logger.Warn("no authority shard configured, name not propagated",
			slog.String("name", name),
		)
		return nil
	}

	if r.IsAuthority {
		return s.storage.SavePlayerName(ctx, s.roles.LocalShard(), name)
	}

	s.transport.Send(ctx, r.AuthorityShardID, model.Message{
		Kind:       model.MessageUpdatePlayerName,
		Owner:      s.roles.LocalShard(),
		PlayerName: name,
	})
	return nil
}

// Name returns the locally stored display name; empty means anonymous
func (s *Service) Name(ctx context.Context) (string, error) {
	return s.storage.GetLocalPlayerName(ctx)
}

// Stats returns this shard's cached personal stats, or ErrStatsNotFound
// before the first finished game
func (s *Service) Stats(ctx context.Context) (*model.PlayerStats, error) {
	return s.storage.GetLocalStats(ctx)
}

// IsRecord reports whether a game finishing with the given candy count beats
// this shard's cached personal best. The first game is always a record.
func (s *Service) IsRecord(ctx context.Context, candies uint32) (bool, error) {
	stats, err := s.storage.GetLocalStats(ctx)
	if err != nil {
		if errors.Is(err, model.ErrStatsNotFound) {
			return true, nil
		}
		return false, err
	}
	return candies > stats.HighestScore, nil
}

// RecordGame folds a finished game into the cached personal stats
func (s *Service) RecordGame(ctx context.Context, candies uint32, timestamp uint64) error {
	stats, err := s.storage.GetLocalStats(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrStatsNotFound) {
			return err
		}
		stats = model.NewPlayerStats(s.roles.LocalShard())
	}

	stats.AddGame(candies, timestamp)
	return s.storage.SaveLocalStats(ctx, stats)
}

// ApplyLeaderboardReset zeroes the locally cached aggregate-derived state:
// the personal counters and the cached leaderboard snapshot. Session history
// is never touched; a reset affects derived state only.
func (s *Service) ApplyLeaderboardReset(ctx context.Context) error {
	stats, err := s.storage.GetLocalStats(ctx)
	if err == nil {
		stats.HighestScore = 0
		stats.GamesPlayed = 0
		stats.TotalCandies = 0
		stats.CurrentStreak = 0
		stats.BestStreak = 0
		if err := s.storage.SaveLocalStats(ctx, stats); err != nil {
			return err
		}
		s.logger.Info("local stats cleared after leaderboard reset")
	} else if !errors.Is(err, model.ErrStatsNotFound) {
		return err
	}

	return s.storage.SaveLeaderboard(ctx, nil)
}
