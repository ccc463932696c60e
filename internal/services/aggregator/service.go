package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sort"

	"github.com/Dima4663737373/MicroSlither.io/internal/dependencies/clock"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
)

// LeaderboardSize is the maximum number of published leaderboard entries
const LeaderboardSize = 100

// Service merges reported game results into the per-player aggregate stats
// and recomputes the published leaderboard. It runs only on the authority
// shard; the router never dispatches aggregation messages elsewhere.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new aggregator service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Apply folds one reported game into the owner's aggregate stats, marks the
// owner as a leaderboard participant and rebuilds the published snapshot.
// Results may arrive from many shards in any order; correctness does not
// depend on arrival order because the rebuild always re-derives from the
// full current stats map.
//
// The reporter's isNewRecord claim is carried on the wire but not trusted
// here: AddGame re-derives record status against the aggregate's own view.
func (s *Service) Apply(ctx context.Context, owner model.ShardID, candies uint32, _ bool) error {
	stats, err := s.storage.GetPlayerStats(ctx, owner)
	if err != nil {
		if !errors.Is(err, model.ErrStatsNotFound) {
			return err
		}
		stats = model.NewPlayerStats(owner)
	}

	stats.AddGame(candies, clock.Micros(s.clock.Now()))

	if err := s.storage.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	if err := s.storage.AddParticipant(ctx, owner); err != nil {
		return err
	}

	s.logger.Info("aggregate stats updated",
		slog.String("shard", string(owner)),
		slog.Uint64("games_played", uint64(stats.GamesPlayed)),
		slog.Uint64("highest_score", uint64(stats.HighestScore)),
		slog.Uint64("total_candies", stats.TotalCandies),
	)

	_, err = s.Rebuild(ctx)
	return err
}

// SetPlayerName records a player's display name in the directory. Directory
// updates do not trigger a rebuild on their own; the next aggregate update
// picks the name up.
func (s *Service) SetPlayerName(ctx context.Context, owner model.ShardID, name string) error {
	return s.storage.SavePlayerName(ctx, owner, name)
}

// Rebuild recomputes the published leaderboard wholesale: every
// participant's stats joined with the optional directory name, sorted
// descending by (highest score, total candies, games played) and truncated
// to the top LeaderboardSize entries. The result is a pure function of the
// stats and directory maps, so rebuilding twice without intervening writes
// yields identical lists.
func (s *Service) Rebuild(ctx context.Context) ([]model.LeaderboardEntry, error) {
	participants, err := s.storage.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	// Storage backends return the participant set in no particular order;
	// fix the order up front so equal-ranked entries come out the same way
	// every rebuild
	slices.Sort(participants)

	entries := make([]model.LeaderboardEntry, 0, len(participants))
	for _, id := range participants {
		stats, err := s.storage.GetPlayerStats(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrStatsNotFound) {
				continue
			}
			return nil, err
		}

		name, err := s.storage.GetPlayerName(ctx, id)
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.LeaderboardEntry{
			ShardID:      stats.ShardID,
			PlayerName:   name,
			HighestScore: stats.HighestScore,
			GamesPlayed:  stats.GamesPlayed,
			TotalCandies: stats.TotalCandies,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].HighestScore != entries[j].HighestScore {
			return entries[i].HighestScore > entries[j].HighestScore
		}
		if entries[i].TotalCandies != entries[j].TotalCandies {
			return entries[i].TotalCandies > entries[j].TotalCandies
		}
		return entries[i].GamesPlayed > entries[j].GamesPlayed
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}

	if err := s.storage.SaveLeaderboard(ctx, entries); err != nil {
		return nil, err
	}

	s.logger.Info("leaderboard rebuilt", slog.Int("entries", len(entries)))

	return entries, nil
}

// Leaderboard returns the published snapshot
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.storage.GetLeaderboard(ctx)
}

// PlayerStats returns one player's aggregate stats
func (s *Service) PlayerStats(ctx context.Context, id model.ShardID) (*model.PlayerStats, error) {
	return s.storage.GetPlayerStats(ctx, id)
}
