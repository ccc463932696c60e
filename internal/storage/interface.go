package storage

import (
	"context"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

// Storage defines the interface for a shard's durable state. Every shard
// owns exactly one Storage; no shard ever reads or writes another shard's
// state. Errors from any method are treated as fatal by callers: an
// operation that cannot persist must fail rather than look committed.
type Storage interface {
	// Role register (per-shard singleton)
	SaveRole(ctx context.Context, role *model.Role) error
	// GetRole returns the stored role, or a zero-value role when none has
	// been recorded yet.
	GetRole(ctx context.Context) (*model.Role, error)

	// Session operations (this shard's append-only history)
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	// ListSessions returns every session stored on this shard, oldest first.
	ListSessions(ctx context.Context) ([]*model.GameSession, error)

	// Current-session pointer register; an empty ID clears the pointer
	SetCurrentSessionID(ctx context.Context, id model.SessionID) error
	GetCurrentSessionID(ctx context.Context) (model.SessionID, error)

	// NextSessionCounter returns the next unused counter value, starting at
	// 0, and advances the counter.
	NextSessionCounter(ctx context.Context) (uint64, error)
	ResetSessionCounter(ctx context.Context) error

	// Local player registers (player shards and authority alike)
	SaveLocalPlayerName(ctx context.Context, name string) error
	GetLocalPlayerName(ctx context.Context) (string, error)
	SaveLocalStats(ctx context.Context, stats *model.PlayerStats) error
	GetLocalStats(ctx context.Context) (*model.PlayerStats, error)

	// Aggregate per-player stats (authority shard only)
	SavePlayerStats(ctx context.Context, stats *model.PlayerStats) error
	GetPlayerStats(ctx context.Context, id model.ShardID) (*model.PlayerStats, error)
	DeleteAllPlayerStats(ctx context.Context) error

	// Leaderboard participant set (append-only, idempotent insert)
	AddParticipant(ctx context.Context, id model.ShardID) error
	ListParticipants(ctx context.Context) ([]model.ShardID, error)
	ClearParticipants(ctx context.Context) error

	// Player directory (authority shard only); empty name means unknown
	SavePlayerName(ctx context.Context, id model.ShardID, name string) error
	GetPlayerName(ctx context.Context, id model.ShardID) (string, error)

	// Published leaderboard snapshot, replaced wholesale on every rebuild.
	// Saving nil clears the snapshot.
	SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error
	GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}
