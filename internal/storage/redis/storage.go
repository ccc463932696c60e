package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Role operations

func (s *Storage) SaveRole(ctx context.Context, role *model.Role) error {
	data, err := json.Marshal(role)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roleKey(s.cfg.KeyPrefix), data, 0).Err()
}

func (s *Storage) GetRole(ctx context.Context) (*model.Role, error) {
	data, err := s.client.Get(ctx, roleKey(s.cfg.KeyPrefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Role{}, nil
		}
		return nil, err
	}

	var role model.Role
	if err := json.Unmarshal(data, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKey(s.cfg.KeyPrefix, session.ID)

	// Only append to the history list on first save; updates keep their slot
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, sessionHistoryKey(s.cfg.KeyPrefix), string(session.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(s.cfg.KeyPrefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	ids, err := s.client.LRange(ctx, sessionHistoryKey(s.cfg.KeyPrefix), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.GameSession{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(s.cfg.KeyPrefix, model.SessionID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var session model.GameSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

func (s *Storage) SetCurrentSessionID(ctx context.Context, id model.SessionID) error {
	key := currentSessionKey(s.cfg.KeyPrefix)
	if id == "" {
		return s.client.Del(ctx, key).Err()
	}
	return s.client.Set(ctx, key, string(id), 0).Err()
}

func (s *Storage) GetCurrentSessionID(ctx context.Context) (model.SessionID, error) {
	id, err := s.client.Get(ctx, currentSessionKey(s.cfg.KeyPrefix)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.SessionID(id), nil
}

func (s *Storage) NextSessionCounter(ctx context.Context) (uint64, error) {
	// INCR returns the post-increment value; the counter hands out values
	// starting at 0
	next, err := s.client.Incr(ctx, sessionCounterKey(s.cfg.KeyPrefix)).Result()
	if err != nil {
		return 0, err
	}
	return uint64(next - 1), nil
}

func (s *Storage) ResetSessionCounter(ctx context.Context) error {
	return s.client.Del(ctx, sessionCounterKey(s.cfg.KeyPrefix)).Err()
}

// Local player registers

func (s *Storage) SaveLocalPlayerName(ctx context.Context, name string) error {
	return s.client.Set(ctx, localPlayerNameKey(s.cfg.KeyPrefix), name, 0).Err()
}

func (s *Storage) GetLocalPlayerName(ctx context.Context) (string, error) {
	name, err := s.client.Get(ctx, localPlayerNameKey(s.cfg.KeyPrefix)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

func (s *Storage) SaveLocalStats(ctx context.Context, stats *model.PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, localStatsKey(s.cfg.KeyPrefix), data, 0).Err()
}

func (s *Storage) GetLocalStats(ctx context.Context) (*model.PlayerStats, error) {
	data, err := s.client.Get(ctx, localStatsKey(s.cfg.KeyPrefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Aggregate stats operations

func (s *Storage) SavePlayerStats(ctx context.Context, stats *model.PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerStatsKey(s.cfg.KeyPrefix, stats.ShardID), data, 0)
	pipe.SAdd(ctx, playerStatsIndexKey(s.cfg.KeyPrefix), string(stats.ShardID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayerStats(ctx context.Context, id model.ShardID) (*model.PlayerStats, error) {
	data, err := s.client.Get(ctx, playerStatsKey(s.cfg.KeyPrefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) DeleteAllPlayerStats(ctx context.Context) error {
	indexKey := playerStatsIndexKey(s.cfg.KeyPrefix)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, playerStatsKey(s.cfg.KeyPrefix, model.ShardID(id)))
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Participant set operations

func (s *Storage) AddParticipant(ctx context.Context, id model.ShardID) error {
	return s.client.SAdd(ctx, participantsKey(s.cfg.KeyPrefix), string(id)).Err()
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.ShardID, error) {
	members, err := s.client.SMembers(ctx, participantsKey(s.cfg.KeyPrefix)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.ShardID, len(members))
	for i, m := range members {
		ids[i] = model.ShardID(m)
	}
	return ids, nil
}

func (s *Storage) ClearParticipants(ctx context.Context) error {
	return s.client.Del(ctx, participantsKey(s.cfg.KeyPrefix)).Err()
}

// Player directory operations

func (s *Storage) SavePlayerName(ctx context.Context, id model.ShardID, name string) error {
	return s.client.Set(ctx, playerNameKey(s.cfg.KeyPrefix, id), name, 0).Err()
}

func (s *Storage) GetPlayerName(ctx context.Context, id model.ShardID) (string, error) {
	name, err := s.client.Get(ctx, playerNameKey(s.cfg.KeyPrefix, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

// Leaderboard snapshot operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	key := leaderboardKey(s.cfg.KeyPrefix)
	if entries == nil {
		return s.client.Del(ctx, key).Err()
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, leaderboardKey(s.cfg.KeyPrefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.LeaderboardEntry{}, nil
		}
		return nil, err
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
