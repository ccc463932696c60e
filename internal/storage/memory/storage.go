package memory

import (
	"context"
	"sync"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	role            model.Role
	sessions        map[model.SessionID]*model.GameSession
	sessionOrder    []model.SessionID
	currentSession  model.SessionID
	sessionCounter  uint64
	localPlayerName string
	localStats      *model.PlayerStats
	playerStats     map[model.ShardID]*model.PlayerStats
	participants    map[model.ShardID]struct{}
	playerNames     map[model.ShardID]string
	leaderboard     []model.LeaderboardEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:     make(map[model.SessionID]*model.GameSession),
		playerStats:  make(map[model.ShardID]*model.PlayerStats),
		participants: make(map[model.ShardID]struct{}),
		playerNames:  make(map[model.ShardID]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Role operations

func (s *Storage) SaveRole(ctx context.Context, role *model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = *role
	return nil
}

func (s *Storage) GetRole(ctx context.Context) (*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role := s.role
	return &role, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		s.sessionOrder = append(s.sessionOrder, session.ID)
	}
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.GameSession, 0, len(s.sessionOrder))
	for _, id := range s.sessionOrder {
		copied := *s.sessions[id]
		sessions = append(sessions, &copied)
	}
	return sessions, nil
}

func (s *Storage) SetCurrentSessionID(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentSession = id
	return nil
}

func (s *Storage) GetCurrentSessionID(ctx context.Context) (model.SessionID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSession, nil
}

func (s *Storage) NextSessionCounter(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counter := s.sessionCounter
	s.sessionCounter++
	return counter, nil
}

func (s *Storage) ResetSessionCounter(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionCounter = 0
	return nil
}

// Local player registers

func (s *Storage) SaveLocalPlayerName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localPlayerName = name
	return nil
}

func (s *Storage) GetLocalPlayerName(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.localPlayerName, nil
}

func (s *Storage) SaveLocalStats(ctx context.Context, stats *model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *stats
	s.localStats = &copied
	return nil
}

func (s *Storage) GetLocalStats(ctx context.Context) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.localStats == nil {
		return nil, model.ErrStatsNotFound
	}
	copied := *s.localStats
	return &copied, nil
}

// Aggregate stats operations

func (s *Storage) SavePlayerStats(ctx context.Context, stats *model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *stats
	s.playerStats[stats.ShardID] = &copied
	return nil
}

func (s *Storage) GetPlayerStats(ctx context.Context, id model.ShardID) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.playerStats[id]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (s *Storage) DeleteAllPlayerStats(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerStats = make(map[model.ShardID]*model.PlayerStats)
	return nil
}

// Participant set operations

func (s *Storage) AddParticipant(ctx context.Context, id model.ShardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[id] = struct{}{}
	return nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.ShardID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.ShardID, 0, len(s.participants))
	for id := range s.participants {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) ClearParticipants(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make(map[model.ShardID]struct{})
	return nil
}

// Player directory operations

func (s *Storage) SavePlayerName(ctx context.Context, id model.ShardID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerNames[id] = name
	return nil
}

func (s *Storage) GetPlayerName(ctx context.Context, id model.ShardID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerNames[id], nil
}

// Leaderboard snapshot operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries == nil {
		s.leaderboard = nil
		return nil
	}
	s.leaderboard = make([]model.LeaderboardEntry, len(entries))
	copy(s.leaderboard, entries)
	return nil
}

func (s *Storage) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]model.LeaderboardEntry, len(s.leaderboard))
	copy(entries, s.leaderboard)
	return entries, nil
}
