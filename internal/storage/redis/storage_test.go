package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Role tests

func (s *StorageSuite) TestGetRoleBeforeSaveReturnsZeroRole() {
	role, err := s.storage.GetRole(s.ctx)
	s.Require().NoError(err)
	s.False(role.Configured())
	s.False(role.IsAuthority)
}

func (s *StorageSuite) TestSaveAndGetRole() {
	err := s.storage.SaveRole(s.ctx, &model.Role{
		IsAuthority:      true,
		AuthorityShardID: "shard-a",
	})
	s.Require().NoError(err)

	role, err := s.storage.GetRole(s.ctx)
	s.Require().NoError(err)
	s.True(role.IsAuthority)
	s.Equal(model.ShardID("shard-a"), role.AuthorityShardID)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.GameSession{
		ID:               "session_shard-a_0",
		Owner:            "shard-a",
		PlayerName:       "Alice",
		StartTime:        1000,
		CandiesCollected: 3,
		State:            model.SessionStatePlaying,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "session_shard-a_0")
	s.Require().NoError(err)
	s.Equal(session.ID, got.ID)
	s.Equal("Alice", got.PlayerName)
	s.Equal(uint32(3), got.CandiesCollected)
	s.Equal(model.SessionStatePlaying, got.State)
}

func (s *StorageSuite) TestGetMissingSessionFails() {
	_, err := s.storage.GetSession(s.ctx, "session_shard-a_99")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestListSessionsOldestFirst() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
			ID: model.NewSessionID("shard-a", uint64(i)),
		}))
	}

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 3)
	s.Equal(model.SessionID("session_shard-a_0"), sessions[0].ID)
	s.Equal(model.SessionID("session_shard-a_2"), sessions[2].ID)
}

func (s *StorageSuite) TestResavingSessionKeepsListPosition() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{ID: "session_shard-a_0"}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{ID: "session_shard-a_1"}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		ID:               "session_shard-a_0",
		CandiesCollected: 5,
	}))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal(model.SessionID("session_shard-a_0"), sessions[0].ID)
	s.Equal(uint32(5), sessions[0].CandiesCollected)
}

// Current session pointer tests

func (s *StorageSuite) TestCurrentSessionPointerDefaultsEmpty() {
	id, err := s.storage.GetCurrentSessionID(s.ctx)
	s.Require().NoError(err)
	s.Empty(id)
}

func (s *StorageSuite) TestSetAndClearCurrentSessionPointer() {
	s.Require().NoError(s.storage.SetCurrentSessionID(s.ctx, "session_shard-a_0"))

	id, err := s.storage.GetCurrentSessionID(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.SessionID("session_shard-a_0"), id)

	s.Require().NoError(s.storage.SetCurrentSessionID(s.ctx, ""))
	id, err = s.storage.GetCurrentSessionID(s.ctx)
	s.Require().NoError(err)
	s.Empty(id)
}

// Session counter tests

func (s *StorageSuite) TestSessionCounterStartsAtZeroAndAdvances() {
	for want := uint64(0); want < 3; want++ {
		got, err := s.storage.NextSessionCounter(s.ctx)
		s.Require().NoError(err)
		s.Equal(want, got)
	}
}

func (s *StorageSuite) TestResetSessionCounter() {
	_, _ = s.storage.NextSessionCounter(s.ctx)
	_, _ = s.storage.NextSessionCounter(s.ctx)

	s.Require().NoError(s.storage.ResetSessionCounter(s.ctx))

	got, err := s.storage.NextSessionCounter(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), got)
}

// Local player register tests

func (s *StorageSuite) TestLocalPlayerNameDefaultsEmpty() {
	name, err := s.storage.GetLocalPlayerName(s.ctx)
	s.Require().NoError(err)
	s.Empty(name)
}

func (s *StorageSuite) TestSaveAndGetLocalPlayerName() {
	s.Require().NoError(s.storage.SaveLocalPlayerName(s.ctx, "Alice"))

	name, err := s.storage.GetLocalPlayerName(s.ctx)
	s.Require().NoError(err)
	s.Equal("Alice", name)
}

func (s *StorageSuite) TestLocalStatsMissingBeforeFirstSave() {
	_, err := s.storage.GetLocalStats(s.ctx)
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestSaveAndGetLocalStats() {
	stats := model.NewPlayerStats("shard-a")
	stats.AddGame(10, 1000)
	s.Require().NoError(s.storage.SaveLocalStats(s.ctx, stats))

	got, err := s.storage.GetLocalStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(10), got.HighestScore)
	s.Equal(uint32(1), got.GamesPlayed)
	s.Equal(uint64(1000), got.LastGameTimestamp)
}

// Aggregate stats tests

func (s *StorageSuite) TestPlayerStatsMissingBeforeFirstSave() {
	_, err := s.storage.GetPlayerStats(s.ctx, "shard-b")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestSaveAndGetPlayerStats() {
	stats := model.NewPlayerStats("shard-b")
	stats.AddGame(7, 1000)
	s.Require().NoError(s.storage.SavePlayerStats(s.ctx, stats))

	got, err := s.storage.GetPlayerStats(s.ctx, "shard-b")
	s.Require().NoError(err)
	s.Equal(model.ShardID("shard-b"), got.ShardID)
	s.Equal(uint32(7), got.HighestScore)
}

func (s *StorageSuite) TestDeleteAllPlayerStats() {
	s.Require().NoError(s.storage.SavePlayerStats(s.ctx, model.NewPlayerStats("shard-a")))
	s.Require().NoError(s.storage.SavePlayerStats(s.ctx, model.NewPlayerStats("shard-b")))

	s.Require().NoError(s.storage.DeleteAllPlayerStats(s.ctx))

	_, err := s.storage.GetPlayerStats(s.ctx, "shard-a")
	s.ErrorIs(err, model.ErrStatsNotFound)
	_, err = s.storage.GetPlayerStats(s.ctx, "shard-b")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

// Participant set tests

func (s *StorageSuite) TestParticipantSetIsIdempotent() {
	s.Require().NoError(s.storage.AddParticipant(s.ctx, "shard-a"))
	s.Require().NoError(s.storage.AddParticipant(s.ctx, "shard-a"))
	s.Require().NoError(s.storage.AddParticipant(s.ctx, "shard-b"))

	participants, err := s.storage.ListParticipants(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 2)
	s.Contains(participants, model.ShardID("shard-a"))
	s.Contains(participants, model.ShardID("shard-b"))
}

func (s *StorageSuite) TestClearParticipants() {
	s.Require().NoError(s.storage.AddParticipant(s.ctx, "shard-a"))
	s.Require().NoError(s.storage.ClearParticipants(s.ctx))

	participants, err := s.storage.ListParticipants(s.ctx)
	s.Require().NoError(err)
	s.Empty(participants)
}

// Player directory tests

func (s *StorageSuite) TestPlayerNameDefaultsEmpty() {
	name, err := s.storage.GetPlayerName(s.ctx, "shard-b")
	s.Require().NoError(err)
	s.Empty(name)
}

func (s *StorageSuite) TestSaveAndGetPlayerName() {
	s.Require().NoError(s.storage.SavePlayerName(s.ctx, "shard-b", "Bob"))

	name, err := s.storage.GetPlayerName(s.ctx, "shard-b")
	s.Require().NoError(err)
	s.Equal("Bob", name)
}

// Leaderboard snapshot tests

func (s *StorageSuite) TestLeaderboardDefaultsEmpty() {
	entries, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestSaveAndGetLeaderboard() {
	entries := []model.LeaderboardEntry{
		{ShardID: "shard-a", PlayerName: "Alice", HighestScore: 10},
		{ShardID: "shard-b", HighestScore: 5},
	}
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, entries))

	got, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(model.ShardID("shard-a"), got[0].ShardID)
	s.Equal("Alice", got[0].PlayerName)
}

func (s *StorageSuite) TestSaveNilLeaderboardClearsSnapshot() {
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, []model.LeaderboardEntry{
		{ShardID: "shard-a", HighestScore: 10},
	}))

	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, nil))

	got, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(got)
}
