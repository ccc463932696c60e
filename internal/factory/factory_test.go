package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	cluster   *TestCluster
	authority *TestApp
	shardB    *TestApp
	shardC    *TestApp
	ctx       context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.cluster = NewTestCluster()
	s.authority = s.cluster.AddShard("shard-a")
	s.shardB = s.cluster.AddShard("shard-b")
	s.shardC = s.cluster.AddShard("shard-c")
	s.ctx = context.Background()

	for _, app := range []*TestApp{s.authority, s.shardB, s.shardC} {
		s.Require().NoError(app.RoleService.Configure(s.ctx, "shard-a"))
	}
}

func (s *IntegrationSuite) playGame(app *TestApp, candies int) {
	_, err := app.SessionController.Start(s.ctx)
	s.Require().NoError(err)
	for i := 0; i < candies; i++ {
		_, err = app.SessionController.CollectCandy(s.ctx)
		s.Require().NoError(err)
	}
	_, err = app.SessionController.End(s.ctx)
	s.Require().NoError(err)
}

// Test: a record game on a player shard reaches the authority's leaderboard
func (s *IntegrationSuite) TestRecordGamePropagatesToLeaderboard() {
	s.playGame(s.shardB, 5)

	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.ShardID("shard-b"), entries[0].ShardID)
	s.Equal(uint32(5), entries[0].HighestScore)
}

// Test: multiple shards rank by highest score
func (s *IntegrationSuite) TestLeaderboardRanksAcrossShards() {
	s.playGame(s.shardB, 5)
	s.playGame(s.shardC, 9)
	s.playGame(s.authority, 7)

	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(model.ShardID("shard-c"), entries[0].ShardID)
	s.Equal(model.ShardID("shard-a"), entries[1].ShardID)
	s.Equal(model.ShardID("shard-b"), entries[2].ShardID)
}

// Test: non-record games change nothing on the authority
func (s *IntegrationSuite) TestNonRecordGameDoesNotReachAuthority() {
	s.playGame(s.shardB, 5)
	s.playGame(s.shardB, 2)

	stats, err := s.authority.Aggregator.PlayerStats(s.ctx, "shard-b")
	s.Require().NoError(err)
	// Only the record game was reported
	s.Equal(uint32(1), stats.GamesPlayed)
	s.Equal(uint32(5), stats.HighestScore)

	// The player shard's local stats count both games
	local, err := s.shardB.PlayerService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(2), local.GamesPlayed)
}

// Test: name updates flow into the leaderboard on the next aggregate update
func (s *IntegrationSuite) TestPlayerNamePropagates() {
	s.Require().NoError(s.shardB.PlayerService.SetName(s.ctx, "Bob"))
	s.playGame(s.shardB, 5)

	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Bob", entries[0].PlayerName)
}

// Test: the authority's own games join the leaderboard without the network
func (s *IntegrationSuite) TestAuthorityOwnGamesAggregate() {
	s.Require().NoError(s.authority.PlayerService.SetName(s.ctx, "Host"))
	s.playGame(s.authority, 4)

	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.ShardID("shard-a"), entries[0].ShardID)
	s.Equal("Host", entries[0].PlayerName)
}

// Test: reset clears the authority and fans out to participant shards
func (s *IntegrationSuite) TestResetFansOutToParticipants() {
	s.playGame(s.shardB, 5)
	s.playGame(s.shardC, 9)

	s.Require().NoError(s.authority.ResetCoordinator.Reset(s.ctx))

	// Authority state cleared
	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)

	// Player shards had their cached stats zeroed
	for _, app := range []*TestApp{s.shardB, s.shardC} {
		stats, err := app.PlayerService.Stats(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint32(0), stats.HighestScore)
		s.Equal(uint32(0), stats.GamesPlayed)
	}
}

// Test: reset leaves session history intact on player shards
func (s *IntegrationSuite) TestResetKeepsSessionHistory() {
	s.playGame(s.shardB, 5)

	s.Require().NoError(s.authority.ResetCoordinator.Reset(s.ctx))

	sessions, err := s.shardB.SessionController.Sessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 1)
	s.Equal(uint32(5), sessions[0].CandiesCollected)
}

// Test: after a reset, a fresh record re-enters the leaderboard
func (s *IntegrationSuite) TestPlayAfterReset() {
	s.playGame(s.shardB, 5)
	s.Require().NoError(s.authority.ResetCoordinator.Reset(s.ctx))

	// Local best was zeroed, so even a small score is a record again
	s.playGame(s.shardB, 2)

	entries, err := s.authority.Aggregator.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(uint32(2), entries[0].HighestScore)
}

// Test: a message to an unregistered shard bounces and is dropped harmlessly
func (s *IntegrationSuite) TestReportToUnreachableAuthorityIsLost() {
	s.cluster.Network.Unregister("shard-a")

	s.playGame(s.shardB, 5)

	// The report bounced; the local game still finished and counted
	local, err := s.shardB.PlayerService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(1), local.GamesPlayed)
}

// Test: two shards never see each other's sessions
func (s *IntegrationSuite) TestSessionIsolationBetweenShards() {
	started, err := s.shardB.SessionController.Start(s.ctx)
	s.Require().NoError(err)

	_, err = s.shardC.SessionController.Session(s.ctx, started.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Factory config validation

func (s *IntegrationSuite) TestNewRequiresLocalShardID() {
	_, err := New(Config{})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewDefaultsToMemoryStorage() {
	app, err := New(Config{LocalShardID: "shard-x"})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.NotNil(app.Router)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{LocalShardID: "shard-x", StorageType: "postgres"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewBootstrapsAuthority() {
	app, err := New(Config{LocalShardID: "shard-x", AuthorityShardID: "shard-x"})
	s.Require().NoError(err)

	isAuthority, err := app.RoleService.IsAuthority(context.Background())
	s.Require().NoError(err)
	s.True(isAuthority)
}
