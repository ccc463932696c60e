package response

import (
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

// Session represents a game session in API responses
type Session struct {
	ID               string `json:"id"`
	Owner            string `json:"owner"`
	PlayerName       string `json:"player_name,omitempty"`
	StartTime        uint64 `json:"start_time"`
	EndTime          uint64 `json:"end_time,omitempty"`
	CandiesCollected uint32 `json:"candies_collected"`
	IsRecord         bool   `json:"is_record"`
	State            string `json:"state"`
}

// SessionFromModel converts a model.GameSession to a response Session
func SessionFromModel(s *model.GameSession) Session {
	return Session{
		ID:               string(s.ID),
		Owner:            string(s.Owner),
		PlayerName:       s.PlayerName,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		CandiesCollected: s.CandiesCollected,
		IsRecord:         s.IsRecord,
		State:            string(s.State),
	}
}

// SessionList wraps a shard's session history
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// SessionListFromModel converts a slice of sessions
func SessionListFromModel(sessions []*model.GameSession) SessionList {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return SessionList{Sessions: out}
}

// PlayerStats represents player statistics in API responses
type PlayerStats struct {
	ShardID           string  `json:"shard_id"`
	GamesPlayed       uint32  `json:"games_played"`
	HighestScore      uint32  `json:"highest_score"`
	TotalCandies      uint64  `json:"total_candies"`
	CurrentStreak     uint32  `json:"current_streak"`
	BestStreak        uint32  `json:"best_streak"`
	LastGameTimestamp uint64  `json:"last_game_timestamp"`
	AverageCandies    float64 `json:"average_candies"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(p *model.PlayerStats) PlayerStats {
	return PlayerStats{
		ShardID:           string(p.ShardID),
		GamesPlayed:       p.GamesPlayed,
		HighestScore:      p.HighestScore,
		TotalCandies:      p.TotalCandies,
		CurrentStreak:     p.CurrentStreak,
		BestStreak:        p.BestStreak,
		LastGameTimestamp: p.LastGameTimestamp,
		AverageCandies:    p.AverageCandies(),
	}
}

// LeaderboardEntry represents one leaderboard row
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	ShardID      string `json:"shard_id"`
	PlayerName   string `json:"player_name,omitempty"`
	HighestScore uint32 `json:"highest_score"`
	GamesPlayed  uint32 `json:"games_played"`
	TotalCandies uint64 `json:"total_candies"`
}

// Leaderboard wraps the published leaderboard snapshot
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts the published snapshot, assigning ranks by
// list position
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:         i + 1,
			ShardID:      string(e.ShardID),
			PlayerName:   e.PlayerName,
			HighestScore: e.HighestScore,
			GamesPlayed:  e.GamesPlayed,
			TotalCandies: e.TotalCandies,
		}
	}
	return Leaderboard{Entries: out}
}

// Role represents a shard's resolved role
type Role struct {
	ShardID          string `json:"shard_id"`
	IsAuthority      bool   `json:"is_authority"`
	AuthorityShardID string `json:"authority_shard_id,omitempty"`
}

// RoleFromModel converts model.Role
func RoleFromModel(local model.ShardID, r *model.Role) Role {
	return Role{
		ShardID:          string(local),
		IsAuthority:      r.IsAuthority,
		AuthorityShardID: string(r.AuthorityShardID),
	}
}
