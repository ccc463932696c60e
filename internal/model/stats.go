package model

// PlayerStats accumulates one player's running statistics. The same type
// backs a shard's local personal stats and the authority shard's per-player
// aggregate entries.
type PlayerStats struct {
	ShardID           ShardID
	GamesPlayed       uint32
	HighestScore      uint32
	TotalCandies      uint64
	CurrentStreak     uint32 // consecutive games that each set a new personal record
	BestStreak        uint32
	LastGameTimestamp uint64
}

// NewPlayerStats creates zeroed stats for a shard
func NewPlayerStats(shardID ShardID) *PlayerStats {
	return &PlayerStats{ShardID: shardID}
}

// AddGame folds one finished game into the stats and reports whether it set
// a new personal record. Games played, total candies and the last-game
// timestamp always advance; the highest score only moves on a record, and
// the record streak resets to zero on any non-record game.
//
// AddGame is deterministic with respect to application order but not to
// duplicate application: applying the same game twice double-counts.
// Duplicate suppression is the sender's responsibility.
func (p *PlayerStats) AddGame(candies uint32, timestamp uint64) bool {
	p.GamesPlayed++
	p.TotalCandies += uint64(candies)
	p.LastGameTimestamp = timestamp

	isRecord := candies > p.HighestScore
	if isRecord {
		p.HighestScore = candies
		p.CurrentStreak++
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
	} else {
		p.CurrentStreak = 0
	}

	return isRecord
}

// AverageCandies returns the mean candy count per game, or 0 before any game
func (p *PlayerStats) AverageCandies() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.TotalCandies) / float64(p.GamesPlayed)
}
