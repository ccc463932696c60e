package model

// LeaderboardEntry is a derived, read-only row of the published leaderboard.
// Entries are never mutated in place; the whole list is recomputed from the
// stats and directory maps on every aggregate update.
type LeaderboardEntry struct {
	ShardID      ShardID
	PlayerName   string // empty means anonymous
	HighestScore uint32
	GamesPlayed  uint32
	TotalCandies uint64
}
