package redis

import (
	"fmt"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

// Key generation functions for each entity type. Every key is namespaced by
// the shard's configured prefix.

// roleKey returns the Redis key for the role register
func roleKey(prefix string) string {
	return fmt.Sprintf("%s:role", prefix)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(prefix string, id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", prefix, id)
}

// sessionHistoryKey returns the Redis key for the LIST of session IDs in
// creation order
func sessionHistoryKey(prefix string) string {
	return fmt.Sprintf("%s:idx:sessions", prefix)
}

// currentSessionKey returns the Redis key for the current-session pointer
func currentSessionKey(prefix string) string {
	return fmt.Sprintf("%s:current_session", prefix)
}

// sessionCounterKey returns the Redis key for the session counter
func sessionCounterKey(prefix string) string {
	return fmt.Sprintf("%s:session_counter", prefix)
}

// localPlayerNameKey returns the Redis key for this shard's own name register
func localPlayerNameKey(prefix string) string {
	return fmt.Sprintf("%s:local:name", prefix)
}

// localStatsKey returns the Redis key for this shard's own cached stats
func localStatsKey(prefix string) string {
	return fmt.Sprintf("%s:local:stats", prefix)
}

// playerStatsKey returns the Redis key for a player's aggregate stats
func playerStatsKey(prefix string, id model.ShardID) string {
	return fmt.Sprintf("%s:stats:%s", prefix, id)
}

// playerStatsIndexKey returns the Redis key for the SET of shards with stats
func playerStatsIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:stats", prefix)
}

// participantsKey returns the Redis key for the participant SET
func participantsKey(prefix string) string {
	return fmt.Sprintf("%s:participants", prefix)
}

// playerNameKey returns the Redis key for a directory name entry
func playerNameKey(prefix string, id model.ShardID) string {
	return fmt.Sprintf("%s:name:%s", prefix, id)
}

// leaderboardKey returns the Redis key for the published leaderboard snapshot
func leaderboardKey(prefix string) string {
	return fmt.Sprintf("%s:leaderboard", prefix)
}
