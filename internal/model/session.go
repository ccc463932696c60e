package model

// SessionState represents the current phase of a game session
type SessionState string

const (
	SessionStateNotStarted SessionState = "not_started"
	SessionStatePlaying    SessionState = "playing"
	SessionStateFinished   SessionState = "finished" // terminal, sessions never restart
)

// GameSession is one play-through of the game. Sessions are owned exclusively
// by the shard that created them and are never replicated to other shards.
// History is append-only: finished sessions are kept, only the "current"
// pointer moves on.
type GameSession struct {
	ID         SessionID
	Owner      ShardID
	PlayerName string // name known at start time; empty means anonymous

	// Timestamps in microseconds since the Unix epoch
	StartTime uint64
	EndTime   uint64 // 0 until the session finishes

	CandiesCollected uint32
	IsRecord         bool // set at end time against the owner's cached personal best
	State            SessionState
}

// Finished returns true once the session has reached its terminal state
func (s *GameSession) Finished() bool {
	return s.State == SessionStateFinished
}
