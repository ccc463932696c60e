package model

// MessageKind identifies the type of a cross-shard message
type MessageKind string

const (
	// MessageStartGame is reserved for protocol extensibility. It is accepted
	// but ignored on receipt everywhere: sessions live only on their owner.
	MessageStartGame MessageKind = "start_game"

	// MessageCandyCollected notifies the authority that the owner collected a
	// candy in the given session. Processed on the authority shard only.
	MessageCandyCollected MessageKind = "candy_collected"

	// MessageGameFinished reports a finished record game to the authority.
	// Non-record games are never reported.
	MessageGameFinished MessageKind = "game_finished"

	// MessageUpdateLeaderboard drives the same aggregation as GameFinished.
	// Kept as a distinct kind for direct administrative injection.
	MessageUpdateLeaderboard MessageKind = "update_leaderboard"

	// MessageUpdatePlayerName records a player's display name in the
	// authority shard's directory.
	MessageUpdatePlayerName MessageKind = "update_player_name"

	// MessageLeaderboardReset tells a player shard that the global
	// leaderboard was cleared. Ignored on the authority shard itself.
	MessageLeaderboardReset MessageKind = "leaderboard_reset"
)

// Message is the closed set of cross-shard payloads. Only the fields
// relevant to Kind are populated; everything else stays zero. Every message
// carries enough data to be processed without a reply.
type Message struct {
	Kind MessageKind `json:"kind"`

	SessionID        SessionID `json:"session_id,omitempty"`        // StartGame, CandyCollected, GameFinished
	Owner            ShardID   `json:"owner,omitempty"`             // all kinds except LeaderboardReset
	PlayerName       string    `json:"player_name,omitempty"`       // StartGame, UpdatePlayerName
	CandiesCollected uint32    `json:"candies_collected,omitempty"` // GameFinished, UpdateLeaderboard
	IsNewRecord      bool      `json:"is_new_record,omitempty"`     // GameFinished, UpdateLeaderboard
}

// Envelope wraps a message with its transport routing facts. Bounced marks a
// message whose destination was unreachable and which round-tripped back to
// its sender; the router drops such envelopes before any dispatch.
type Envelope struct {
	To      ShardID `json:"to"`
	From    ShardID `json:"from"`
	Bounced bool    `json:"bounced,omitempty"`
	Message Message `json:"message"`
}
