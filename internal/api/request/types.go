package request

// ConfigureAuthorityRequest is the request body for configuring the
// authority shard
type ConfigureAuthorityRequest struct {
	AuthorityShardID string `json:"authority_shard_id"`
}

// SetPlayerNameRequest is the request body for setting the player's name
type SetPlayerNameRequest struct {
	Name string `json:"name"`
}
