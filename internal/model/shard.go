package model

import "fmt"

// ShardID uniquely identifies an isolated execution shard. It is opaque and
// comparable, and doubles as the routing address for cross-shard messages.
type ShardID string

// SessionID uniquely identifies a game session. IDs are prefixed by the
// owning shard, so per-shard uniqueness implies system-wide uniqueness.
type SessionID string

// NewSessionID derives a session ID from the owning shard and that shard's
// monotonic session counter.
func NewSessionID(owner ShardID, counter uint64) SessionID {
	return SessionID(fmt.Sprintf("session_%s_%d", owner, counter))
}

// Role records a shard's resolved position in the topology: whether it is
// the authority shard, and which shard the authority is. The authority
// assignment is written at most once and is immutable thereafter.
type Role struct {
	IsAuthority      bool
	AuthorityShardID ShardID // empty until configured
}

// Configured returns true once an authority shard has been recorded.
func (r *Role) Configured() bool {
	return r.AuthorityShardID != ""
}
