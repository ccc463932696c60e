package role

import (
	"context"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
)

// Service resolves and records this shard's position in the topology:
// exactly one shard in the system is the authority shard that owns the
// global leaderboard; every other shard is a player shard.
type Service struct {
	storage storage.Storage
	localID model.ShardID
	logger  *slog.Logger
}

// New creates a new role service for the shard with the given identity
func New(storage storage.Storage, localID model.ShardID, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		localID: localID,
		logger:  logger,
	}
}

// LocalShard returns this shard's own identity
func (s *Service) LocalShard() model.ShardID {
	return s.localID
}

// Bootstrap seeds the role register from deployment configuration. It writes
// only when no authority has been recorded yet, so restarts keep the earlier
// assignment, and it is a no-op when no candidate is supplied: the shard
// then stays unconfigured until an explicit Configure call.
func (s *Service) Bootstrap(ctx context.Context, authority model.ShardID) error {
	if authority == "" {
		return nil
	}

	current, err := s.storage.GetRole(ctx)
	if err != nil {
		return err
	}
	if current.Configured() {
		return nil
	}

	return s.configure(ctx, authority)
}

// Configure assigns the authority shard. It may succeed at most once per
// shard lifetime: a second call fails with ErrAlreadyConfigured and leaves
// the stored assignment untouched.
func (s *Service) Configure(ctx context.Context, authority model.ShardID) error {
	current, err := s.storage.GetRole(ctx)
	if err != nil {
		return err
	}
	if current.Configured() {
		return model.ErrAlreadyConfigured
	}

	return s.configure(ctx, authority)
}

func (s *Service) configure(ctx context.Context, authority model.ShardID) error {
	role := &model.Role{
		IsAuthority:      s.localID == authority,
		AuthorityShardID: authority,
	}

	if err := s.storage.SaveRole(ctx, role); err != nil {
		return err
	}

	s.logger.Info("authority shard configured",
		slog.String("authority", string(authority)),
		slog.Bool("is_authority", role.IsAuthority),
	)

	return nil
}

// Role returns the stored role; a never-configured shard yields a zero role
func (s *Service) Role(ctx context.Context) (*model.Role, error) {
	return s.storage.GetRole(ctx)
}

// IsAuthority reports whether this shard is the authority shard
func (s *Service) IsAuthority(ctx context.Context) (bool, error) {
	role, err := s.storage.GetRole(ctx)
	if err != nil {
		return false, err
	}
	return role.IsAuthority, nil
}

// AuthorityShard returns the configured authority's identity, or
// ErrNoAuthorityConfigured when the shard was never configured
func (s *Service) AuthorityShard(ctx context.Context) (model.ShardID, error) {
	role, err := s.storage.GetRole(ctx)
	if err != nil {
		return "", err
	}
	if !role.Configured() {
		return "", model.ErrNoAuthorityConfigured
	}
	return role.AuthorityShardID, nil
}
