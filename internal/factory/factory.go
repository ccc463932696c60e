package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/dependencies/clock"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/router"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/aggregator"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/player"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/reset"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/session"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage/memory"
	redisstorage "github.com/Dima4663737373/MicroSlither.io/internal/storage/redis"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
	httptransport "github.com/Dima4663737373/MicroSlither.io/internal/transport/http"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components for one shard
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Transport transport.Transport

	// Services
	RoleService       *role.Service
	PlayerService     *player.Service
	SessionController *session.Controller
	Aggregator        *aggregator.Service
	ResetCoordinator  *reset.Coordinator
	Router            *router.Router
}

// Config holds configuration for the application factory
type Config struct {
	// LocalShardID identifies this shard on the network (required)
	LocalShardID model.ShardID
	// AuthorityShardID, if set, configures the authority role at startup.
	// Bootstrapping is a no-op when the shard is already configured.
	AuthorityShardID model.ShardID
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// TransportConfig holds peer addresses for cross-shard delivery (optional)
	// If nil, defaults to an empty peer set: every send bounces.
	TransportConfig *httptransport.Config
}

// New creates a new shard application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.LocalShardID == "" {
		return nil, errors.New("LocalShardID is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()

	transportCfg := httptransport.DefaultConfig()
	if cfg.TransportConfig != nil {
		transportCfg = *cfg.TransportConfig
	}
	tr := httptransport.New(cfg.LocalShardID, transportCfg, logger)

	app := newWithDependencies(store, clk, tr, cfg.LocalShardID, logger)

	// Bounced envelopes come back through the local message router
	tr.SetHandler(app.Router)

	if cfg.AuthorityShardID != "" {
		if err := app.RoleService.Bootstrap(context.Background(), cfg.AuthorityShardID); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	tr transport.Transport,
	localID model.ShardID,
	logger *slog.Logger,
) *App {
	// Create services
	roleService := role.New(store, localID, logger)
	playerService := player.New(store, roleService, tr, logger)
	sessionController := session.NewController(store, roleService, playerService, tr, clk, logger)
	aggregatorService := aggregator.New(store, clk, logger)
	resetCoordinator := reset.New(store, roleService, tr, logger)
	messageRouter := router.New(roleService, aggregatorService, playerService, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Transport:         tr,
		RoleService:       roleService,
		PlayerService:     playerService,
		SessionController: sessionController,
		Aggregator:        aggregatorService,
		ResetCoordinator:  resetCoordinator,
		Router:            messageRouter,
	}
}
