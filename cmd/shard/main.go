package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Dima4663737373/MicroSlither.io/internal/api"
	"github.com/Dima4663737373/MicroSlither.io/internal/factory"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	redisstorage "github.com/Dima4663737373/MicroSlither.io/internal/storage/redis"
	httptransport "github.com/Dima4663737373/MicroSlither.io/internal/transport/http"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shardID := os.Getenv("SHARD_ID")
	if shardID == "" {
		logger.Error("SHARD_ID required")
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		LocalShardID:     model.ShardID(shardID),
		AuthorityShardID: model.ShardID(os.Getenv("AUTHORITY_SHARD_ID")),
		Logger:           logger,
		StorageType:      os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		redisCfg.KeyPrefix = redisCfg.KeyPrefix + ":" + shardID
		cfg.RedisConfig = &redisCfg
	}

	// Configure peer addresses for cross-shard delivery
	if peers := os.Getenv("PEERS"); peers != "" {
		transportCfg := httptransport.DefaultConfig()
		transportCfg.Peers = parsePeers(peers)
		cfg.TransportConfig = &transportCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		RoleService:       app.RoleService,
		PlayerService:     app.PlayerService,
		SessionController: app.SessionController,
		Aggregator:        app.Aggregator,
		ResetCoordinator:  app.ResetCoordinator,
		MessageHandler:    app.Router,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(apiRouter, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("shard started",
		slog.String("shard_id", shardID),
		slog.String("addr", server.Addr()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("shard stopped")
}

// parsePeers parses "shard-a=http://host-a:8080,shard-b=http://host-b:8080"
func parsePeers(raw string) map[model.ShardID]string {
	peers := make(map[model.ShardID]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, url, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		peers[model.ShardID(strings.TrimSpace(id))] = strings.TrimSpace(url)
	}
	return peers
}
