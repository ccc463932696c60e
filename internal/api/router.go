package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dima4663737373/MicroSlither.io/internal/api/handler"
	"github.com/Dima4663737373/MicroSlither.io/internal/api/middleware"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/aggregator"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/player"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/reset"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/session"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	RoleService       *role.Service
	PlayerService     *player.Service
	SessionController *session.Controller
	Aggregator        *aggregator.Service
	ResetCoordinator  *reset.Coordinator
	MessageHandler    transport.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	shardHandler := handler.NewShardHandler(cfg.RoleService, cfg.MessageHandler)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Aggregator, cfg.ResetCoordinator)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Shard routes: role configuration and inbound message delivery
	api.HandleFunc("/authority", shardHandler.ConfigureAuthority).Methods(http.MethodPost)
	api.HandleFunc("/authority", shardHandler.GetRole).Methods(http.MethodGet)
	api.HandleFunc("/messages", shardHandler.ReceiveMessage).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/player/name", playerHandler.SetName).Methods(http.MethodPut)
	api.HandleFunc("/stats", playerHandler.GetStats).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionHandler.GetCurrent).Methods(http.MethodGet)
	api.HandleFunc("/session/candy", sessionHandler.CollectCandy).Methods(http.MethodPost)
	api.HandleFunc("/session/end", sessionHandler.End).Methods(http.MethodPost)
	api.HandleFunc("/session/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/reset", leaderboardHandler.Reset).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
