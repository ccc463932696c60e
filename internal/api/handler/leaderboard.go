package handler

import (
	"net/http"

	"github.com/Dima4663737373/MicroSlither.io/internal/api/response"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/aggregator"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/reset"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	aggregator *aggregator.Service
	resets     *reset.Coordinator
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(aggregator *aggregator.Service, resets *reset.Coordinator) *LeaderboardHandler {
	return &LeaderboardHandler{
		aggregator: aggregator,
		resets:     resets,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.aggregator.Leaderboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Reset handles POST /api/v1/leaderboard/reset
func (h *LeaderboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.resets.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
