package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dima4663737373/MicroSlither.io/internal/api/request"
	"github.com/Dima4663737373/MicroSlither.io/internal/api/response"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// SetName handles PUT /api/v1/player/name
func (h *PlayerHandler) SetName(w http.ResponseWriter, r *http.Request) {
	var req request.SetPlayerNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if err := h.players.SetName(r.Context(), req.Name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetStats handles GET /api/v1/stats
func (h *PlayerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.players.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(stats))
}
