package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dima4663737373/MicroSlither.io/internal/api/response"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/session"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	sessions *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Controller) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// Start handles POST /api/v1/session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Start(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(s))
}

// CollectCandy handles POST /api/v1/session/candy
func (h *SessionHandler) CollectCandy(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.CollectCandy(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// End handles POST /api/v1/session/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.End(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// GetCurrent handles GET /api/v1/session
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.CurrentSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Get handles GET /api/v1/session/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.sessions.Session(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.Sessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromModel(sessions))
}
