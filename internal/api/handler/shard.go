package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dima4663737373/MicroSlither.io/internal/api/request"
	"github.com/Dima4663737373/MicroSlither.io/internal/api/response"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// ShardHandler handles shard-level endpoints: role configuration and
// inbound message delivery
type ShardHandler struct {
	roles    *role.Service
	messages transport.Handler
}

// NewShardHandler creates a new shard handler
func NewShardHandler(roles *role.Service, messages transport.Handler) *ShardHandler {
	return &ShardHandler{
		roles:    roles,
		messages: messages,
	}
}

// ConfigureAuthority handles POST /api/v1/authority
func (h *ShardHandler) ConfigureAuthority(w http.ResponseWriter, r *http.Request) {
	var req request.ConfigureAuthorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.AuthorityShardID == "" {
		WriteError(w, NewInvalidRequestError("authority_shard_id is required"))
		return
	}

	if err := h.roles.Configure(r.Context(), model.ShardID(req.AuthorityShardID)); err != nil {
		WriteError(w, err)
		return
	}

	roleState, err := h.roles.Role(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoleFromModel(h.roles.LocalShard(), roleState))
}

// GetRole handles GET /api/v1/authority
func (h *ShardHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	roleState, err := h.roles.Role(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoleFromModel(h.roles.LocalShard(), roleState))
}

// ReceiveMessage handles POST /api/v1/messages, the endpoint peer shards
// deliver envelopes to
func (h *ShardHandler) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	var env model.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		WriteError(w, NewInvalidRequestError("invalid envelope"))
		return
	}

	if env.Message.Kind == "" {
		WriteError(w, NewInvalidRequestError("message kind is required"))
		return
	}

	if err := h.messages.HandleEnvelope(r.Context(), env); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
