package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fluxstudio/conversation-intelligence/internal/middleware"
	"github.com/fluxstudio/conversation-intelligence/internal/service"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
)

// EventHandler receives consumer callbacks: conversation selections and
// suggestion actions. The engine publishes these as events and performs no
// side effects of its own.
type EventHandler struct {
	service *service.IntelligenceService
	logger  *logger.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(svc *service.IntelligenceService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service: svc,
		logger:  log,
	}
}

type selectRequest struct {
	ConversationID string `json:"conversation_id"`
}

type actionRequest struct {
	ActionType string         `json:"action_type"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Select handles POST /api/v1/events/select
func (h *EventHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := middleware.GetTenantID(ctx)

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	h.service.SelectConversation(ctx, tenantID, req.ConversationID)

	w.WriteHeader(http.StatusAccepted)
}

// Action handles POST /api/v1/events/action
func (h *EventHandler) Action(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := middleware.GetTenantID(ctx)

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ActionType == "" {
		writeError(w, http.StatusBadRequest, "action_type is required")
		return
	}

	h.service.TriggerAction(ctx, tenantID, req.ActionType, req.Payload)

	w.WriteHeader(http.StatusAccepted)
}
