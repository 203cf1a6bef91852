package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fluxstudio/conversation-intelligence/internal/middleware"
	"github.com/fluxstudio/conversation-intelligence/internal/model"
	"github.com/fluxstudio/conversation-intelligence/internal/service"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
)

// SyncHandler accepts conversation snapshots from the messaging subsystem.
type SyncHandler struct {
	service *service.IntelligenceService
	logger  *logger.Logger
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(svc *service.IntelligenceService, log *logger.Logger) *SyncHandler {
	return &SyncHandler{
		service: svc,
		logger:  log,
	}
}

// Sync handles PUT /api/v1/conversations
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := middleware.GetTenantID(ctx)

	var req model.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateSnapshot(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Sync(ctx, tenantID, &req)
	if err != nil {
		h.logger.Error("snapshot sync failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to sync snapshot")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/v1/conversations/refresh
func (h *SyncHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := middleware.GetTenantID(ctx)

	result := h.service.Refresh(ctx, tenantID)

	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": result.Conversations,
		"classified":    result.Classified,
		"failed":        result.Failed,
	})
}
