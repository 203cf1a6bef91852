// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/fluxstudio/conversation-intelligence/internal/middleware"
	"github.com/fluxstudio/conversation-intelligence/internal/model"
	"github.com/fluxstudio/conversation-intelligence/internal/service"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
)

// InsightHandler serves the derived intelligence results.
type InsightHandler struct {
	service *service.IntelligenceService
	logger  *logger.Logger
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(svc *service.IntelligenceService, log *logger.Logger) *InsightHandler {
	return &InsightHandler{
		service: svc,
		logger:  log,
	}
}

// Insights handles GET /api/v1/insights
func (h *InsightHandler) Insights(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"insights": h.service.Insights(tenantID),
	})
}

// Suggestions handles GET /api/v1/suggestions
func (h *InsightHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	limit := 0 // unlimited
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	suggestions := h.service.Suggestions(tenantID, limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// Grouped handles GET /api/v1/conversations/grouped
func (h *InsightHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	search := r.URL.Query().Get("search")
	if err := middleware.ValidateSearchText(search); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := model.ConversationFilter{
		SearchText: search,
		Category:   model.FilterAll,
	}
	if c := r.URL.Query().Get("category"); c != "" {
		category, err := middleware.ValidateFilterCategory(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Category = category
	}

	writeJSON(w, http.StatusOK, h.service.GroupedConversations(tenantID, filter))
}
