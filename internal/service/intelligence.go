package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fluxstudio/conversation-intelligence/internal/classifier"
	"github.com/fluxstudio/conversation-intelligence/internal/intelligence"
	"github.com/fluxstudio/conversation-intelligence/internal/model"
	natsclient "github.com/fluxstudio/conversation-intelligence/internal/nats"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
	"github.com/fluxstudio/conversation-intelligence/pkg/metrics"
)

// IntelligenceService owns one intelligence engine per tenant and
// republishes results to consumers over NATS.
type IntelligenceService struct {
	store       *ConversationStore
	classifier  classifier.Client
	publisher   *natsclient.EventPublisher
	concurrency int
	logger      *logger.Logger

	mu      sync.Mutex
	engines map[string]*intelligence.Engine
}

// NewIntelligenceService creates the service. The publisher may be nil when
// no NATS connection is configured; events are then skipped.
func NewIntelligenceService(
	store *ConversationStore,
	cls classifier.Client,
	publisher *natsclient.EventPublisher,
	concurrency int,
	log *logger.Logger,
) *IntelligenceService {
	return &IntelligenceService{
		store:       store,
		classifier:  cls,
		publisher:   publisher,
		concurrency: concurrency,
		logger:      log,
		engines:     make(map[string]*intelligence.Engine),
	}
}

// engine returns the tenant's engine, creating it on first use. Each tenant
// gets its own classification cache so tenants never share state.
func (s *IntelligenceService) engine(tenantID string) *intelligence.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, ok := s.engines[tenantID]
	if !ok {
		eng = intelligence.NewEngine(s.classifier, intelligence.NewClassificationCache(), s.concurrency, s.logger)
		s.engines[tenantID] = eng
	}
	return eng
}

// Sync accepts a conversation/message snapshot from the messaging
// subsystem, runs an aggregation pass over it, and announces the refreshed
// results.
func (s *IntelligenceService) Sync(ctx context.Context, tenantID string, req *model.SyncRequest) (*model.SyncResponse, error) {
	s.store.Replace(tenantID, req.Conversations, req.Messages)

	eng := s.engine(tenantID)
	result := eng.RunPass(ctx, req.Conversations, req.Messages)
	metrics.ClassificationCacheSize.WithLabelValues(tenantID).Set(float64(eng.Cache().Len()))

	s.publish(ctx, &model.IntelligenceEvent{
		ID:       uuid.Must(uuid.NewV7()).String(),
		TenantID: tenantID,
		Type:     model.EventTypeInsightsUpdated,
		Payload: map[string]any{
			"conversations": result.Conversations,
			"classified":    result.Classified,
			"failed":        result.Failed,
		},
		CreatedAt: time.Now(),
	})

	return &model.SyncResponse{
		Conversations: result.Conversations,
		Messages:      result.Messages,
		Skipped:       result.Skipped,
	}, nil
}

// Refresh re-runs the aggregation pass over the stored snapshot. Already
// settled classifications are reused; only uncached messages are requested
// again.
func (s *IntelligenceService) Refresh(ctx context.Context, tenantID string) intelligence.PassResult {
	convs, messages := s.store.Get(tenantID)
	return s.engine(tenantID).RunPass(ctx, convs, messages)
}

// Insights returns the current insight map for the tenant.
func (s *IntelligenceService) Insights(tenantID string) map[string]model.ConversationInsight {
	return s.engine(tenantID).Insights()
}

// Suggestions returns the ordered suggestion list, truncated when limit > 0.
func (s *IntelligenceService) Suggestions(tenantID string, limit int) []model.WorkflowSuggestion {
	return s.engine(tenantID).Suggestions(limit)
}

// GroupedConversations returns filtered, bucketed conversations.
func (s *IntelligenceService) GroupedConversations(tenantID string, filter model.ConversationFilter) *model.GroupingResult {
	return s.engine(tenantID).GroupedConversations(filter)
}

// SelectConversation records a consumer-reported conversation selection.
// The engine performs no navigation itself; it only emits the event.
func (s *IntelligenceService) SelectConversation(ctx context.Context, tenantID, conversationID string) {
	s.publish(ctx, &model.IntelligenceEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		TenantID:       tenantID,
		Type:           model.EventTypeConversationSelected,
		ConversationID: conversationID,
		CreatedAt:      time.Now(),
	})
}

// TriggerAction records a consumer-reported suggestion action.
func (s *IntelligenceService) TriggerAction(ctx context.Context, tenantID, actionType string, payload map[string]any) {
	s.publish(ctx, &model.IntelligenceEvent{
		ID:         uuid.Must(uuid.NewV7()).String(),
		TenantID:   tenantID,
		Type:       model.EventTypeActionTriggered,
		ActionType: actionType,
		Payload:    payload,
		CreatedAt:  time.Now(),
	})
}

func (s *IntelligenceService) publish(ctx context.Context, event *model.IntelligenceEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish intelligence event",
			zap.String("type", string(event.Type)),
			zap.String("tenant_id", event.TenantID),
			zap.Error(err),
		)
	}
}
