package intelligence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fluxstudio/conversation-intelligence/internal/classifier"
	"github.com/fluxstudio/conversation-intelligence/internal/model"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
	"github.com/fluxstudio/conversation-intelligence/pkg/metrics"
)

// DefaultConcurrency bounds parallel classification requests per pass.
const DefaultConcurrency = 8

// Engine drives classification passes over conversation snapshots and holds
// the derived results. Raw conversations and messages flow in one
// direction: snapshot -> classification cache -> insights -> suggestions
// and groupings.
type Engine struct {
	classifier  classifier.Client
	cache       *ClassificationCache
	concurrency int
	logger      *logger.Logger

	mu            sync.RWMutex
	conversations []model.Conversation
	messages      map[string][]model.Message
	insights      map[string]model.ConversationInsight
	suggestions   []model.WorkflowSuggestion
}

// PassResult summarizes one aggregation cycle.
type PassResult struct {
	Conversations int
	Messages      int
	Classified    int
	Failed        int
	Skipped       int
	Duration      time.Duration
}

// NewEngine creates an engine. The cache is a passed-in collaborator so
// callers control its lifetime and tests can construct isolated instances.
// A nil classifier disables classification: messages stay unclassified and
// only timestamp-derived insight fields are populated.
func NewEngine(cls classifier.Client, cache *ClassificationCache, concurrency int, log *logger.Logger) *Engine {
	if cache == nil {
		cache = NewClassificationCache()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Engine{
		classifier:  cls,
		cache:       cache,
		concurrency: concurrency,
		logger:      log,
		messages:    make(map[string][]model.Message),
		insights:    make(map[string]model.ConversationInsight),
	}
}

// RunPass executes one aggregation cycle over the snapshot: classify every
// message missing from the cache (bounded parallelism, per-message failure
// isolation), then recompute insights and suggestions from a point-in-time
// cache snapshot once all requests settle.
//
// A pass starting while another is in flight only issues requests for
// messages still absent from the cache; merges are commutative per key, so
// overlapping passes do redundant work at worst.
func (e *Engine) RunPass(ctx context.Context, convs []model.Conversation, messages map[string][]model.Message) PassResult {
	start := time.Now()

	convs, skippedConvs := NormalizeConversations(convs)

	normalized := make(map[string][]model.Message, len(messages))
	totalMessages := 0
	skipped := skippedConvs
	for _, conv := range convs {
		msgs, dropped := NormalizeMessages(messages[conv.ID])
		normalized[conv.ID] = msgs
		totalMessages += len(msgs)
		skipped += dropped
	}

	classified, failed := e.classifyMissing(ctx, convs, normalized)

	now := time.Now()
	snapshot := e.cache.Snapshot()

	insights := make(map[string]model.ConversationInsight, len(convs))
	for _, conv := range convs {
		insights[conv.ID] = AggregateInsight(conv, normalized[conv.ID], snapshot, now)
	}
	suggestions := GenerateSuggestions(convs, insights, now)

	e.mu.Lock()
	e.conversations = convs
	e.messages = normalized
	e.insights = insights
	e.suggestions = suggestions
	e.mu.Unlock()

	result := PassResult{
		Conversations: len(convs),
		Messages:      totalMessages,
		Classified:    classified,
		Failed:        failed,
		Skipped:       skipped,
		Duration:      time.Since(start),
	}

	metrics.RecordAggregationPass(result.Duration.Seconds(), len(convs), len(suggestions))

	if e.logger != nil {
		e.logger.Info("aggregation pass completed",
			zap.Int("conversations", result.Conversations),
			zap.Int("messages", result.Messages),
			zap.Int("classified", result.Classified),
			zap.Int("failed", result.Failed),
			zap.Int("skipped", result.Skipped),
			zap.Duration("duration", result.Duration),
		)
	}

	return result
}

// classifyMissing issues classification requests for every message not yet
// in the cache. Requests run in parallel up to the concurrency bound; a
// failure for one message never aborts the others.
func (e *Engine) classifyMissing(ctx context.Context, convs []model.Conversation, messages map[string][]model.Message) (classified, failed int) {
	if e.classifier == nil {
		return 0, 0
	}

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, e.concurrency)
		mu  sync.Mutex
	)

	for _, conv := range convs {
		for _, msg := range messages[conv.ID] {
			if e.cache.Has(msg.ID) {
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(conv model.Conversation, msg model.Message) {
				defer wg.Done()
				defer func() { <-sem }()

				cls, err := e.classifier.Classify(ctx, msg, conv)
				if err != nil {
					metrics.ClassificationFailuresTotal.WithLabelValues(e.classifier.Name()).Inc()
					if e.logger != nil {
						e.logger.Warn("message classification failed",
							zap.String("message_id", msg.ID),
							zap.String("conversation_id", conv.ID),
							zap.Error(err),
						)
					}
					mu.Lock()
					failed++
					mu.Unlock()
					return
				}

				cls.MessageID = msg.ID
				e.cache.Put(cls)
				metrics.ClassificationsTotal.WithLabelValues(e.classifier.Name()).Inc()

				mu.Lock()
				classified++
				mu.Unlock()
			}(conv, msg)
		}
	}

	wg.Wait()
	return classified, failed
}

// Insights returns a copy of the current insight map keyed by conversation
// ID. Calling it twice without an intervening pass yields identical results.
func (e *Engine) Insights() map[string]model.ConversationInsight {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]model.ConversationInsight, len(e.insights))
	for id, insight := range e.insights {
		out[id] = insight
	}
	return out
}

// Suggestions returns the current priority-ordered suggestion list,
// truncated after ordering when limit > 0.
func (e *Engine) Suggestions(limit int) []model.WorkflowSuggestion {
	e.mu.RLock()
	defer e.mu.RUnlock()

	suggestions := e.suggestions
	if limit > 0 && limit < len(suggestions) {
		suggestions = suggestions[:limit]
	}

	out := make([]model.WorkflowSuggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// GroupedConversations filters and buckets the conversations of the last
// pass.
func (e *Engine) GroupedConversations(filter model.ConversationFilter) *model.GroupingResult {
	e.mu.RLock()
	convs := e.conversations
	insights := e.insights
	e.mu.RUnlock()

	return GroupConversations(convs, insights, filter, time.Now())
}

// Cache exposes the classification cache collaborator.
func (e *Engine) Cache() *ClassificationCache {
	return e.cache
}
