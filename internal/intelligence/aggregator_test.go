package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

var aggNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func msg(id, author string, at time.Time) model.Message {
	return model.Message{
		ID:             id,
		ConversationID: "c1",
		Author:         model.Participant{ID: author, Name: author},
		Content:        "hello",
		CreatedAt:      at,
	}
}

func conv(id string) model.Conversation {
	return model.Conversation{ID: id, Name: "Brand Redesign Project"}
}

func TestAggregateInsight_Counts(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-3*time.Hour)),
		msg("m2", "bob", aggNow.Add(-2*time.Hour)),
		msg("m3", "alice", aggNow.Add(-1*time.Hour)),
	}
	classifications := map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyCritical, Intent: model.IntentActionRequired, Category: model.CategoryGeneral},
		"m2": {Urgency: model.UrgencyHigh, Intent: model.IntentInformational, Category: model.CategoryApprovalRequest},
		"m3": {Urgency: model.UrgencyLow, Intent: model.IntentInformational, Category: model.CategoryUpdate},
	}

	insight := AggregateInsight(conv("c1"), msgs, classifications, aggNow)

	assert.Equal(t, 2, insight.UrgentMessageCount)
	assert.Equal(t, 2, insight.PendingActionCount)
	assert.Equal(t, 1, insight.ApprovalRequestCount)
	assert.Equal(t, 0, insight.UnansweredQuestionCount)
}

func TestAggregateInsight_UnansweredQuestions(t *testing.T) {
	msgs := []model.Message{
		msg("q1", "alice", aggNow.Add(-4*time.Hour)),
		msg("m2", "bob", aggNow.Add(-3*time.Hour)),
		msg("q2", "bob", aggNow.Add(-2*time.Hour)),
		msg("m4", "bob", aggNow.Add(-1*time.Hour)),
	}
	classifications := map[string]model.MessageClassification{
		"q1": {Category: model.CategoryQuestion},
		"q2": {Category: model.CategoryQuestion},
	}

	insight := AggregateInsight(conv("c1"), msgs, classifications, aggNow)

	// q1 is answered (bob posted after alice); q2 is not (only bob posted
	// after his own question).
	assert.Equal(t, 1, insight.UnansweredQuestionCount)
}

func TestAggregateInsight_SentimentTieIsNeutral(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-2*time.Hour)),
		msg("m2", "bob", aggNow.Add(-1*time.Hour)),
	}
	classifications := map[string]model.MessageClassification{
		"m1": {Emotions: []model.Emotion{model.EmotionPositive}},
		"m2": {Emotions: []model.Emotion{model.EmotionConcerned}},
	}

	insight := AggregateInsight(conv("c1"), msgs, classifications, aggNow)
	assert.Equal(t, model.SentimentNeutral, insight.OverallSentiment)
}

func TestAggregateInsight_Sentiment(t *testing.T) {
	tests := []struct {
		name     string
		emotions map[string][]model.Emotion
		want     model.Sentiment
	}{
		{
			name: "positive majority",
			emotions: map[string][]model.Emotion{
				"m1": {model.EmotionPositive, model.EmotionExcited},
				"m2": {model.EmotionConcerned},
			},
			want: model.SentimentPositive,
		},
		{
			name: "negative majority",
			emotions: map[string][]model.Emotion{
				"m1": {model.EmotionNegative},
				"m2": {model.EmotionConcerned},
			},
			want: model.SentimentNegative,
		},
		{
			name:     "no classified emotions",
			emotions: map[string][]model.Emotion{},
			want:     model.SentimentNeutral,
		},
		{
			name: "neutral tags do not vote",
			emotions: map[string][]model.Emotion{
				"m1": {model.EmotionNeutral},
				"m2": {model.EmotionNeutral},
			},
			want: model.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := []model.Message{
				msg("m1", "alice", aggNow.Add(-2*time.Hour)),
				msg("m2", "bob", aggNow.Add(-1*time.Hour)),
			}
			classifications := make(map[string]model.MessageClassification)
			for id, emotions := range tt.emotions {
				classifications[id] = model.MessageClassification{Emotions: emotions}
			}

			insight := AggregateInsight(conv("c1"), msgs, classifications, aggNow)
			assert.Equal(t, tt.want, insight.OverallSentiment)
		})
	}
}

func TestAggregateInsight_ActivityLevel(t *testing.T) {
	tests := []struct {
		name   string
		recent int // messages within 24h
		weekly int // additional messages within 7d but older than 24h
		want   model.ActivityLevel
	}{
		{"five recent is high", 5, 0, model.ActivityHigh},
		{"twenty weekly is high", 0, 20, model.ActivityHigh},
		{"one recent nine weekly is medium", 1, 9, model.ActivityMedium},
		{"two recent is medium", 2, 0, model.ActivityMedium},
		{"one recent is low", 1, 0, model.ActivityLow},
		{"no messages is low", 0, 0, model.ActivityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msgs []model.Message
			for i := 0; i < tt.recent; i++ {
				msgs = append(msgs, msg(string(rune('a'+i)), "alice", aggNow.Add(-time.Duration(i+1)*time.Hour)))
			}
			for i := 0; i < tt.weekly; i++ {
				msgs = append(msgs, msg(string(rune('A'+i)), "alice", aggNow.Add(-48*time.Hour).Add(-time.Duration(i)*time.Minute)))
			}

			insight := AggregateInsight(conv("c1"), msgs, nil, aggNow)
			assert.Equal(t, tt.want, insight.ActivityLevel)
		})
	}
}

func TestAggregateInsight_ActivityLow_WhenAllOld(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-8*24*time.Hour)),
		msg("m2", "bob", aggNow.Add(-9*24*time.Hour)),
	}

	insight := AggregateInsight(conv("c1"), msgs, nil, aggNow)
	assert.Equal(t, model.ActivityLow, insight.ActivityLevel)
}

func TestAggregateInsight_AverageResponseHours(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-6*time.Hour)),
		msg("m2", "bob", aggNow.Add(-4*time.Hour)),   // 2h gap, different author
		msg("m3", "bob", aggNow.Add(-3*time.Hour)),   // same author, skipped
		msg("m4", "alice", aggNow.Add(-2*time.Hour)), // 1h gap
	}

	insight := AggregateInsight(conv("c1"), msgs, nil, aggNow)
	assert.InDelta(t, 1.5, insight.AverageResponseHours, 0.0001)
}

func TestAggregateInsight_AverageResponseHours_SingleAuthor(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-6*time.Hour)),
		msg("m2", "alice", aggNow.Add(-4*time.Hour)),
	}

	insight := AggregateInsight(conv("c1"), msgs, nil, aggNow)
	assert.Zero(t, insight.AverageResponseHours)
}

func TestAggregateInsight_LastActivity(t *testing.T) {
	c := conv("c1")
	c.LastActivity = aggNow.Add(-48 * time.Hour)

	t.Run("message newer than conversation", func(t *testing.T) {
		msgs := []model.Message{msg("m1", "alice", aggNow.Add(-1*time.Hour))}
		insight := AggregateInsight(c, msgs, nil, aggNow)
		assert.Equal(t, aggNow.Add(-1*time.Hour), insight.LastActivity)
	})

	t.Run("no messages falls back to conversation", func(t *testing.T) {
		insight := AggregateInsight(c, nil, nil, aggNow)
		assert.Equal(t, c.LastActivity, insight.LastActivity)
	})
}

func TestAggregateInsight_UnclassifiedMessagesStillCountForActivity(t *testing.T) {
	var msgs []model.Message
	for i := 0; i < 5; i++ {
		msgs = append(msgs, msg(string(rune('a'+i)), "alice", aggNow.Add(-time.Duration(i+1)*time.Hour)))
	}

	insight := AggregateInsight(conv("c1"), msgs, map[string]model.MessageClassification{}, aggNow)

	assert.Equal(t, model.ActivityHigh, insight.ActivityLevel)
	assert.Equal(t, 0, insight.UrgentMessageCount)
	assert.Equal(t, 0, insight.PendingActionCount)
}

func TestAggregateInsight_IsDeterministic(t *testing.T) {
	msgs := []model.Message{
		msg("m1", "alice", aggNow.Add(-3*time.Hour)),
		msg("m2", "bob", aggNow.Add(-2*time.Hour)),
	}
	classifications := map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyHigh, Category: model.CategoryQuestion, Emotions: []model.Emotion{model.EmotionExcited}},
	}

	first := AggregateInsight(conv("c1"), msgs, classifications, aggNow)
	second := AggregateInsight(conv("c1"), msgs, classifications, aggNow)

	assert.Equal(t, first, second)
}
