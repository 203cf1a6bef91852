package intelligence

import (
	"time"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// staleAfter is how long a conversation with pending action items may sit
// without activity before it is considered stale.
const staleAfter = 72 * time.Hour

// AggregateInsight computes the insight for one conversation from its
// messages and a classification snapshot. Messages must already be
// normalized and sorted by createdAt. The result is a pure function of the
// inputs: recomputing with the same arguments yields the same insight.
func AggregateInsight(
	conv model.Conversation,
	msgs []model.Message,
	classifications map[string]model.MessageClassification,
	now time.Time,
) model.ConversationInsight {
	insight := model.ConversationInsight{
		ConversationID:   conv.ID,
		OverallSentiment: model.SentimentNeutral,
		LastActivity:     conv.LastActivity,
	}

	positiveVotes := 0
	negativeVotes := 0

	for i, msg := range msgs {
		if msg.CreatedAt.After(insight.LastActivity) {
			insight.LastActivity = msg.CreatedAt
		}

		cls, ok := classifications[msg.ID]
		if !ok {
			// Unclassified messages still count toward activity and
			// response-time metrics below.
			continue
		}

		if cls.IsUrgent() {
			insight.UrgentMessageCount++
		}
		if cls.NeedsAction() {
			insight.PendingActionCount++
		}
		if cls.Category == model.CategoryApprovalRequest {
			insight.ApprovalRequestCount++
		}
		if cls.Category == model.CategoryQuestion && !isAnswered(msgs, i) {
			insight.UnansweredQuestionCount++
		}

		for _, emotion := range cls.Emotions {
			switch emotion {
			case model.EmotionPositive, model.EmotionExcited:
				positiveVotes++
			case model.EmotionNegative, model.EmotionConcerned:
				negativeVotes++
			}
		}
	}

	switch {
	case positiveVotes > negativeVotes:
		insight.OverallSentiment = model.SentimentPositive
	case negativeVotes > positiveVotes:
		insight.OverallSentiment = model.SentimentNegative
	}

	insight.ActivityLevel = activityLevel(msgs, now)
	insight.AverageResponseHours = averageResponseHours(msgs)

	return insight
}

// isAnswered reports whether any message after index i in the same
// conversation comes from a different author. A question is answered the
// moment any other participant posts afterward.
func isAnswered(msgs []model.Message, i int) bool {
	author := msgs[i].Author.Key()
	for _, later := range msgs[i+1:] {
		if later.Author.Key() != author {
			return true
		}
	}
	return false
}

func activityLevel(msgs []model.Message, now time.Time) model.ActivityLevel {
	recent := 0
	weekly := 0

	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	for _, msg := range msgs {
		if msg.CreatedAt.After(dayAgo) {
			recent++
		}
		if msg.CreatedAt.After(weekAgo) {
			weekly++
		}
	}

	switch {
	case recent >= 5 || weekly >= 20:
		return model.ActivityHigh
	case recent >= 2 || weekly >= 10:
		return model.ActivityMedium
	default:
		return model.ActivityLow
	}
}

// averageResponseHours is the mean hour gap over adjacent message pairs
// authored by different participants. It is 0 when fewer than two distinct
// authors have posted.
func averageResponseHours(msgs []model.Message) float64 {
	authors := make(map[string]struct{})
	for _, msg := range msgs {
		if key := msg.Author.Key(); key != "" {
			authors[key] = struct{}{}
		}
	}
	if len(authors) < 2 {
		return 0
	}

	total := 0.0
	pairs := 0
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Author.Key() == msgs[i-1].Author.Key() {
			continue
		}
		total += msgs[i].CreatedAt.Sub(msgs[i-1].CreatedAt).Hours()
		pairs++
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}
