package intelligence

import (
	"sort"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// NormalizeConversations drops malformed conversations from a snapshot and
// returns the number skipped. A conversation is malformed when it has no ID.
// Malformed participants are removed from the surviving conversations so
// later stages never re-check them.
func NormalizeConversations(convs []model.Conversation) ([]model.Conversation, int) {
	out := make([]model.Conversation, 0, len(convs))
	skipped := 0

	for _, conv := range convs {
		if conv.ID == "" {
			skipped++
			continue
		}

		participants := make([]model.Participant, 0, len(conv.Participants))
		for _, p := range conv.Participants {
			if p.Key() == "" {
				skipped++
				continue
			}
			participants = append(participants, p)
		}
		conv.Participants = participants

		out = append(out, conv)
	}

	return out, skipped
}

// NormalizeMessages drops malformed messages and returns the survivors in
// ascending createdAt order, which the aggregator relies on for response
// gaps and the answered-question check. A message is malformed when it has
// no ID or no conversation ID.
func NormalizeMessages(msgs []model.Message) ([]model.Message, int) {
	out := make([]model.Message, 0, len(msgs))
	skipped := 0

	for _, msg := range msgs {
		if msg.ID == "" || msg.ConversationID == "" {
			skipped++
			continue
		}
		out = append(out, msg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, skipped
}
