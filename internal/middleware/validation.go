package middleware

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

const (
	maxSnapshotConversations = 5000
	maxSnapshotMessages      = 100000
	maxSearchLength          = 256
)

// ValidateFilterCategory parses and validates a grouped-view category.
func ValidateFilterCategory(s string) (model.FilterCategory, error) {
	switch model.FilterCategory(s) {
	case model.FilterAll, model.FilterUrgent, model.FilterPending, model.FilterStale:
		return model.FilterCategory(s), nil
	default:
		return "", fmt.Errorf("invalid category: %s", s)
	}
}

// ValidateSearchText validates grouped-view search input.
func ValidateSearchText(s string) error {
	if len(s) > maxSearchLength {
		return errors.New("search text exceeds maximum length")
	}
	if !utf8.ValidString(s) {
		return errors.New("search text must be valid UTF-8")
	}
	return nil
}

// ValidateSnapshot bounds-checks a snapshot sync request. Malformed
// individual entities are not rejected here; the engine drops them during
// normalization so one bad record never fails the whole sync.
func ValidateSnapshot(req *model.SyncRequest) error {
	if req == nil {
		return errors.New("request is required")
	}
	if len(req.Conversations) > maxSnapshotConversations {
		return errors.New("snapshot exceeds conversation limit")
	}

	total := 0
	for _, msgs := range req.Messages {
		total += len(msgs)
	}
	if total > maxSnapshotMessages {
		return errors.New("snapshot exceeds message limit")
	}

	return nil
}
