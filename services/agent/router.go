package agent

import (
	"context"

	"slotbot/models"
)

type handlerFunc func(ctx context.Context, turn *models.TurnContext, sess *models.SessionState) string

// route maps a resolved intent to its handler. Total over the intent
// enumeration: greeting and unknown both land in the fallback.
func (s *DefaultService) route(intent models.Intent) handlerFunc {
	switch intent {
	case models.IntentBookMeeting:
		return s.handleBooking
	case models.IntentShowSlots:
		return s.handleShowSlots
	case models.IntentCancelMeeting:
		return s.handleCancellation
	default:
		return s.handleFallback
	}
}
