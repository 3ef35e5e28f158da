package agent

import (
	"context"
	"strings"

	"slotbot/models"
)

var greetingTokens = []string{"hi", "hello", "hey"}

// handleFallback catches greetings and turns without a usable intent. When
// a booking or cancellation is already in flight it re-enters that flow
// with the currently resolved slots.
func (s *DefaultService) handleFallback(ctx context.Context, turn *models.TurnContext, sess *models.SessionState) string {
	lower := strings.ToLower(turn.Input)
	for _, token := range greetingTokens {
		if strings.Contains(lower, token) {
			return msgGreeting
		}
	}

	if turn.ExtractionFailed {
		return msgRephrase
	}

	switch sess.LastIntent {
	case models.IntentBookMeeting:
		return s.handleBooking(ctx, turn, sess)
	case models.IntentCancelMeeting:
		return s.handleCancellation(ctx, turn, sess)
	}
	return msgDidntUnderstand
}
