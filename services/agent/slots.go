package agent

import (
	"context"
	"fmt"
	"strings"

	"slotbot/models"
	"slotbot/utils"

	"go.uber.org/zap"
)

// handleShowSlots lists the free 30-minute windows for the requested date.
// The calendar collaborator owns the 09:00-18:00 scan; this handler owns
// slot validation and phrasing.
func (s *DefaultService) handleShowSlots(ctx context.Context, turn *models.TurnContext, sess *models.SessionState) string {
	date := turn.Date
	if date == "" || strings.EqualFold(date, "unknown") {
		return msgAskDateForSlots
	}

	slots, err := s.Calendar.FreeSlots(ctx, date)
	if err != nil {
		// Conservative: an unreachable calendar reads as a day with no slots.
		utils.GetLogger().Warn("free-slot listing failed", zap.String("date", date), zap.Error(err))
		slots = nil
	}
	if len(slots) == 0 {
		return fmt.Sprintf(msgNoSlots, date)
	}
	return fmt.Sprintf(msgSlotsAvailable, date, strings.Join(slots, ", "))
}
