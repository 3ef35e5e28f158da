package agent

import (
	"context"
	"fmt"
	"strings"

	"slotbot/models"
	"slotbot/utils"

	"go.uber.org/zap"
)

// handleCancellation deletes the appointment in the 30-minute window at the
// resolved date+time whose summary mentions the resolved name.
func (s *DefaultService) handleCancellation(ctx context.Context, turn *models.TurnContext, sess *models.SessionState) string {
	logger := utils.GetLogger()

	date, timeStr := turn.Date, turn.Time
	if date == "" || timeStr == "" {
		return msgAskCancelWhen
	}
	name := turn.Name
	if name == "" || strings.EqualFold(name, "unknown") {
		return msgAskCancelName
	}

	deleted, err := s.Calendar.DeleteMatching(ctx, date, timeStr, name)
	if err != nil {
		// Conservative: an unreachable calendar reads as "nothing found".
		logger.Warn("cancellation failed",
			zap.String("date", date), zap.String("time", timeStr), zap.Error(err))
		deleted = false
	}
	if !deleted {
		return msgNotFound
	}

	logger.Info("appointment cancelled",
		zap.String("name", name), zap.String("date", date), zap.String("time", timeStr))
	return fmt.Sprintf(msgCancelled, timeStr, date)
}
