package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slotbot/models"
	"slotbot/utils"

	"go.uber.org/zap"
)

const (
	meetingDuration = 30 * time.Minute
	dateTimeLayout  = "2006-01-02 15:04"
)

// handleBooking validates the resolved slots in strict order and creates
// the appointment only when every check passes. Each failed check ends the
// turn with a prompt; the calendar is written at most once.
func (s *DefaultService) handleBooking(ctx context.Context, turn *models.TurnContext, sess *models.SessionState) string {
	logger := utils.GetLogger()

	name := turn.Name
	if name == "" || strings.EqualFold(name, "unknown") {
		return msgAskName
	}
	date := turn.Date
	if date == "" || strings.EqualFold(date, "unknown") {
		return msgAskDate
	}
	timeStr := turn.Time
	if timeStr == "" || strings.EqualFold(timeStr, "unknown") {
		return fmt.Sprintf(msgAskTime, date)
	}

	start, err := time.ParseInLocation(dateTimeLayout, date+" "+timeStr, s.loc)
	if err != nil {
		return msgBadTimeFormat
	}
	end := start.Add(meetingDuration)

	now := s.now().In(s.loc)
	if !start.After(now) {
		return msgPastTime
	}
	if m := start.Minute(); m != 0 && m != 30 {
		return msgNotAligned
	}

	free, err := s.Calendar.IsFree(ctx, start, end)
	if err != nil {
		// Conservative: an unreachable calendar reads as a conflict.
		logger.Warn("availability check failed", zap.Time("start", start), zap.Error(err))
		free = false
	}
	if !free {
		suggestions := s.suggestAlternateSlots(ctx, start, meetingDuration, suggestionWindow)
		if len(suggestions) > 0 {
			return fmt.Sprintf(msgSlotTaken, strings.Join(suggestions, ", "))
		}
		return msgNoNearbySlots
	}

	link, err := s.Calendar.CreateEvent(ctx, start, end, "Meeting with "+name)
	if err != nil {
		logger.Error("event creation failed", zap.Time("start", start), zap.Error(err))
		return msgBookingFailed
	}

	logger.Info("appointment booked",
		zap.String("name", name), zap.String("date", date), zap.String("time", timeStr))
	return fmt.Sprintf(msgBooked, name, date, timeStr, link)
}
