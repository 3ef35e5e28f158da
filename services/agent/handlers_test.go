package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"slotbot/models"

	"github.com/stretchr/testify/assert"
)

func TestShowSlotsRequiresDate(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	turn := &models.TurnContext{Intent: models.IntentShowSlots}

	assert.Equal(t, msgAskDateForSlots, svc.handleShowSlots(context.Background(), turn, &models.SessionState{}))
}

func TestShowSlotsListsFreeWindows(t *testing.T) {
	cal := &fakeCalendar{slots: []string{"09:00", "09:30", "14:00"}}
	svc := newTestService(&fakeModel{}, cal)
	turn := &models.TurnContext{Intent: models.IntentShowSlots, Date: "2026-09-01"}

	got := svc.handleShowSlots(context.Background(), turn, &models.SessionState{})
	assert.Equal(t, fmt.Sprintf(msgSlotsAvailable, "2026-09-01", "09:00, 09:30, 14:00"), got)
}

func TestShowSlotsEmptyAndErrorBothReadAsNoSlots(t *testing.T) {
	turn := &models.TurnContext{Intent: models.IntentShowSlots, Date: "2026-09-01"}
	want := fmt.Sprintf(msgNoSlots, "2026-09-01")

	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	assert.Equal(t, want, svc.handleShowSlots(context.Background(), turn, &models.SessionState{}))

	svc = newTestService(&fakeModel{}, &fakeCalendar{slotsErr: errors.New("calendar down")})
	assert.Equal(t, want, svc.handleShowSlots(context.Background(), turn, &models.SessionState{}))
}

func cancelTurn(name, date, timeStr string) *models.TurnContext {
	return &models.TurnContext{
		Input:  "cancel it",
		Intent: models.IntentCancelMeeting,
		Name:   name,
		Date:   date,
		Time:   timeStr,
	}
}

func TestCancellationPromptsForMissingSlots(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	sess := &models.SessionState{}

	assert.Equal(t, msgAskCancelWhen, svc.handleCancellation(context.Background(), cancelTurn("Raj", "", "10:00"), sess))
	assert.Equal(t, msgAskCancelWhen, svc.handleCancellation(context.Background(), cancelTurn("Raj", "2026-09-01", ""), sess))
	assert.Equal(t, msgAskCancelName, svc.handleCancellation(context.Background(), cancelTurn("", "2026-09-01", "10:00"), sess))
	assert.Equal(t, msgAskCancelName, svc.handleCancellation(context.Background(), cancelTurn("unknown", "2026-09-01", "10:00"), sess))
}

func TestCancellationDeletesMatchingAppointment(t *testing.T) {
	loc := testLocation()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)
	cal := &fakeCalendar{events: []fakeEvent{
		{start: start, end: start.Add(30 * time.Minute), summary: "Meeting with Raj"},
	}}
	svc := newTestService(&fakeModel{}, cal)

	got := svc.handleCancellation(context.Background(), cancelTurn("raj", "2026-09-01", "10:00"), &models.SessionState{})
	assert.Equal(t, fmt.Sprintf(msgCancelled, "10:00", "2026-09-01"), got)
	assert.Empty(t, cal.events)
}

func TestCancellationReportsNotFound(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})

	got := svc.handleCancellation(context.Background(), cancelTurn("Raj", "2026-09-01", "10:00"), &models.SessionState{})
	assert.Equal(t, msgNotFound, got)
}

func TestCancellationTreatsCalendarErrorAsNotFound(t *testing.T) {
	cal := &fakeCalendar{deleteErr: errors.New("calendar down")}
	svc := newTestService(&fakeModel{}, cal)

	got := svc.handleCancellation(context.Background(), cancelTurn("Raj", "2026-09-01", "10:00"), &models.SessionState{})
	assert.Equal(t, msgNotFound, got)
}

func TestFallbackGreetsOnGreetingTokens(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})

	for _, input := range []string{"hi", "Hello!", "HEY you", "well hello there"} {
		turn := &models.TurnContext{Input: input, Intent: models.IntentGreeting}
		assert.Equal(t, msgGreeting, svc.handleFallback(context.Background(), turn, &models.SessionState{}))
	}
}

func TestFallbackAsksForRephraseAfterExtractionFailure(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	turn := &models.TurnContext{Input: "asdf qwer", Intent: models.IntentUnknown, ExtractionFailed: true}

	got := svc.handleFallback(context.Background(), turn, &models.SessionState{LastIntent: models.IntentBookMeeting})
	assert.Equal(t, msgRephrase, got)
}

func TestFallbackDelegatesToBookingInFlight(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	turn := &models.TurnContext{Input: "ok", Intent: models.IntentUnknown, Name: "Raj", Date: "2026-09-01"}
	sess := &models.SessionState{LastIntent: models.IntentBookMeeting}

	// The booking chain re-runs from the top with the resolved slots.
	assert.Equal(t, fmt.Sprintf(msgAskTime, "2026-09-01"), svc.handleFallback(context.Background(), turn, sess))
}

func TestFallbackDelegatesToCancellationInFlight(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	turn := &models.TurnContext{Input: "ok", Intent: models.IntentUnknown}
	sess := &models.SessionState{LastIntent: models.IntentCancelMeeting}

	assert.Equal(t, msgAskCancelWhen, svc.handleFallback(context.Background(), turn, sess))
}

func TestFallbackGenericHelpOtherwise(t *testing.T) {
	svc := newTestService(&fakeModel{}, &fakeCalendar{})
	turn := &models.TurnContext{Input: "what is the weather", Intent: models.IntentUnknown}

	assert.Equal(t, msgDidntUnderstand, svc.handleFallback(context.Background(), turn, &models.SessionState{}))
}
