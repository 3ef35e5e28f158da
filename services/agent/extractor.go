package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbot/models"
	ai "slotbot/services/intelligence"
	"slotbot/utils"

	"go.uber.org/zap"
)

// ErrModelUnavailable marks a failed round trip to the language model, as
// opposed to a successful round trip whose output could not be parsed.
var ErrModelUnavailable = errors.New("language model unavailable")

const systemInstructionFormat = "Today's date is %s. Extract the user's intent from their message.\n" +
	"Valid intents: book_meeting, cancel_meeting, show_slots, greeting.\n" +
	"Respond ONLY with a valid JSON object like this:\n" +
	`{"intent": "book_meeting", "date": "2025-06-28", "time": "13:30", "name": "Asha"}` + "\n" +
	"Use 24h HH:MM times and YYYY-MM-DD dates. Omit keys you cannot determine.\n" +
	"All keys and string values must be in double quotes. Do not add extra commentary or formatting."

// Extractor turns free text into a resolved TurnContext using the language
// model plus the session's carried slot values.
type Extractor struct {
	model   ai.ModelClient
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

func NewExtractor(model ai.ModelClient, loc *time.Location, timeout time.Duration) *Extractor {
	return &Extractor{model: model, loc: loc, timeout: timeout, now: time.Now}
}

// Extract calls the model exactly once and resolves intent and slots
// against the session. A parse failure is recovered locally into an
// ExtractionFailed turn; a model-call failure returns ErrModelUnavailable.
func (e *Extractor) Extract(ctx context.Context, input string, sess *models.SessionState) (*models.TurnContext, error) {
	logger := utils.GetLogger()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	today := e.now().In(e.loc).Format("2006-01-02")
	system := fmt.Sprintf(systemInstructionFormat, today)

	raw, err := e.model.Complete(ctx, system, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	parsed, err := RepairJSON(raw)
	if err != nil {
		logger.Warn("model output not repairable", zap.String("raw", raw))
		return &models.TurnContext{
			Input:            input,
			Intent:           models.IntentUnknown,
			ExtractionFailed: true,
		}, nil
	}

	turn := &models.TurnContext{
		Input:  input,
		Intent: normalizeIntent(parsed["intent"]),
		Date:   normalizeSlot(parsed["date"]),
		Time:   normalizeSlot(parsed["time"]),
		Name:   normalizeSlot(parsed["name"]),
	}

	// Carried values fill slots the model did not supply this turn.
	if turn.Date == "" {
		turn.Date = sess.LastDate
	}
	if turn.Time == "" {
		turn.Time = sess.LastTime
	}
	if turn.Name == "" {
		turn.Name = sess.LastName
	}

	// Intent carry-over: a bare slot value ("tomorrow", "3pm", "for Raj")
	// continues the booking or cancellation already in flight.
	if turn.Intent == models.IntentUnknown &&
		(sess.LastIntent == models.IntentBookMeeting || sess.LastIntent == models.IntentCancelMeeting) &&
		(turn.Date != "" || turn.Time != "" || turn.Name != "") {
		turn.Intent = sess.LastIntent
	}

	logger.Debug("extracted turn",
		zap.String("intent", string(turn.Intent)),
		zap.String("date", turn.Date),
		zap.String("time", turn.Time),
		zap.String("name", turn.Name))

	return turn, nil
}

// normalizeSlot maps the model's various "no value" spellings to absent.
func normalizeSlot(v string) string {
	trimmed := strings.TrimSpace(v)
	switch strings.ToLower(trimmed) {
	case "", "unknown", "null", "none":
		return ""
	}
	return trimmed
}

func normalizeIntent(v string) models.Intent {
	trimmed := strings.TrimSpace(strings.ToLower(v))
	if models.ValidIntent(trimmed) {
		return models.Intent(trimmed)
	}
	return models.IntentUnknown
}
