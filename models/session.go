package models

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentBookMeeting   Intent = "book_meeting"
	IntentCancelMeeting Intent = "cancel_meeting"
	IntentShowSlots     Intent = "show_slots"
	IntentGreeting      Intent = "greeting"
	IntentUnknown       Intent = "unknown"
)

// ValidIntent reports whether s is a member of the intent enumeration.
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentBookMeeting, IntentCancelMeeting, IntentShowSlots, IntentGreeting, IntentUnknown:
		return true
	}
	return false
}

// SessionState carries slot values across the turns of one conversation.
// Empty string means "no value recorded yet"; once a field is set it is
// only ever overwritten by a later non-empty value.
type SessionState struct {
	LastIntent Intent `json:"lastIntent,omitempty"`
	LastDate   string `json:"lastDate,omitempty"`
	LastTime   string `json:"lastTime,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// TurnContext holds the values resolved for a single incoming message:
// freshly extracted slots already merged with the session's carried values.
type TurnContext struct {
	Input  string
	Intent Intent
	Date   string
	Time   string
	Name   string

	// ExtractionFailed marks a turn whose model output could not be parsed
	// even after repair. Slots are empty and the carried intent must not be
	// overwritten by this turn.
	ExtractionFailed bool
}
