package agent

// User-facing reply templates. Every failure the conversation can hit maps
// to one of these; raw errors never reach the user.
const (
	msgAskName = "🙋 Who is the meeting with? Please share a name."
	msgAskDate = "⚠️ Please provide a valid date to book."
	msgAskTime = "🕐 What time would you like to book on %s?"

	msgBadTimeFormat = "⚠️ Time must be in HH:MM format (e.g. 14:30 for 2:30 PM)."
	msgPastTime      = "⚠️ That time is in the past. Please pick a future time."
	msgNotAligned    = "⚠️ Appointments must start on the hour or half-hour (e.g., 10:00, 10:30)."

	msgSlotTaken       = "❌ That time is booked. Try: %s?"
	msgNoNearbySlots   = "❌ That time is booked and no nearby slots are free."
	msgBooked          = "✅ Meeting with %s booked on %s at %s. Link: %s"
	msgBookingFailed   = "❌ Could not create the appointment. Please try again."
	msgSlotsAvailable  = "✅ Available slots on %s: %s"
	msgNoSlots         = "❌ No available slots on %s."
	msgAskDateForSlots = "⚠️ Please specify the date."

	msgAskCancelWhen = "⚠️ Please provide the date and time to cancel."
	msgAskCancelName = "🙋 Whose appointment should I cancel? Please share the name."
	msgCancelled     = "✅ Appointment at %s on %s was cancelled."
	msgNotFound      = "❌ No appointment found at that time."

	msgGreeting         = "👋 Hello! I can help you book, cancel, or show available appointment slots."
	msgDidntUnderstand  = "🤖 Sorry, I didn't understand that. Try asking to book, cancel, or check slots."
	msgRephrase         = "🤖 I couldn't make sense of that. Could you rephrase? For example: \"book a meeting tomorrow at 15:00 for Asha\"."
	msgModelUnavailable = "⚠️ The assistant is temporarily unavailable. Please try again in a moment."
)
