package calendar

import (
	"context"
	"time"
)

// Service is the narrow contract the assistant consumes from the calendar
// provider. Implementations return errors as-is; call sites decide whether
// to degrade them to a conservative negative.
type Service interface {
	// IsFree reports whether no events overlap [start, end) on the calendar.
	IsFree(ctx context.Context, start, end time.Time) (bool, error)

	// CreateEvent creates an event over [start, end) and returns the
	// provider's event link.
	CreateEvent(ctx context.Context, start, end time.Time, summary string) (string, error)

	// FreeSlots enumerates free 30-minute start times between 09:00 and
	// 18:00 on the given date (YYYY-MM-DD), strictly in the future, ordered
	// ascending and formatted HH:MM.
	FreeSlots(ctx context.Context, date string) ([]string, error)

	// DeleteMatching deletes the first event in the 30-minute window
	// starting at date+time whose summary contains name (case-insensitive).
	// It reports whether an event was deleted.
	DeleteMatching(ctx context.Context, date, timeStr, name string) (bool, error)
}
