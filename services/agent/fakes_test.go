package agent

import (
	"context"
	"strings"
	"sync"
	"time"
)

// fakeModel is a canned ModelClient. When queue is set, one entry is
// consumed per call; otherwise response is returned every time.
type fakeModel struct {
	response string
	queue    []string
	err      error

	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	if len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		return next, nil
	}
	return f.response, nil
}

type fakeEvent struct {
	start, end time.Time
	summary    string
}

// fakeCalendar is a stateful in-memory calendar.
type fakeCalendar struct {
	mu  sync.Mutex
	loc *time.Location

	events []fakeEvent
	slots  []string

	isFreeErr error
	createErr error
	deleteErr error
	slotsErr  error

	probes  []time.Time
	created int
}

func (f *fakeCalendar) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, start)
	if f.isFreeErr != nil {
		return false, f.isFreeErr
	}
	for _, ev := range f.events {
		if ev.start.Before(end) && ev.end.After(start) {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, start, end time.Time, summary string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created++
	f.events = append(f.events, fakeEvent{start: start, end: end, summary: summary})
	return "https://calendar.example.com/event/1", nil
}

func (f *fakeCalendar) FreeSlots(ctx context.Context, date string) ([]string, error) {
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots, nil
}

func (f *fakeCalendar) DeleteMatching(ctx context.Context, date, timeStr, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, f.loc)
	if err != nil {
		return false, err
	}
	end := start.Add(30 * time.Minute)
	for i, ev := range f.events {
		if !ev.start.Before(end) || !ev.end.After(start) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(ev.summary), strings.ToLower(name)) {
			continue
		}
		f.events = append(f.events[:i], f.events[i+1:]...)
		return true, nil
	}
	return false, nil
}

// test clock: 2026-09-01 08:00 in the fixed zone.
func testClock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, loc)
	}
}

func testLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return loc
}

// newTestService wires a DefaultService around fakes with a frozen clock.
func newTestService(model *fakeModel, cal *fakeCalendar) *DefaultService {
	loc := testLocation()
	cal.loc = loc
	extractor := NewExtractor(model, loc, 0)
	extractor.now = testClock(loc)
	svc := NewDefaultService(extractor, cal, NewMemorySessionStore(), loc)
	svc.now = testClock(loc)
	return svc
}
