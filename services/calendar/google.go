package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"slotbot/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	slotDuration = 30 * time.Minute
	dayStartHour = 9
	dayEndHour   = 18
	dateLayout   = "2006-01-02"
	minuteLayout = "15:04"
)

// GoogleOptions configures the Google Calendar service.
type GoogleOptions struct {
	CredentialsFile string
	TokenFile       string
	CalendarID      string
	Location        *time.Location
	Timeout         time.Duration
}

// GoogleService talks to the Google Calendar v3 API for a single calendar
// in a single fixed timezone.
type GoogleService struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
	timeout    time.Duration
	now        func() time.Time
}

// NewGoogleService builds a calendar service from an OAuth client secret
// file plus a previously authorized user token file.
func NewGoogleService(ctx context.Context, opts GoogleOptions) (*GoogleService, error) {
	credBytes, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	conf, err := google.ConfigFromJSON(credBytes, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	tokBytes, err := os.ReadFile(opts.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(tokBytes, tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	// conf.Client refreshes the token transparently when it expires.
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &GoogleService{
		svc:        svc,
		calendarID: opts.CalendarID,
		loc:        opts.Location,
		timeout:    opts.Timeout,
		now:        time.Now,
	}, nil
}

func (g *GoogleService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *GoogleService) listEvents(ctx context.Context, start, end time.Time) ([]*gcal.Event, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	res, err := g.svc.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return res.Items, nil
}

// IsFree reports whether [start, end) has no overlapping events.
func (g *GoogleService) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := g.listEvents(ctx, start, end)
	if err != nil {
		return false, err
	}
	return len(events) == 0, nil
}

// CreateEvent inserts an event and returns its HTML link.
func (g *GoogleService) CreateEvent(ctx context.Context, start, end time.Time, summary string) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	event := &gcal.Event{
		Summary: summary,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
	}
	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.HtmlLink, nil
}

// FreeSlots lists free 30-minute starts between 09:00 and 18:00 on date,
// strictly in the future, ordered ascending.
func (g *GoogleService) FreeSlots(ctx context.Context, date string) ([]string, error) {
	day, err := time.ParseInLocation(dateLayout, date, g.loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}

	dayStart := day.Add(dayStartHour * time.Hour)
	dayEnd := day.Add(dayEndHour * time.Hour)

	events, err := g.listEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	busy := g.busyIntervals(events, day)

	now := g.now().In(g.loc)
	var slots []string
	for ws := dayStart; !ws.Add(slotDuration).After(dayEnd); ws = ws.Add(slotDuration) {
		if !ws.After(now) {
			continue
		}
		if overlapsAny(busy, ws, ws.Add(slotDuration)) {
			continue
		}
		slots = append(slots, ws.Format(minuteLayout))
	}
	return slots, nil
}

// DeleteMatching removes the first event in the 30-minute window at
// date+time whose summary contains name, ignoring case.
func (g *GoogleService) DeleteMatching(ctx context.Context, date, timeStr, name string) (bool, error) {
	start, err := time.ParseInLocation(dateLayout+" "+minuteLayout, date+" "+timeStr, g.loc)
	if err != nil {
		return false, fmt.Errorf("parse %q %q: %w", date, timeStr, err)
	}
	end := start.Add(slotDuration)

	events, err := g.listEvents(ctx, start, end)
	if err != nil {
		return false, err
	}

	logger := utils.GetLogger()
	for _, ev := range events {
		if name != "" && !strings.Contains(strings.ToLower(ev.Summary), strings.ToLower(name)) {
			continue
		}
		ctx, cancel := g.withTimeout(ctx)
		err := g.svc.Events.Delete(g.calendarID, ev.Id).Context(ctx).Do()
		cancel()
		if err != nil {
			return false, fmt.Errorf("delete event %s: %w", ev.Id, err)
		}
		logger.Info("deleted calendar event",
			zap.String("eventID", ev.Id), zap.String("summary", ev.Summary))
		return true, nil
	}
	return false, nil
}

type interval struct {
	start, end time.Time
}

// busyIntervals converts event payloads to concrete intervals. All-day
// events block the whole day.
func (g *GoogleService) busyIntervals(events []*gcal.Event, day time.Time) []interval {
	logger := utils.GetLogger()
	var busy []interval
	for _, ev := range events {
		iv, err := eventInterval(ev, day, g.loc)
		if err != nil {
			logger.Warn("skipping event with unparseable times",
				zap.String("eventID", ev.Id), zap.Error(err))
			continue
		}
		busy = append(busy, iv)
	}
	return busy
}

func eventInterval(ev *gcal.Event, day time.Time, loc *time.Location) (interval, error) {
	if ev.Start != nil && ev.Start.DateTime != "" && ev.End != nil && ev.End.DateTime != "" {
		start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return interval{}, err
		}
		end, err := time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			return interval{}, err
		}
		return interval{start: start.In(loc), end: end.In(loc)}, nil
	}
	// All-day event.
	return interval{start: day, end: day.AddDate(0, 0, 1)}, nil
}

func overlapsAny(busy []interval, start, end time.Time) bool {
	for _, iv := range busy {
		if iv.start.Before(end) && iv.end.After(start) {
			return true
		}
	}
	return false
}
