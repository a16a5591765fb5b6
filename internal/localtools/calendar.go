package localtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"voice-assistant/pkg/datemath"
	"voice-assistant/pkg/gcalendar"
)

type calendarTool struct{ t *Tools }

func (calendarTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolCalendarEvents,
		mcp.WithDescription("List Google Calendar events, either upcoming or on one day."),
		mcp.WithNumber(ArgDays,
			mcp.Description("How many days ahead to look (default: 1)"),
		),
		mcp.WithString(ArgDay,
			mcp.Description("A single day instead, e.g. 'tomorrow', 'next friday', 'in 3 days' or 2026-05-01"),
		),
	)
}

func (c calendarTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		msg string
		ok  bool
	)
	if day := strings.TrimSpace(req.GetString(ArgDay, "")); day != "" {
		msg, ok = c.t.EventsOn(ctx, day)
	} else {
		msg, ok = c.t.UpcomingEvents(ctx, intArg(req, ArgDays, DefaultCalendarDays))
	}
	if !ok {
		return mcp.NewToolResultError(msg), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// UpcomingEvents describes the events of the next days. ok is false when the
// calendar could not be read.
func (t *Tools) UpcomingEvents(ctx context.Context, days int) (string, bool) {
	if days <= 0 {
		days = DefaultCalendarDays
	}
	now := t.now()
	return t.describeEvents(ctx, now, now.AddDate(0, 0, days))
}

// EventsOn describes the events of the day a spoken phrase names.
func (t *Tools) EventsOn(ctx context.Context, day string) (string, bool) {
	start, end, err := datemath.NewParser(t.deps.Location).Day(day, t.now())
	if err != nil {
		return fmt.Sprintf(MsgCalendarBadDay, day), false
	}
	return t.describeEvents(ctx, start, end)
}

func (t *Tools) describeEvents(ctx context.Context, from, to time.Time) (string, bool) {
	if t.deps.Calendar == nil {
		return MsgCalendarMissing, false
	}

	events, err := t.deps.Calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: t.deps.CalendarID,
		TimeMin:    from,
		TimeMax:    to,
		MaxResults: MaxCalendarEvents,
	})
	if err != nil {
		t.l.Warnf(ctx, "%s: list failed: %v", LogPrefixCalendar, err)
		return MsgCalendarDown, false
	}
	if len(events) == 0 {
		return MsgCalendarEmpty, true
	}

	parts := make([]string, 0, len(events))
	for _, e := range events {
		if e.AllDay {
			parts = append(parts, fmt.Sprintf("%s (all day %s)", e.Summary, e.StartTime.Format("Monday")))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s at %s", e.Summary, e.StartTime.In(t.deps.Location).Format("Monday 03:04 PM")))
	}

	noun := "events"
	if len(events) == 1 {
		noun = "event"
	}
	return fmt.Sprintf("You have %d %s: %s.", len(events), noun, strings.Join(parts, "; ")), true
}
