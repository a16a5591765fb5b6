package localtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type morningTool struct{ t *Tools }

func (morningTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolMorningProtocol,
		mcp.WithDescription("Spoken morning briefing: time, system check, weather and today's calendar."),
		mcp.WithString(ArgLocation,
			mcp.Description("City for the weather part (default: "+DefaultLocation+")"),
		),
	)
}

func (m morningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(m.t.MorningBriefing(ctx, m.t.location(req))), nil
}

// MorningBriefing strings together time, system stats, weather and calendar.
// Missing collaborators are skipped.
func (t *Tools) MorningBriefing(ctx context.Context, location string) string {
	now := t.now()
	parts := []string{
		"Good morning.",
		fmt.Sprintf("It is %s on %s.", now.Format("03:04 PM"), now.Format("Monday, January 02")),
	}

	if st, ok := t.sample(ctx); ok {
		parts = append(parts, "Systems check complete. "+formatStats(st))
	}
	if t.deps.Weather != nil {
		parts = append(parts, "Outside: "+t.CurrentWeather(ctx, location))
	}
	if t.deps.Calendar != nil {
		if msg, ok := t.UpcomingEvents(ctx, DefaultCalendarDays); ok {
			parts = append(parts, msg)
		}
	}

	parts = append(parts, MsgStandingBy)
	return strings.Join(parts, " ")
}
