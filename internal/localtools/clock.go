package localtools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

type currentTimeTool struct{ t *Tools }

func (currentTimeTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolCurrentTime,
		mcp.WithDescription("Get the current local date and time."),
	)
}

func (c currentTimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(c.t.CurrentTime()), nil
}

// CurrentTime is the spoken local time and date.
func (t *Tools) CurrentTime() string {
	return formatTime(t.now())
}

func formatTime(now time.Time) string {
	return fmt.Sprintf("The current time is %s on %s.", now.Format("03:04 PM"), now.Format("Monday, January 02, 2006"))
}

type uptimeTool struct{ t *Tools }

func (uptimeTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolUptime,
		mcp.WithDescription("Get how long the system has been running."),
	)
}

func (u uptimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, ok := u.t.sample(ctx)
	if !ok {
		return mcp.NewToolResultError(MsgStatusUnavailable), nil
	}
	return mcp.NewToolResultText(formatUptime(st.Uptime)), nil
}

// Uptime reports how long the machine has been up.
func (t *Tools) Uptime(ctx context.Context) string {
	st, ok := t.sample(ctx)
	if !ok {
		return MsgStatusUnavailable
	}
	return formatUptime(st.Uptime)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("System has been running for %d days, %d hours, and %d minutes.", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("System has been running for %d hours and %d minutes.", hours, minutes)
	default:
		return fmt.Sprintf("System has been running for %d minutes.", minutes)
	}
}
