// Package localtools is the built-in MCP tool server: time, weather, system
// status, notes and calendar. It is served in-process to the tool registry
// or over stdio by the CLI.
package localtools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"voice-assistant/internal/notes"
	"voice-assistant/pkg/gcalendar"
	"voice-assistant/pkg/log"
	"voice-assistant/pkg/openmeteo"
)

// NoteStore is the notebook the note tools write to.
type NoteStore interface {
	Add(ctx context.Context, content string) (notes.Note, error)
	Recent(ctx context.Context, limit int) ([]notes.Note, error)
}

// CalendarLister reads upcoming events.
type CalendarLister interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

// StatusSource samples host metrics.
type StatusSource interface {
	Sample(ctx context.Context) (SystemStatus, error)
}

// Deps are the collaborators of the tool server. Nil collaborators make their
// tools answer with a "not configured" message instead of failing.
type Deps struct {
	Weather         openmeteo.IClient
	Notes           NoteStore
	Calendar        CalendarLister
	Status          StatusSource
	DefaultLocation string
	CalendarID      string
	Location        *time.Location
	Now             func() time.Time
}

// tool is one MCP tool: its definition and handler.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Tools holds the tool set; tests call handlers directly.
type Tools struct {
	deps Deps
	l    log.Logger
}

// NewTools fills defaults for deps.
func NewTools(deps Deps, l log.Logger) *Tools {
	if deps.DefaultLocation == "" {
		deps.DefaultLocation = DefaultLocation
	}
	if deps.CalendarID == "" {
		deps.CalendarID = gcalendar.DefaultCalendarID
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Tools{deps: deps, l: l}
}

func (t *Tools) now() time.Time {
	return t.deps.Now().In(t.deps.Location)
}

func (t *Tools) all() []tool {
	return []tool{
		currentTimeTool{t},
		uptimeTool{t},
		systemStatusTool{t},
		weatherTool{t},
		forecastTool{t},
		rainTool{t},
		takeNoteTool{t},
		readNotesTool{t},
		calendarTool{t},
		morningTool{t},
	}
}

// New creates the MCP server with every local tool registered.
func New(deps Deps, l log.Logger) *server.MCPServer {
	return NewTools(deps, l).Server()
}

// Server exposes t as an MCP server.
func (t *Tools) Server() *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, tl := range t.all() {
		s.AddTool(tl.Definition(), tl.Handle)
	}
	return s
}
