package localtools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"voice-assistant/internal/notes"
)

type takeNoteTool struct{ t *Tools }

func (takeNoteTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolTakeNote,
		mcp.WithDescription("Save a note to the user's notebook."),
		mcp.WithString(ArgContent,
			mcp.Required(),
			mcp.Description("The note text"),
		),
	)
}

func (n takeNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := strings.TrimSpace(req.GetString(ArgContent, ""))
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}
	msg, err := n.t.TakeNote(ctx, content)
	if err != nil {
		return mcp.NewToolResultError(msg), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// TakeNote saves content and returns the spoken confirmation.
func (t *Tools) TakeNote(ctx context.Context, content string) (string, error) {
	if t.deps.Notes == nil {
		return MsgNotesMissing, errors.New("notes store not configured")
	}
	note, err := t.deps.Notes.Add(ctx, content)
	if err != nil {
		if errors.Is(err, notes.ErrEmptyNote) {
			return "There is nothing to note.", err
		}
		t.l.Errorf(ctx, "%s: add failed: %v", LogPrefixNotes, err)
		return fmt.Sprintf("Failed to save note: %v", err), err
	}
	return fmt.Sprintf(MsgNoteSaved, note.Content), nil
}

type readNotesTool struct{ t *Tools }

func (readNotesTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolReadNotes,
		mcp.WithDescription("Read the user's most recent notes."),
		mcp.WithNumber(ArgLimit,
			mcp.Description("How many notes to read (default: 3)"),
		),
	)
}

func (n readNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(n.t.ReadNotes(ctx, intArg(req, ArgLimit, DefaultNotesLimit))), nil
}

// ReadNotes lists the latest notes, oldest first, one per line.
func (t *Tools) ReadNotes(ctx context.Context, limit int) string {
	if t.deps.Notes == nil {
		return MsgNotesMissing
	}
	recent, err := t.deps.Notes.Recent(ctx, limit)
	if err != nil {
		t.l.Errorf(ctx, "%s: read failed: %v", LogPrefixNotes, err)
		return MsgNotesMissing
	}
	if len(recent) == 0 {
		return MsgNotesEmpty
	}

	lines := make([]string, 0, len(recent)+1)
	lines = append(lines, MsgNotesHeader)
	for _, n := range recent {
		lines = append(lines, fmt.Sprintf("[%s] %s", n.CreatedAt.In(t.deps.Location).Format("2006-01-02 15:04"), n.Content))
	}
	return strings.Join(lines, "\n")
}
