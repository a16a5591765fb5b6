package httpserver

import "voice-assistant/internal/model"

// utteranceRequest is the body of /route and /utterances.
type utteranceRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text" binding:"required"`
}

// memoryRequest is the body of /memories.
type memoryRequest struct {
	Text string `json:"text" binding:"required"`
}

type memoryResponse struct {
	Stored bool   `json:"stored"`
	Text   string `json:"text"`
}

type toolsResponse struct {
	Tools []model.ToolDescriptor `json:"tools"`
}

// wsMessage is one websocket frame in either direction.
type wsMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
	Reply any    `json:"reply,omitempty"`
}

type appsResponse struct {
	Aliases int `json:"aliases"`
}
