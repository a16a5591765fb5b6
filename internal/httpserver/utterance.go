package httpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-assistant/internal/assistant"
	"voice-assistant/pkg/response"
)

var errUtteranceTooLong = fmt.Errorf("utterance longer than %d bytes", MaxUtteranceLength)

func bindUtterance(c *gin.Context) (utteranceRequest, error) {
	var req utteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return req, assistant.ErrEmptyUtterance
	}
	if len(req.Text) > MaxUtteranceLength {
		return req, errUtteranceTooLong
	}
	if req.SessionID == "" {
		req.SessionID = c.GetHeader(HeaderSessionID)
	}
	if req.SessionID == "" {
		req.SessionID = DefaultSessionID
	}
	return req, nil
}

// routeUtterance returns the routing decision without acting on it.
// @Summary Route an utterance
// @Description Classify an utterance into exactly one intent
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body utteranceRequest true "Utterance"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Router /api/v1/route [post]
func (srv *HTTPServer) routeUtterance(c *gin.Context) {
	req, err := bindUtterance(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, srv.assistant.Route(c.Request.Context(), req.Text))
}

// handleUtterance answers an utterance end to end.
// @Summary Handle an utterance
// @Description Route an utterance and answer it with a skill or a model tier
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body utteranceRequest true "Utterance"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Router /api/v1/utterances [post]
func (srv *HTTPServer) handleUtterance(c *gin.Context) {
	req, err := bindUtterance(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	ctx := c.Request.Context()
	reply, err := srv.assistant.Handle(ctx, req.SessionID, req.Text)
	switch {
	case errors.Is(err, context.Canceled):
		response.Canceled(c)
	case err != nil:
		srv.l.Errorf(ctx, "%s: session=%s: %v", LogPrefixUtterance, req.SessionID, err)
		response.InternalError(c, err)
	default:
		response.OK(c, reply)
	}
}

// remember stores a fact in long-term memory.
// @Summary Remember a fact
// @Tags Memory
// @Accept json
// @Produce json
// @Param request body memoryRequest true "Fact"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Router /api/v1/memories [post]
func (srv *HTTPServer) remember(c *gin.Context) {
	var req memoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}
	fact := strings.TrimSpace(req.Text)
	if fact == "" {
		response.Error(c, assistant.ErrEmptyUtterance, nil)
		return
	}

	stored := srv.assistant.Remember(c.Request.Context(), fact)
	text := assistant.MsgRememberFailed
	if stored {
		text = fmt.Sprintf(assistant.MsgRemembered, fact)
	}
	response.OK(c, memoryResponse{Stored: stored, Text: text})
}

// listTools returns the tool catalogue.
// @Summary List tools
// @Tags Tools
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/tools [get]
func (srv *HTTPServer) listTools(c *gin.Context) {
	resp := toolsResponse{}
	if srv.tools != nil {
		resp.Tools = srv.tools.ListTools(c.Request.Context())
	}
	response.OK(c, resp)
}

// refreshApps reloads the app alias file.
// @Summary Reload app aliases
// @Tags Apps
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/apps/refresh [post]
func (srv *HTTPServer) refreshApps(c *gin.Context) {
	ctx := c.Request.Context()
	if err := srv.apps.Refresh(ctx); err != nil {
		srv.l.Errorf(ctx, "%s: refresh apps: %v", LogPrefixApps, err)
		response.InternalError(c, err)
		return
	}
	srv.l.Infof(ctx, "%s: %d aliases loaded", LogPrefixApps, srv.apps.Len())
	response.OK(c, appsResponse{Aliases: srv.apps.Len()})
}
