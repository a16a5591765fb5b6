package httpserver

import (
	"github.com/gin-gonic/gin"

	"voice-assistant/pkg/response"
)

func healthBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, healthBody("healthy"))
}

// readyCheck lists the tools once, so a ready answer means the tool servers respond.
// @Summary Readiness Check
// @Description Reports the number of reachable tools and the enabled chat channels
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	body := healthBody("ready")
	tools := 0
	if srv.tools != nil {
		tools = len(srv.tools.ListTools(c.Request.Context()))
	}
	body["tools"] = tools
	body["telegram"] = srv.telegram != nil
	response.OK(c, body)
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, healthBody("alive"))
}
