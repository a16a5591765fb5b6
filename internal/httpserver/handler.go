package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerAPIRoutes()
	srv.registerWebhookRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.traceMiddleware())
	if srv.metrics != nil {
		srv.gin.Use(srv.metricsMiddleware())
	}

	if srv.environment != EnvironmentProduction {
		srv.l.Infof(context.Background(), "HTTP server running in %s environment", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	if srv.metrics != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))
	}
}

// registerAPIRoutes registers the assistant API under /api/v1.
func (srv *HTTPServer) registerAPIRoutes() {
	api := srv.gin.Group("/api/v1")
	if srv.rateLimit.Enabled {
		api.Use(srv.rateLimitMiddleware())
	}

	api.POST("/route", srv.routeUtterance)
	api.POST("/utterances", srv.handleUtterance)
	api.POST("/memories", srv.remember)
	api.GET("/tools", srv.listTools)
	api.GET("/ws", srv.serveWS)
	if srv.apps != nil {
		api.POST("/apps/refresh", srv.refreshApps)
	}

	srv.l.Infof(context.Background(), "Assistant routes registered under /api/v1")
}

// registerWebhookRoutes registers inbound chat channels. They are not rate
// limited; Telegram retries throttled updates.
func (srv *HTTPServer) registerWebhookRoutes() {
	if srv.telegram == nil {
		return
	}
	srv.gin.POST("/webhook/telegram", srv.telegram.HandleWebhook)
	srv.l.Infof(context.Background(), "Telegram webhook registered at /webhook/telegram")
}
