package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seraface/seraface-server/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1/skincare")
	{
		api.POST("/forms", handler.SubmitForm)
		api.GET("/forms", handler.ListForms)
		api.POST("/sessions/:id/analysis", handler.AnalyzeFace)
		api.GET("/sessions/:id/status", handler.SessionStatus)
		api.POST("/routines", handler.CreateRoutine)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
