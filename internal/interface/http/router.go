package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/salinity-watch/internal/domain/station"
	"github.com/yanqian/salinity-watch/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, stationSvc station.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	httpLogger := logger.With("component", "http.router")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(httpLogger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(httpLogger),
	)

	api := router.Group("/api/v1")
	{
		api.GET("/healthz", handler.Health)
		api.GET("/readings/stream", handler.StreamReadings)

		limited := api.Group("")
		limited.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, httpLogger))
		limited.GET("/species", handler.ListSpecies)
		limited.POST("/compatibility", handler.CheckCompatibility)
		limited.POST("/analysis", handler.AnalyzeConditions)
		limited.GET("/status", handler.Status)
		limited.GET("/readings", handler.ListReadings)
		limited.GET("/readings/latest", handler.LatestReading)
		limited.POST("/readings", stationAuthMiddleware(stationSvc), handler.IngestReading)
		limited.POST("/stations/token", handler.IssueStationToken)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
