package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/station"
	"github.com/yanqian/salinity-watch/internal/domain/water"
	"github.com/yanqian/salinity-watch/internal/infra/config"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	monitorSvc monitor.Service
	stationSvc station.Service
	upgrader   websocket.Upgrader
	maxHistory int
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, monitorSvc monitor.Service, stationSvc station.Service, logger *slog.Logger) *Handler {
	return &Handler{
		monitorSvc: monitorSvc,
		stationSvc: stationSvc,
		upgrader:   newUpgrader(cfg.HTTP.CORSOrigins),
		maxHistory: maxHistory(cfg.Analysis.WindowSize),
		logger:     logger.With("component", "http.handler"),
	}
}

// readingPayload requires both measurements so a missing field is not read as zero.
type readingPayload struct {
	Time        string   `json:"time"`
	Salinity    *float64 `json:"salinity" binding:"required"`
	Temperature *float64 `json:"temperature" binding:"required"`
}

func (p readingPayload) reading() water.Reading {
	return water.Reading{Time: p.Time, Salinity: *p.Salinity, Temperature: *p.Temperature}
}

type checkRequest struct {
	Species string          `json:"species"`
	Reading *readingPayload `json:"reading"`
}

type analyzeRequest struct {
	History []readingPayload `json:"history" binding:"omitempty,dive"`
}

func maxHistory(windowSize int) int {
	if windowSize <= 0 {
		return water.DefaultWindowSize
	}
	return windowSize
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListSpecies returns the reference table.
func (h *Handler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"species": h.monitorSvc.Species(c.Request.Context())})
}

// CheckCompatibility classifies a species against a reading or the latest one.
func (h *Handler) CheckCompatibility(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	check := monitor.CheckRequest{Species: req.Species}
	if req.Reading != nil {
		reading := req.Reading.reading()
		check.Reading = &reading
	}
	verdict, err := h.monitorSvc.CheckSpecies(c.Request.Context(), check)
	if err != nil {
		abortWithError(c, fromDomainError(err, "compatibility_failed"))
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// AnalyzeConditions narrates the posted history, or the stored window when the body is empty.
func (h *Handler) AnalyzeConditions(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if len(req.History) > h.maxHistory {
		msg := fmt.Sprintf("history holds %d readings, at most %d are accepted", len(req.History), h.maxHistory)
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", msg, nil))
		return
	}

	// A nil history asks for the stored window; an explicit [] is analysed as empty.
	analyze := monitor.AnalyzeRequest{}
	if req.History != nil {
		analyze.History = make([]water.Reading, 0, len(req.History))
		for _, p := range req.History {
			analyze.History = append(analyze.History, p.reading())
		}
	}
	report, err := h.monitorSvc.Analyze(c.Request.Context(), analyze)
	if err != nil {
		abortWithError(c, fromDomainError(err, "analysis_failed"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// Status returns the headline card.
func (h *Handler) Status(c *gin.Context) {
	status, err := h.monitorSvc.Status(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "status_failed"))
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListReadings returns the window, oldest first.
func (h *Handler) ListReadings(c *gin.Context) {
	history, err := h.monitorSvc.History(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "readings_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": history})
}

// LatestReading returns the newest reading.
func (h *Handler) LatestReading(c *gin.Context) {
	latest, err := h.monitorSvc.Current(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "readings_failed"))
		return
	}
	c.JSON(http.StatusOK, latest)
}

// IngestReading accepts a reading from a station.
func (h *Handler) IngestReading(c *gin.Context) {
	var req readingPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stored, err := h.monitorSvc.Ingest(c.Request.Context(), req.reading())
	if err != nil {
		abortWithError(c, fromDomainError(err, "ingest_failed"))
		return
	}
	if claims, ok := getStationClaims(c); ok {
		h.logger.Info("station reading accepted", "station", claims.StationID, "time", stored.Time)
	}
	c.JSON(http.StatusCreated, stored)
}

// IssueStationToken exchanges station credentials for an ingest token.
func (h *Handler) IssueStationToken(c *gin.Context) {
	var req station.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.stationSvc.IssueToken(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "token_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
