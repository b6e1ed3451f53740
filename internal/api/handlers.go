// Package api exposes the appraisal pipeline over HTTP. Handlers stay
// thin: bind the request, run the engine, shape the response. The only
// client error beyond malformed JSON is a missing subject property;
// every other input gap comes back inside a 200 report with provenance
// notes.
package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"capsight/config"
	"capsight/internal/appraisal"
	"capsight/internal/batch"
	"capsight/internal/models"
)

type Handler struct {
	engine *appraisal.Engine
	runner *batch.Runner
	grid   map[string]map[string]float64
	logger *logrus.Logger
}

// BatchRequest is the payload for a batch appraisal.
type BatchRequest struct {
	Inputs []*models.AppraisalInput `json:"inputs"`
}

// BatchItem is one slot of a batch response, in input order.
type BatchItem struct {
	Index  int                        `json:"index"`
	Report *appraisal.AppraisalReport `json:"report,omitempty"`
	Error  string                     `json:"error,omitempty"`
}

// BatchResponse summarizes a batch run.
type BatchResponse struct {
	Count    int         `json:"count"`
	Failures int         `json:"failures"`
	Results  []BatchItem `json:"results"`
}

// NewHandler wires the API around an engine and batch runner. A nil
// grid falls back to the built-in one; a nil logger gets a default
// JSON logger.
func NewHandler(engine *appraisal.Engine, runner *batch.Runner, grid map[string]map[string]float64, logger *logrus.Logger) *Handler {
	if grid == nil {
		grid = config.CapRateGrid()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		engine: engine,
		runner: runner,
		grid:   grid,
		logger: logger,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "capsight",
	})
}

// Appraise runs the full pipeline for a single property.
func (h *Handler) Appraise(c *gin.Context) {
	var input models.AppraisalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.WithError(err).Error("Failed to parse appraisal request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.engine.Run(&input)
	if err != nil {
		if errors.Is(err, appraisal.ErrMissingSubject) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subject property is required"})
			return
		}
		h.logger.WithError(err).Error("Appraisal run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run appraisal"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// AppraiseBatch runs the pipeline for every input in the request.
// Per-item failures are reported in their result slot; only an empty
// batch is rejected outright.
func (h *Handler) AppraiseBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse batch request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcomes, err := h.runner.Run(c.Request.Context(), req.Inputs)
	if err != nil {
		if errors.Is(err, batch.ErrNoUsableInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no appraisal inputs provided"})
			return
		}
		h.logger.WithError(err).Error("Batch appraisal failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run batch appraisal"})
		return
	}

	resp := BatchResponse{
		Count:   len(outcomes),
		Results: make([]BatchItem, 0, len(outcomes)),
	}
	for _, out := range outcomes {
		item := BatchItem{Index: out.Index, Report: out.Report}
		if out.Err != nil {
			item.Error = out.Err.Error()
			resp.Failures++
		}
		resp.Results = append(resp.Results, item)
	}

	c.JSON(http.StatusOK, resp)
}

// GetCapRates exposes the active cap-rate grid for introspection.
func (h *Handler) GetCapRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"archetypes": config.GridArchetypes(),
		"grid":       h.grid,
	})
}
