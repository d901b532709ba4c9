package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/chart"
	"github.com/excel-analyzer-api/internal/service"
)

// ChartHandler handles chart series endpoints
type ChartHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(services *service.Services, log zerolog.Logger) *ChartHandler {
	return &ChartHandler{
		services: services,
		log:      log.With().Str("handler", "chart").Logger(),
	}
}

// Create handles POST /v1/charts
// Builds the aggregate series for the active dataset.
func (h *ChartHandler) Create(c *gin.Context) {
	var req struct {
		Category string     `json:"category"`
		Value    string     `json:"value"`
		Kind     chart.Kind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !chart.ValidKinds[req.Kind] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of: bar, line, pie, scatter"})
		return
	}

	series, err := h.services.Chart.BuildFromCurrent(req.Category, req.Value, req.Kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDataset):
			c.JSON(http.StatusConflict, gin.H{"error": "no uploaded data to chart"})
		case errors.Is(err, chart.ErrMissingAxis):
			c.JSON(http.StatusBadRequest, gin.H{"error": "please select both axes"})
		default:
			h.log.Error().Err(err).Msg("Chart build failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart"})
		}
		return
	}

	c.JSON(http.StatusOK, series)
}
