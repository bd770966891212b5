package handlers

import (
	"errors"
	"net/http"
	"time"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/metrics"
	"dualwell-tea/internal/model"
	"dualwell-tea/internal/sweep"

	"github.com/gin-gonic/gin"
)

// SweepHandler handles parameter sweep requests
type SweepHandler struct {
	runner      *sweep.Runner
	metrics     *metrics.Metrics
	scenarioDir string
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(m *metrics.Metrics) *SweepHandler {
	return &SweepHandler{
		runner:      sweep.NewRunner(),
		metrics:     m,
		scenarioDir: defaultScenarioDir(),
	}
}

// RunSweep handles POST /api/v1/sweep
func (h *SweepHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sc := buildScenario(h.scenarioDir, req.Config)
	in := sc.WithDefaults().ToModelInputs()
	if err := checkParamBounds(in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
			},
		})
		return
	}
	if err := checkSweepRange(in.CostModel, req.Param, req.From, req.To); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SWEEP",
				Message: err.Error(),
			},
		})
		return
	}

	start := time.Now()
	result, err := h.runner.Run(c.Request.Context(), sweep.Request{
		Base:  in,
		Param: req.Param,
		From:  req.From,
		To:    req.To,
		Steps: req.Steps,
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_SWEEP",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SWEEP_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	h.metrics.ObserveSweepLatency(result.Param, time.Since(start))

	c.JSON(http.StatusOK, convertSweep(result))
}

func convertSweep(result *sweep.Result) models.SweepResponse {
	points := make([]models.SweepPoint, len(result.Points))
	for i, p := range result.Points {
		point := models.SweepPoint{Value: p.Value}
		if p.Err != "" {
			point.Error = p.Err
		} else {
			m := buildMetrics(p.Result.Metrics)
			point.Metrics = &m
			point.TotalWells = p.Result.Derived.TotalWells
			point.TotalCapexM = p.Result.Derived.TotalCapexM
		}
		points[i] = point
	}
	return models.SweepResponse{
		Param:  result.Param,
		Unit:   result.Unit,
		Points: points,
	}
}
