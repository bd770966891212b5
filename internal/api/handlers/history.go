package handlers

import (
	"fmt"
	"log"
	"net/http"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/history"
	"dualwell-tea/internal/metrics"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryHandler handles stored run requests
type HistoryHandler struct {
	store   *history.Store
	metrics *metrics.Metrics
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store *history.Store, m *metrics.Metrics) *HistoryHandler {
	return &HistoryHandler{store: store, metrics: m}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	runs := h.store.List()
	infos := make([]models.RunInfo, len(runs))
	for i, run := range runs {
		infos[i] = models.RunInfo{
			ID:        run.ID,
			Label:     run.Label,
			CreatedAt: run.CreatedAt,
			CostModel: string(run.Inputs.CostModel),
			Metrics:   buildMetrics(run.Metrics),
		}
	}
	c.JSON(http.StatusOK, models.HistoryResponse{Runs: infos})
}

// Get handles GET /api/v1/history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: fmt.Sprintf("no stored run with id %q", id),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.RunDetail{
		ID:        run.ID,
		Label:     run.Label,
		CreatedAt: run.CreatedAt,
		Scenario:  paramsFromInputs(run.Inputs),
		Derived:   buildDerived(run.Derived),
		Metrics:   buildMetrics(run.Metrics),
	})
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(c *gin.Context) {
	cleared := h.store.Clear()
	h.metrics.SetHistoryRuns(0)
	c.JSON(http.StatusOK, models.ClearHistoryResponse{Cleared: cleared})
}

// Export handles GET /api/v1/history/export?format=csv|xlsx.
// The export is transposed: one row per parameter, one column per run.
func (h *HistoryHandler) Export(c *gin.Context) {
	runs := h.store.List()

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="TEA_Runs.csv"`)
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := history.WriteCSV(c.Writer, runs); err != nil {
			log.Printf("HistoryHandler: CSV export failed: %v", err)
		}
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="TEA_Runs.xlsx"`)
		c.Header("Content-Type", xlsxContentType)
		c.Status(http.StatusOK)
		if err := history.WriteXLSX(c.Writer, runs); err != nil {
			log.Printf("HistoryHandler: XLSX export failed: %v", err)
		}
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FORMAT",
				Message: "format must be csv or xlsx",
			},
		})
	}
}
