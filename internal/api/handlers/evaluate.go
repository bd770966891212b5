package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/config"
	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/history"
	"dualwell-tea/internal/metrics"
	"dualwell-tea/internal/model"

	"github.com/gin-gonic/gin"
)

// EvaluateHandler handles scenario evaluation requests
type EvaluateHandler struct {
	engine      *engine.Engine
	history     *history.Store
	metrics     *metrics.Metrics
	scenarioDir string
}

// NewEvaluateHandler creates a new evaluate handler. The metrics instance
// is optional; pass nil to disable instrumentation.
func NewEvaluateHandler(store *history.Store, m *metrics.Metrics) *EvaluateHandler {
	return &EvaluateHandler{
		engine:      engine.New(),
		history:     store,
		metrics:     m,
		scenarioDir: defaultScenarioDir(),
	}
}

// Evaluate handles POST /api/v1/evaluate
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
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
		h.metrics.IncrementEvaluation(string(in.CostModel), "invalid")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
			},
		})
		return
	}

	start := time.Now()
	result, err := h.engine.Evaluate(in)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			h.metrics.IncrementEvaluation(string(in.CostModel), "invalid")
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_INPUT",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EVALUATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	h.metrics.ObserveEvaluateLatency(time.Since(start))
	h.metrics.IncrementEvaluation(string(in.CostModel), "ok")

	// Record the run so it shows up in history and exports.
	label := req.Options.Label
	if label == "" {
		label = sc.Name
	}
	if label == "" {
		label = fmt.Sprintf("Run %d", h.history.Len()+1)
	}
	run := h.history.Add(label, in, result)
	h.metrics.SetHistoryRuns(h.history.Len())

	response := models.EvaluateResponse{
		ID:      run.ID,
		Status:  "completed",
		Label:   label,
		Summary: buildSummary(in, result),
	}
	if req.Options.IncludeTimeline {
		response.Timeline = convertTimeline(result.Timeline)
	}
	c.JSON(http.StatusOK, response)
}

// Compare handles POST /api/v1/evaluate/compare
func (h *EvaluateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	base := buildScenario(h.scenarioDir, req.BaseConfig)

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		merged := config.MergeScenario(base, buildScenario(h.scenarioDir, variation.Config))
		in := merged.WithDefaults().ToModelInputs()
		if err := checkParamBounds(in); err != nil {
			log.Printf("EvaluateHandler: skipping variation %q: %v", variation.Name, err)
			continue
		}

		result, err := h.engine.Evaluate(in)
		if err != nil {
			log.Printf("EvaluateHandler: skipping variation %q: %v", variation.Name, err)
			continue // Skip invalid variations
		}

		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: buildSummary(in, result),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Comparison: comparison,
	})
}

// Helper functions shared by the evaluate and sweep handlers.

// buildScenario converts the request payload into a scenario config. If
// scenario_file is set, the preset is the base and inline values override
// it; a preset that fails to load is logged and skipped, matching what a
// missing file means for a request that also carries inline values.
func buildScenario(dir string, p models.ScenarioPayload) config.ScenarioConfig {
	sc := scenarioFromParams(p.Scenario)
	if p.ScenarioFile != "" {
		// scenario_file is just the preset name (e.g. "base_case"); files
		// are always looked up in the scenario directory.
		path := filepath.Join(dir, p.ScenarioFile+".yaml")
		loaded, err := config.LoadUnchecked(path)
		if err == nil {
			sc = config.MergeScenario(loaded.Scenario, sc)
		} else {
			log.Printf("EvaluateHandler: failed to load scenario file %s: %v", path, err)
		}
	}
	return sc
}

func scenarioFromParams(p models.ScenarioParams) config.ScenarioConfig {
	return config.ScenarioConfig{
		Name:                       p.Name,
		CostModel:                  p.CostModel,
		CapturedAndStoredMtpa:      p.CapturedAndStoredMtpa,
		PercentSequestered:         p.PercentSequestered,
		CO2WaterRatio:              p.CO2WaterRatio,
		MaxInjectionRateKgsPerWell: p.MaxInjectionRateKgsPerWell,
		ThermalExtractionMWtKgs:    p.ThermalExtractionMWtKgs,
		ThermalEfficiency:          p.ThermalEfficiency,
		CapacityFactor:             p.CapacityFactor,
		CostOfCapital:              p.CostOfCapital,
		PowerValueUSDPerMWh:        p.PowerValueUSDPerMWh,
		TaxCredit45QPerTonne:       p.TaxCredit45QPerTonne,
		TaxCredit45QYears:          p.TaxCredit45QYears,
		CarbonPriceAbove45Q:        p.CarbonPriceAbove45Q,
		CO2CostPerTonne:            p.CO2CostPerTonne,
		TaxRate:                    p.TaxRate,
		SCO2CapexM:                 p.SCO2CapexM,
		GeoCapexPerWellM:           p.GeoCapexPerWellM,
		AboveGroundCapexPerMWM:     p.AboveGroundCapexPerMWM,
		DrillingCostPerWellM:       p.DrillingCostPerWellM,
		StimulationCostPerWellM:    p.StimulationCostPerWellM,
		ExplorationCostM:           p.ExplorationCostM,
		CapexEscalationFactor:      p.CapexEscalationFactor,
		AnnualOpexM:                p.AnnualOpexM,
		AnnualSalariesM:            p.AnnualSalariesM,
		MaintenancePerWellM:        p.MaintenancePerWellM,
		OpexPerMWM:                 p.OpexPerMWM,
		RedrillingPerWellM:         p.RedrillingPerWellM,
		ProjectLifeYears:           p.ProjectLifeYears,
	}
}

func paramsFromInputs(in model.ProjectInputs) models.ScenarioParams {
	return models.ScenarioParams{
		CostModel:                  string(in.CostModel),
		CapturedAndStoredMtpa:      in.CapturedAndStoredMtpa,
		PercentSequestered:         in.PercentSequestered,
		CO2WaterRatio:              in.CO2WaterRatio,
		MaxInjectionRateKgsPerWell: in.MaxInjectionRateKgsPerWell,
		ThermalExtractionMWtKgs:    in.ThermalExtractionMWtPerKgs,
		ThermalEfficiency:          in.ThermalEfficiency,
		CapacityFactor:             in.CapacityFactor,
		CostOfCapital:              in.CostOfCapital,
		PowerValueUSDPerMWh:        in.PowerValueUSDPerMWh,
		TaxCredit45QPerTonne:       in.TaxCredit45QPerTonne,
		TaxCredit45QYears:          in.TaxCredit45QYears,
		CarbonPriceAbove45Q:        in.CarbonPriceAbove45Q,
		CO2CostPerTonne:            in.CO2CostPerTonne,
		TaxRate:                    in.TaxRate,
		SCO2CapexM:                 in.SCO2CapexM,
		GeoCapexPerWellM:           in.GeoCapexPerWellM,
		AboveGroundCapexPerMWM:     in.AboveGroundCapexPerMWM,
		DrillingCostPerWellM:       in.DrillingCostPerWellM,
		StimulationCostPerWellM:    in.StimulationCostPerWellM,
		ExplorationCostM:           in.ExplorationCostM,
		CapexEscalationFactor:      in.CapexEscalationFactor,
		AnnualOpexM:                in.AnnualOpexM,
		AnnualSalariesM:            in.AnnualSalariesM,
		MaintenancePerWellM:        in.MaintenancePerWellM,
		OpexPerMWM:                 in.OpexPerMWM,
		RedrillingPerWellM:         in.RedrillingPerWellM,
		ProjectLifeYears:           in.ProjectLifeYears,
	}
}

func buildSummary(in model.ProjectInputs, result *engine.Result) models.EvaluationSummary {
	return models.EvaluationSummary{
		CostModel: string(in.CostModel),
		Derived:   buildDerived(result.Derived),
		Metrics:   buildMetrics(result.Metrics),
	}
}

func buildDerived(d model.DerivedQuantities) models.DerivedSummary {
	return models.DerivedSummary{
		InjectedCO2Mtpa:       d.InjectedCO2Mtpa,
		TotalInjectionRateKgs: d.TotalInjectionRateKgs,
		InjectionWells:        d.InjectionWells,
		TotalWells:            d.TotalWells,
		HeatGeneratedMWt:      d.HeatGeneratedMWt,
		PowerGeneratedMW:      d.PowerGeneratedMW,
		AnnualEnergyMWh:       d.AnnualEnergyMWh,
		AboveGroundCapexM:     d.AboveGroundCapexM,
		SubsurfaceCapexM:      d.SubsurfaceCapexM,
		TotalCapexM:           d.TotalCapexM,
		AnnualOpexCostM:       d.AnnualOpexCostM,
	}
}

func buildMetrics(m engine.Metrics) models.MetricsSummary {
	return models.MetricsSummary{
		NPVM:          m.NPVM,
		LCOEUSDPerMWh: m.LCOEUSDPerMWh,
		IRR:           m.IRR,
		PaybackYear:   m.PaybackYear,
	}
}

func convertTimeline(timeline []engine.YearFlow) []models.YearRow {
	result := make([]models.YearRow, len(timeline))
	for i, row := range timeline {
		result[i] = models.YearRow{
			Year:                 row.Year,
			Phase:                string(row.Phase),
			CapexM:               row.CapexM,
			ElectricityRevenueM:  row.ElectricityRevenueM,
			TaxCredit45QRevenueM: row.TaxCredit45QRevenueM,
			CarbonCreditRevenueM: row.CarbonCreditRevenueM,
			OpexM:                row.OpexM,
			CO2CostM:             row.CO2CostM,
			TaxM:                 row.TaxM,
			GenerationMWh:        row.GenerationMWh,
			NetM:                 row.NetM,
			CumulativeNetM:       row.CumulativeNetM,
			DiscountFactor:       row.DiscountFactor,
			DiscountedNetM:       row.DiscountedNetM,
		}
	}
	return result
}
