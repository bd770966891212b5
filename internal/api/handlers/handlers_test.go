package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/history"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(t *testing.T) (*gin.Engine, *history.Store) {
	t.Helper()
	store := history.NewStore()
	evaluateHandler := NewEvaluateHandler(store, nil)
	sweepHandler := NewSweepHandler(nil)
	costModelHandler := NewCostModelHandler()
	scenarioHandler := NewScenarioHandler()
	historyHandler := NewHistoryHandler(store, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/evaluate", evaluateHandler.Evaluate)
	api.POST("/evaluate/compare", evaluateHandler.Compare)
	api.POST("/sweep", sweepHandler.RunSweep)
	api.GET("/costmodels", costModelHandler.ListCostModels)
	api.GET("/scenarios", scenarioHandler.ListScenarios)
	api.GET("/history", historyHandler.List)
	api.GET("/history/export", historyHandler.Export)
	api.GET("/history/:id", historyHandler.Get)
	api.DELETE("/history", historyHandler.Clear)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func fixedScenario() models.ScenarioParams {
	return models.ScenarioParams{
		CostModel:               "fixed",
		CapturedAndStoredMtpa:   0.2,
		PercentSequestered:      0.01,
		CO2WaterRatio:           1.0,
		ThermalExtractionMWtKgs: 0.711,
		ThermalEfficiency:       0.19,
		CapacityFactor:          1.0,
		CostOfCapital:           0.08,
		PowerValueUSDPerMWh:     95.4,
		TaxCredit45QPerTonne:    85.0,
		TaxCredit45QYears:       12,
		CarbonPriceAbove45Q:     40.0,
		CO2CostPerTonne:         100.0,
		SCO2CapexM:              70.0,
		GeoCapexPerWellM:        10.0,
		AnnualOpexM:             30.0,
		ProjectLifeYears:        15,
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	router, store := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		Config: models.ScenarioPayload{Scenario: fixedScenario()},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.EvaluateResponse](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Run 1", resp.Label)
	assert.Equal(t, "fixed", resp.Summary.CostModel)
	assert.Equal(t, 14, resp.Summary.Derived.TotalWells)
	assert.InDelta(t, 210.0, resp.Summary.Derived.TotalCapexM, 1e-9)
	assert.Positive(t, resp.Summary.Metrics.NPVM)
	assert.Positive(t, resp.Summary.Metrics.LCOEUSDPerMWh)
	require.NotNil(t, resp.Summary.Metrics.PaybackYear)
	assert.Equal(t, 7, *resp.Summary.Metrics.PaybackYear)
	require.NotNil(t, resp.Summary.Metrics.IRR)
	assert.Empty(t, resp.Timeline)

	// The run is recorded for the history endpoints.
	assert.Equal(t, 1, store.Len())
}

func TestEvaluateIncludesTimelineOnRequest(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		Config:  models.ScenarioPayload{Scenario: fixedScenario()},
		Options: models.EvaluateOptions{IncludeTimeline: true, Label: "with timeline"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[models.EvaluateResponse](t, rec)
	assert.Equal(t, "with timeline", resp.Label)
	require.Len(t, resp.Timeline, 18)
	assert.Equal(t, "CONSTRUCTION", resp.Timeline[0].Phase)
	assert.Equal(t, "OPERATIONS", resp.Timeline[3].Phase)
	assert.Negative(t, resp.Timeline[0].NetM)
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	t.Run("value outside the advertised range", func(t *testing.T) {
		router, store := newRouter(t)

		bad := fixedScenario()
		bad.ThermalEfficiency = 1.5
		rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
			Config: models.ScenarioPayload{Scenario: bad},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[models.ErrorResponse](t, rec)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "thermal_efficiency")
		assert.Zero(t, store.Len())
	})

	t.Run("unknown cost model", func(t *testing.T) {
		router, store := newRouter(t)

		bad := fixedScenario()
		bad.CostModel = "hybrid"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
			Config: models.ScenarioPayload{Scenario: bad},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[models.ErrorResponse](t, rec)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "CostModel must be")
		assert.Zero(t, store.Len())
	})
}

// Range enforcement mirrors the catalog: requests outside the advertised
// min/max fail fast with INVALID_INPUT instead of reaching the engine,
// where an extreme life would grind through a timeline row per year and a
// vanishing sequestered share drives the metrics to +Inf, which no JSON
// encoder can carry.
func TestEvaluateEnforcesCatalogRanges(t *testing.T) {
	t.Run("project life past the advertised max", func(t *testing.T) {
		router, store := newRouter(t)

		bad := fixedScenario()
		bad.ProjectLifeYears = 100000
		rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
			Config: models.ScenarioPayload{Scenario: bad},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[models.ErrorResponse](t, rec)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "project_life_years")
		assert.Zero(t, store.Len())
	})

	t.Run("sequestered share below the advertised min", func(t *testing.T) {
		router, store := newRouter(t)

		bad := fixedScenario()
		bad.PercentSequestered = 1e-300
		rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
			Config: models.ScenarioPayload{Scenario: bad},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotEmpty(t, rec.Body.Bytes())

		resp := decode[models.ErrorResponse](t, rec)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "percent_sequestered")
		assert.Zero(t, store.Len())
	})
}

func TestEvaluateRejectsMalformedBody(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[models.ErrorResponse](t, rec)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestEvaluateLoadsScenarioFile(t *testing.T) {
	dir := t.TempDir()
	preset := `scenario:
  name: Preset case
  cost_model: fixed
  captured_and_stored_mtpa: 0.2
  percent_sequestered: 0.01
  co2_water_ratio: 1.0
  thermal_extraction_mwt_kgs: 0.711
  thermal_efficiency: 0.19
  capacity_factor: 1.0
  cost_of_capital: 0.08
  power_value_usd_mwh: 95.4
  tax_credit_45q: 85.0
  tax_credit_duration_years: 12
  carbon_price_above_45q: 40.0
  co2_cost_per_tonne: 100.0
  sco2_capex_m: 70.0
  geo_capex_per_well_m: 10.0
  annual_opex_m: 30.0
  project_life_years: 15
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preset.yaml"), []byte(preset), 0o644))
	t.Setenv("SCENARIO_DIR", dir)

	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		Config: models.ScenarioPayload{
			ScenarioFile: "preset",
			Scenario:     models.ScenarioParams{PowerValueUSDPerMWh: 110.0},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.EvaluateResponse](t, rec)
	// Preset fields fill in everything the override left out; the run label
	// falls back to the preset name.
	assert.Equal(t, "Preset case", resp.Label)
	assert.Equal(t, 14, resp.Summary.Derived.TotalWells)
	assert.Positive(t, resp.Summary.Metrics.NPVM)
}

func TestCompareSkipsInvalidVariations(t *testing.T) {
	router, _ := newRouter(t)

	higherPrice := models.ScenarioParams{PowerValueUSDPerMWh: 150.0}
	broken := models.ScenarioParams{CapturedAndStoredMtpa: -1.0}
	// Within the engine's tolerance but past the catalog's 50-year max.
	tooLong := models.ScenarioParams{ProjectLifeYears: 500}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate/compare", models.CompareRequest{
		BaseConfig: models.ScenarioPayload{Scenario: fixedScenario()},
		Variations: []models.ScenarioVariation{
			{Name: "higher price", Config: models.ScenarioPayload{Scenario: higherPrice}},
			{Name: "broken", Config: models.ScenarioPayload{Scenario: broken}},
			{Name: "too long", Config: models.ScenarioPayload{Scenario: tooLong}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[models.CompareResponse](t, rec)
	require.Len(t, resp.Comparison, 1)
	assert.Equal(t, "higher price", resp.Comparison[0].Name)
	assert.Positive(t, resp.Comparison[0].Summary.Metrics.NPVM)
}

func TestSweepEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep", models.SweepRequest{
		Config: models.ScenarioPayload{Scenario: fixedScenario()},
		Param:  "power_value_usd_mwh",
		From:   40.0,
		To:     160.0,
		Steps:  5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[models.SweepResponse](t, rec)
	assert.Equal(t, "power_value_usd_mwh", resp.Param)
	assert.Equal(t, "$/MWh", resp.Unit)
	require.Len(t, resp.Points, 5)

	assert.Equal(t, 40.0, resp.Points[0].Value)
	assert.Equal(t, 160.0, resp.Points[4].Value)
	for i, p := range resp.Points {
		require.Empty(t, p.Error)
		require.NotNil(t, p.Metrics)
		assert.Equal(t, 14, p.TotalWells)
		if i > 0 {
			// Higher power price, higher NPV.
			assert.Greater(t, p.Metrics.NPVM, resp.Points[i-1].Metrics.NPVM)
		}
	}
}

func TestSweepRejectsUnknownParam(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep", models.SweepRequest{
		Config: models.ScenarioPayload{Scenario: fixedScenario()},
		Param:  "banana",
		From:   0,
		To:     1,
		Steps:  3,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[models.ErrorResponse](t, rec)
	assert.Equal(t, "INVALID_SWEEP", resp.Error.Code)
}

func TestSweepRejectsOutOfRangeEndpoints(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep", models.SweepRequest{
		Config: models.ScenarioPayload{Scenario: fixedScenario()},
		Param:  "power_value_usd_mwh",
		From:   -10.0,
		To:     160.0,
		Steps:  5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[models.ErrorResponse](t, rec)
	assert.Equal(t, "INVALID_SWEEP", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "power_value_usd_mwh")
}

func TestHistoryLifecycle(t *testing.T) {
	router, _ := newRouter(t)

	for _, label := range []string{"first", "second"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
			Config:  models.ScenarioPayload{Scenario: fixedScenario()},
			Options: models.EvaluateOptions{Label: label},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	listRec := doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	list := decode[models.HistoryResponse](t, listRec)
	require.Len(t, list.Runs, 2)
	assert.Equal(t, "first", list.Runs[0].Label)
	assert.Equal(t, "second", list.Runs[1].Label)
	assert.Equal(t, "fixed", list.Runs[0].CostModel)

	detailRec := doJSON(t, router, http.MethodGet, "/api/v1/history/"+list.Runs[0].ID, nil)
	require.Equal(t, http.StatusOK, detailRec.Code)
	detail := decode[models.RunDetail](t, detailRec)
	assert.Equal(t, "first", detail.Label)
	assert.Equal(t, 0.2, detail.Scenario.CapturedAndStoredMtpa)
	assert.Equal(t, 14, detail.Derived.TotalWells)
	require.NotNil(t, detail.Metrics.PaybackYear)

	missingRec := doJSON(t, router, http.MethodGet, "/api/v1/history/no-such-run", nil)
	require.Equal(t, http.StatusNotFound, missingRec.Code)
	missing := decode[models.ErrorResponse](t, missingRec)
	assert.Equal(t, "RUN_NOT_FOUND", missing.Error.Code)

	clearRec := doJSON(t, router, http.MethodDelete, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, clearRec.Code)
	cleared := decode[models.ClearHistoryResponse](t, clearRec)
	assert.Equal(t, 2, cleared.Cleared)

	emptyRec := doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	empty := decode[models.HistoryResponse](t, emptyRec)
	assert.Empty(t, empty.Runs)
}

func TestHistoryExport(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		Config:  models.ScenarioPayload{Scenario: fixedScenario()},
		Options: models.EvaluateOptions{Label: "export me"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	csvRec := doJSON(t, router, http.MethodGet, "/api/v1/history/export?format=csv", nil)
	require.Equal(t, http.StatusOK, csvRec.Code)
	assert.Contains(t, csvRec.Header().Get("Content-Disposition"), "TEA_Runs.csv")
	assert.True(t, bytes.HasPrefix(csvRec.Body.Bytes(), []byte("Parameter,Run_1\n")))
	assert.Contains(t, csvRec.Body.String(), "export me")

	xlsxRec := doJSON(t, router, http.MethodGet, "/api/v1/history/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, xlsxRec.Code)
	assert.Contains(t, xlsxRec.Header().Get("Content-Disposition"), "TEA_Runs.xlsx")
	assert.Equal(t, xlsxContentType, xlsxRec.Header().Get("Content-Type"))
	assert.NotEmpty(t, xlsxRec.Body.Bytes())

	badRec := doJSON(t, router, http.MethodGet, "/api/v1/history/export?format=pdf", nil)
	require.Equal(t, http.StatusBadRequest, badRec.Code)
	bad := decode[models.ErrorResponse](t, badRec)
	assert.Equal(t, "INVALID_FORMAT", bad.Error.Code)
}

func TestListCostModels(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/costmodels", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		CostModels []models.CostModelInfo `json:"cost_models"`
	}](t, rec)
	require.Len(t, resp.CostModels, 2)
	assert.Equal(t, "fixed", resp.CostModels[0].ID)
	assert.Equal(t, "scaled", resp.CostModels[1].ID)

	names := func(infos []models.ParameterInfo) []string {
		out := make([]string, len(infos))
		for i, p := range infos {
			out[i] = p.Name
		}
		return out
	}
	assert.Contains(t, names(resp.CostModels[0].Parameters), "co2_water_ratio")
	assert.NotContains(t, names(resp.CostModels[0].Parameters), "tax_rate")
	assert.Contains(t, names(resp.CostModels[1].Parameters), "tax_rate")
	assert.Contains(t, names(resp.CostModels[1].Parameters), "capex_escalation_factor")
}

func TestListScenarios(t *testing.T) {
	dir := t.TempDir()
	preset := `scenario:
  name: Little plant
  cost_model: fixed
  captured_and_stored_mtpa: 0.1
  project_life_years: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "little_plant.yaml"), []byte(preset), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not yaml"), 0o644))
	t.Setenv("SCENARIO_DIR", dir)

	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		Scenarios []models.ScenarioInfo `json:"scenarios"`
	}](t, rec)
	require.Len(t, resp.Scenarios, 1)
	assert.Equal(t, "little_plant", resp.Scenarios[0].ID)
	assert.Equal(t, "Little plant", resp.Scenarios[0].Name)
	assert.Equal(t, "fixed", resp.Scenarios[0].Specs.CostModel)
	assert.Equal(t, 0.1, resp.Scenarios[0].Specs.CapturedAndStoredMtpa)
	assert.Equal(t, 20, resp.Scenarios[0].Specs.ProjectLifeYears)
}
