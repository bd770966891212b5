package models

import "time"

// EvaluateResponse represents the response from a scenario evaluation
type EvaluateResponse struct {
	ID       string            `json:"id,omitempty"`
	Status   string            `json:"status"`
	Label    string            `json:"label,omitempty"`
	Summary  EvaluationSummary `json:"summary"`
	Timeline []YearRow         `json:"timeline,omitempty"`
}

// EvaluationSummary contains derived quantities and financial metrics
type EvaluationSummary struct {
	CostModel string         `json:"cost_model"`
	Derived   DerivedSummary `json:"derived"`
	Metrics   MetricsSummary `json:"metrics"`
}

// DerivedSummary contains physical sizing and cost roll-ups
type DerivedSummary struct {
	InjectedCO2Mtpa       float64 `json:"injected_co2_mtpa"`
	TotalInjectionRateKgs float64 `json:"total_injection_rate_kgs"`
	InjectionWells        int     `json:"injection_wells"`
	TotalWells            int     `json:"total_wells"`
	HeatGeneratedMWt      float64 `json:"heat_generated_mwt"`
	PowerGeneratedMW      float64 `json:"power_generated_mw"`
	AnnualEnergyMWh       float64 `json:"annual_energy_mwh"`
	AboveGroundCapexM     float64 `json:"above_ground_capex_m"`
	SubsurfaceCapexM      float64 `json:"subsurface_capex_m"`
	TotalCapexM           float64 `json:"total_capex_m"`
	AnnualOpexCostM       float64 `json:"annual_opex_cost_m"`
}

// MetricsSummary contains the headline financial metrics.
// IRR and PaybackYear are null when undefined for the cash-flow profile.
type MetricsSummary struct {
	NPVM          float64  `json:"npv_m"`
	LCOEUSDPerMWh float64  `json:"lcoe_usd_mwh"`
	IRR           *float64 `json:"irr"`
	PaybackYear   *int     `json:"payback_year"`
}

// YearRow represents one year in the project cash-flow timeline
type YearRow struct {
	Year                 int     `json:"year"`
	Phase                string  `json:"phase"` // "CONSTRUCTION", "OPERATIONS"
	CapexM               float64 `json:"capex_m"`
	ElectricityRevenueM  float64 `json:"electricity_revenue_m"`
	TaxCredit45QRevenueM float64 `json:"tax_credit_45q_m"`
	CarbonCreditRevenueM float64 `json:"carbon_credit_m"`
	OpexM                float64 `json:"opex_m"`
	CO2CostM             float64 `json:"co2_cost_m"`
	TaxM                 float64 `json:"tax_m"`
	GenerationMWh        float64 `json:"generation_mwh"`
	NetM                 float64 `json:"net_m"`
	CumulativeNetM       float64 `json:"cumulative_net_m"`
	DiscountFactor       float64 `json:"discount_factor"`
	DiscountedNetM       float64 `json:"discounted_net_m"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string            `json:"name"`
	Summary EvaluationSummary `json:"summary"`
}

// SweepResponse represents the response from a parameter sweep
type SweepResponse struct {
	Param  string       `json:"param"`
	Unit   string       `json:"unit,omitempty"`
	Points []SweepPoint `json:"points"`
}

// SweepPoint contains the metrics at one swept value. Points whose
// evaluation failed carry an error message instead of metrics.
type SweepPoint struct {
	Value       float64         `json:"value"`
	Metrics     *MetricsSummary `json:"metrics,omitempty"`
	TotalWells  int             `json:"total_wells,omitempty"`
	TotalCapexM float64         `json:"total_capex_m,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// CostModelInfo represents information about a cost model
type CostModelInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a cost model parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Unit        string      `json:"unit,omitempty"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
}

// ScenarioInfo represents information about a scenario preset
type ScenarioInfo struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	File  string        `json:"file"`
	Specs ScenarioSpecs `json:"specs"`
}

// ScenarioSpecs contains headline scenario figures
type ScenarioSpecs struct {
	CostModel             string  `json:"cost_model"`
	CapturedAndStoredMtpa float64 `json:"captured_and_stored_mtpa"`
	ProjectLifeYears      int     `json:"project_life_years"`
}

// HistoryResponse represents the stored run list
type HistoryResponse struct {
	Runs []RunInfo `json:"runs"`
}

// RunInfo summarizes one stored evaluation run
type RunInfo struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	CreatedAt time.Time      `json:"created_at"`
	CostModel string         `json:"cost_model"`
	Metrics   MetricsSummary `json:"metrics"`
}

// RunDetail is the full stored record for one run
type RunDetail struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	CreatedAt time.Time      `json:"created_at"`
	Scenario  ScenarioParams `json:"scenario"`
	Derived   DerivedSummary `json:"derived"`
	Metrics   MetricsSummary `json:"metrics"`
}

// ClearHistoryResponse reports how many runs were dropped
type ClearHistoryResponse struct {
	Cleared int `json:"cleared"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
